package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

// sessionTTL is how long a login stays valid without being ended.
const sessionTTL = 5 * time.Minute

type SessionService interface {
	Login(ctx context.Context, customerID uint) (*models.ActiveSession, error)
	Validate(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error)
	Logout(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	sessionRepo  repository.SessionRepository
	customerRepo repository.CustomerRepository
}

func NewSessionService(sessionRepo repository.SessionRepository, customerRepo repository.CustomerRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo, customerRepo: customerRepo}
}

// Login closes the customer's expired sessions, then opens a new one
// unless an unexpired session is still active. The whole sequence runs
// in a transaction and the active_sessions partial unique index backs up
// the pre-check, so two concurrent logins cannot both succeed.
func (s *sessionService) Login(ctx context.Context, customerID uint) (*models.ActiveSession, error) {
	var result *models.ActiveSession

	err := s.sessionRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCustomer(ctx, s.customerRepo, tx, customerID); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := s.sessionRepo.CloseExpired(ctx, tx, customerID, now); err != nil {
			return err
		}

		_, err := s.sessionRepo.FindActiveByCustomer(ctx, tx, customerID, now)
		if err == nil {
			return apperr.Conflict("customer %d already has an active session", customerID)
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}

		session := &models.ActiveSession{
			ID:         uuid.New(),
			CustomerID: customerID,
			StartedAt:  now,
			ExpiresAt:  now.Add(sessionTTL),
		}
		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			return err
		}
		result = session
		return nil
	})

	return result, err
}

// Validate returns the session if it is still active. An ended or
// expired session is lazily closed (ended at its own expiry time) and
// reported as missing.
func (s *sessionService) Validate(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error) {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !session.Active(now) {
		if session.EndedAt == nil {
			endedAt := session.ExpiresAt
			session.EndedAt = &endedAt
			if err := s.sessionRepo.Save(ctx, session); err != nil {
				return nil, err
			}
		}
		return nil, apperr.NotFound("active session")
	}
	return session, nil
}

// Logout is idempotent: an already-ended session is left untouched.
func (s *sessionService) Logout(ctx context.Context, id uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if session.EndedAt != nil {
		return nil
	}
	now := time.Now().UTC()
	session.EndedAt = &now
	return s.sessionRepo.Save(ctx, session)
}
