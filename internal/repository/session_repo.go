package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.ActiveSession) error
	Save(ctx context.Context, session *models.ActiveSession) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error)
	// FindActiveByCustomer returns the customer's open, unexpired session
	// or a NotFound error when there is none.
	FindActiveByCustomer(ctx context.Context, tx *gorm.DB, customerID uint, now time.Time) (*models.ActiveSession, error)
	// CloseExpired stamps ended_at on the customer's open sessions whose
	// expiry has passed. Expired sessions close at their own expiry time,
	// not at the wall-clock moment the cleanup happens to run.
	CloseExpired(ctx context.Context, tx *gorm.DB, customerID uint, now time.Time) error
	GetDB() *gorm.DB
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *sessionRepository) Create(ctx context.Context, tx *gorm.DB, session *models.ActiveSession) error {
	err := tx.WithContext(ctx).Create(session).Error
	return integrity(err, "customer already has an active session")
}

func (r *sessionRepository) Save(ctx context.Context, session *models.ActiveSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error) {
	var session models.ActiveSession
	if err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "session", id)
	}
	return &session, nil
}

func (r *sessionRepository) FindActiveByCustomer(ctx context.Context, tx *gorm.DB, customerID uint, now time.Time) (*models.ActiveSession, error) {
	var session models.ActiveSession
	err := tx.WithContext(ctx).
		Where("customer_id = ? AND ended_at IS NULL AND expires_at > ?", customerID, now).
		First(&session).Error
	if err != nil {
		return nil, notFound(err, "active session for customer", customerID)
	}
	return &session, nil
}

func (r *sessionRepository) CloseExpired(ctx context.Context, tx *gorm.DB, customerID uint, now time.Time) error {
	return tx.WithContext(ctx).
		Model(&models.ActiveSession{}).
		Where("customer_id = ? AND ended_at IS NULL AND expires_at <= ?", customerID, now).
		Update("ended_at", gorm.Expr("expires_at")).Error
}
