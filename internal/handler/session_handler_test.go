package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/middleware"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/service"
)

// --- Mock SessionService ---

type mockSessionService struct {
	loginFn    func(ctx context.Context, customerID uint) (*models.ActiveSession, error)
	validateFn func(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error)
	logoutFn   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSessionService) Login(ctx context.Context, customerID uint) (*models.ActiveSession, error) {
	return m.loginFn(ctx, customerID)
}
func (m *mockSessionService) Validate(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error) {
	return m.validateFn(ctx, id)
}
func (m *mockSessionService) Logout(ctx context.Context, id uuid.UUID) error {
	return m.logoutFn(ctx, id)
}

func newSessionServer(svc service.SessionService) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	NewSessionHandler(svc).RegisterRoutes(e)
	return e
}

func sampleSession() *models.ActiveSession {
	now := time.Now().UTC()
	return &models.ActiveSession{
		ID:         uuid.New(),
		CustomerID: 1,
		StartedAt:  now,
		ExpiresAt:  now.Add(5 * time.Minute),
	}
}

func TestLogin_Handler_Created(t *testing.T) {
	session := sampleSession()
	svc := &mockSessionService{
		loginFn: func(ctx context.Context, customerID uint) (*models.ActiveSession, error) {
			return session, nil
		},
	}
	e := newSessionServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/sessions/login", `{"customer_id":1}`)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.SessionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, session.ID, resp.ID)
	assert.True(t, resp.Active)
}

func TestLogin_Handler_MissingCustomerID(t *testing.T) {
	e := newSessionServer(&mockSessionService{})

	rec := doJSON(e, http.MethodPost, "/api/v1/sessions/login", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_Handler_ActiveSessionConflict(t *testing.T) {
	svc := &mockSessionService{
		loginFn: func(ctx context.Context, customerID uint) (*models.ActiveSession, error) {
			return nil, apperr.Conflict("customer %d already has an active session", customerID)
		},
	}
	e := newSessionServer(svc)

	rec := doJSON(e, http.MethodPost, "/api/v1/sessions/login", `{"customer_id":1}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidate_Handler_Expired(t *testing.T) {
	svc := &mockSessionService{
		validateFn: func(ctx context.Context, id uuid.UUID) (*models.ActiveSession, error) {
			return nil, apperr.NotFound("active session")
		},
	}
	e := newSessionServer(svc)

	rec := doJSON(e, http.MethodGet, "/api/v1/sessions/"+uuid.NewString()+"/validate", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidate_Handler_InvalidUUID(t *testing.T) {
	e := newSessionServer(&mockSessionService{})

	rec := doJSON(e, http.MethodGet, "/api/v1/sessions/not-a-uuid/validate", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_Handler_NoContent(t *testing.T) {
	svc := &mockSessionService{
		logoutFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	e := newSessionServer(svc)

	rec := doJSON(e, http.MethodDelete, "/api/v1/sessions/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
