package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/sessions")
	g.POST("/login", h.Login)
	g.GET("/:id/validate", h.Validate)
	g.DELETE("/:id", h.Logout)
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}

	session, err := h.svc.Login(c.Request().Context(), req.CustomerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToSessionResponse(session, time.Now().UTC()))
}

func (h *SessionHandler) Validate(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	session, err := h.svc.Validate(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToSessionResponse(session, time.Now().UTC()))
}

func (h *SessionHandler) Logout(c echo.Context) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Logout(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func sessionID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	return id, nil
}
