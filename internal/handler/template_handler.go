package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type TemplateHandler struct {
	svc service.TemplateService
}

func NewTemplateHandler(svc service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

func (h *TemplateHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/time-slot-templates")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *TemplateHandler) Create(c echo.Context) error {
	input, err := bindTemplate(c)
	if err != nil {
		return err
	}
	template, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, template)
}

func (h *TemplateHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindTemplate(c)
	if err != nil {
		return err
	}
	template, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TemplateHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	template, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templates)
}

func bindTemplate(c echo.Context) (service.TemplateInput, error) {
	var req dto.TemplateRequest
	if err := c.Bind(&req); err != nil {
		return service.TemplateInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StartTime == "" || req.EndTime == "" {
		return service.TemplateInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"start_time and end_time are required")
	}
	return service.TemplateInput{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	}, nil
}
