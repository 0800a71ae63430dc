package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type ZoneHandler struct {
	svc service.ZoneService
}

func NewZoneHandler(svc service.ZoneService) *ZoneHandler {
	return &ZoneHandler{svc: svc}
}

func (h *ZoneHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/zone-coverages")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ZoneHandler) Create(c echo.Context) error {
	input, err := bindZone(c)
	if err != nil {
		return err
	}
	zone, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, zone)
}

func (h *ZoneHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindZone(c)
	if err != nil {
		return err
	}
	zone, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

func (h *ZoneHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ZoneHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	zone, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zone)
}

func (h *ZoneHandler) List(c echo.Context) error {
	zones, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, zones)
}

func bindZone(c echo.Context) (service.ZoneInput, error) {
	var req dto.ZoneRequest
	if err := c.Bind(&req); err != nil {
		return service.ZoneInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Commune == "" || req.Region == "" {
		return service.ZoneInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"name, commune and region are required")
	}
	if len(req.Boundary) == 0 {
		return service.ZoneInput{}, echo.NewHTTPError(http.StatusBadRequest, "boundary is required")
	}
	return service.ZoneInput{
		Name:           req.Name,
		CommuneID:      req.CommuneID,
		Commune:        req.Commune,
		Region:         req.Region,
		Locality:       req.Locality,
		PostalCode:     req.PostalCode,
		DeliverySlotID: req.DeliverySlotID,
		MaxCapacity:    req.MaxCapacity,
		Boundary:       req.Boundary,
		IsActive:       req.IsActive,
	}, nil
}
