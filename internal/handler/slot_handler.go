package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type SlotHandler struct {
	svc service.SlotService
}

func NewSlotHandler(svc service.SlotService) *SlotHandler {
	return &SlotHandler{svc: svc}
}

func (h *SlotHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/delivery-slots")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *SlotHandler) Create(c echo.Context) error {
	input, err := bindSlot(c)
	if err != nil {
		return err
	}
	slot, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToSlotResponse(slot))
}

func (h *SlotHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindSlot(c)
	if err != nil {
		return err
	}
	slot, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToSlotResponse(slot))
}

func (h *SlotHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SlotHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	slot, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToSlotResponse(slot))
}

func (h *SlotHandler) List(c echo.Context) error {
	slots, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]dto.SlotResponse, len(slots))
	for i := range slots {
		resp[i] = dto.ToSlotResponse(&slots[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func bindSlot(c echo.Context) (service.SlotInput, error) {
	var req dto.SlotRequest
	if err := c.Bind(&req); err != nil {
		return service.SlotInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TimeSlotTemplateID == 0 || req.DeliveryDate == "" {
		return service.SlotInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"time_slot_template_id and delivery_date are required")
	}
	return service.SlotInput{
		TimeSlotTemplateID: req.TimeSlotTemplateID,
		DeliveryDate:       req.DeliveryDate,
		DeliveryCost:       req.DeliveryCost,
		MaxCapacity:        req.MaxCapacity,
		ReservedCount:      req.ReservedCount,
		IsActive:           req.IsActive,
	}, nil
}
