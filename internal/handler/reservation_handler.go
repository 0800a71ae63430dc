package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type ReservationHandler struct {
	svc service.ReservationService
}

func NewReservationHandler(svc service.ReservationService) *ReservationHandler {
	return &ReservationHandler{svc: svc}
}

func (h *ReservationHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/reservations")
	g.GET("", h.List)
	g.GET("/by-customer/:customerId", h.ListByCustomer)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ReservationHandler) Create(c echo.Context) error {
	input, err := bindReservation(c)
	if err != nil {
		return err
	}

	reservation, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindReservation(c)
	if err != nil {
		return err
	}

	reservation, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ReservationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	reservation, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.ToReservationResponse(reservation))
}

func (h *ReservationHandler) List(c echo.Context) error {
	reservations, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) ListByCustomer(c echo.Context) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return err
	}
	reservations, err := h.svc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	resp := make([]dto.ReservationResponse, len(reservations))
	for i := range reservations {
		resp[i] = dto.ToReservationResponse(&reservations[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func bindReservation(c echo.Context) (service.ReservationInput, error) {
	var req dto.ReservationRequest
	if err := c.Bind(&req); err != nil {
		return service.ReservationInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 || req.DeliveryAddressID == 0 || req.DeliverySlotID == 0 {
		return service.ReservationInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"customer_id, delivery_address_id and delivery_slot_id are required")
	}
	if req.ReservationDate == "" || req.ReservationTime == "" {
		return service.ReservationInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"reservation_date and reservation_time are required")
	}
	return service.ReservationInput{
		CustomerID:        req.CustomerID,
		DeliveryAddressID: req.DeliveryAddressID,
		DeliverySlotID:    req.DeliverySlotID,
		ReservationDate:   req.ReservationDate,
		ReservationTime:   req.ReservationTime,
		Status:            req.Status,
		ExpectedVersion:   req.Version,
	}, nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
