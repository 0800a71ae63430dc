package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type CustomerHandler struct {
	svc service.CustomerService
}

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/customers")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req dto.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	customer, err := h.svc.Create(c.Request().Context(), service.CustomerInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Type:     req.Type,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customers)
}
