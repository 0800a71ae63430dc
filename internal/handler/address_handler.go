package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/dto"
	"github.com/dmardones/delivery-slots/internal/service"
)

type AddressHandler struct {
	svc service.AddressService
}

func NewAddressHandler(svc service.AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

func (h *AddressHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/delivery-addresses")
	g.GET("/by-customer/:customerId", h.ListByCustomer)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *AddressHandler) Create(c echo.Context) error {
	input, err := bindAddress(c)
	if err != nil {
		return err
	}
	address, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, address)
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindAddress(c)
	if err != nil {
		return err
	}
	address, err := h.svc.Update(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AddressHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	address, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, address)
}

func (h *AddressHandler) ListByCustomer(c echo.Context) error {
	customerID, err := pathID(c, "customerId")
	if err != nil {
		return err
	}
	addresses, err := h.svc.ListByCustomer(c.Request().Context(), customerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addresses)
}

func bindAddress(c echo.Context) (service.AddressInput, error) {
	var req dto.AddressRequest
	if err := c.Bind(&req); err != nil {
		return service.AddressInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.CustomerID == 0 {
		return service.AddressInput{}, echo.NewHTTPError(http.StatusBadRequest, "customer_id is required")
	}
	if req.Street == "" || req.Locality == "" || req.Commune == "" || req.Region == "" {
		return service.AddressInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"street, locality, commune and region are required")
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return service.AddressInput{}, echo.NewHTTPError(http.StatusBadRequest,
			"latitude and longitude must be provided together")
	}
	return service.AddressInput{
		CustomerID: req.CustomerID,
		CommuneID:  req.CommuneID,
		Street:     req.Street,
		Locality:   req.Locality,
		Commune:    req.Commune,
		Region:     req.Region,
		PostalCode: req.PostalCode,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		IsDefault:  req.IsDefault,
	}, nil
}
