package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmardones/delivery-slots/internal/repository"
)

// CatalogHandler serves the read-only geographic reference data synced
// from the upstream catalog.
type CatalogHandler struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogHandler(catalogRepo repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/regions", h.ListRegions)
	e.GET("/api/v1/regions/:id", h.GetRegion)
	e.GET("/api/v1/regions/:id/communes", h.ListCommunes)
	e.GET("/api/v1/communes/:id", h.GetCommune)
}

func (h *CatalogHandler) ListRegions(c echo.Context) error {
	regions, err := h.catalogRepo.FindRegions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, regions)
}

func (h *CatalogHandler) GetRegion(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	region, err := h.catalogRepo.FindRegionByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, region)
}

func (h *CatalogHandler) ListCommunes(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	communes, err := h.catalogRepo.FindCommunesByRegion(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, communes)
}

func (h *CatalogHandler) GetCommune(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	commune, err := h.catalogRepo.FindCommuneByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commune)
}
