package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/geo"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

type ZoneInput struct {
	Name           string
	CommuneID      *uint
	Commune        string
	Region         string
	Locality       string
	PostalCode     string
	DeliverySlotID *uint
	MaxCapacity    *int
	Boundary       json.RawMessage
	IsActive       *bool
}

type ZoneService interface {
	Create(ctx context.Context, input ZoneInput) (*models.ZoneCoverage, error)
	Update(ctx context.Context, id uint, input ZoneInput) (*models.ZoneCoverage, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.ZoneCoverage, error)
	List(ctx context.Context) ([]models.ZoneCoverage, error)
}

type zoneService struct {
	zoneRepo repository.ZoneRepository
	slotRepo repository.SlotRepository
}

func NewZoneService(zoneRepo repository.ZoneRepository, slotRepo repository.SlotRepository) ZoneService {
	return &zoneService{zoneRepo: zoneRepo, slotRepo: slotRepo}
}

func (s *zoneService) Create(ctx context.Context, input ZoneInput) (*models.ZoneCoverage, error) {
	if err := s.validateSlot(ctx, input.DeliverySlotID); err != nil {
		return nil, err
	}
	entity := &models.ZoneCoverage{}
	if err := applyZoneChanges(entity, input); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *zoneService) Update(ctx context.Context, id uint, input ZoneInput) (*models.ZoneCoverage, error) {
	entity, err := s.zoneRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateSlot(ctx, input.DeliverySlotID); err != nil {
		return nil, err
	}
	if err := applyZoneChanges(entity, input); err != nil {
		return nil, err
	}
	if err := s.zoneRepo.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *zoneService) Delete(ctx context.Context, id uint) error {
	if _, err := s.zoneRepo.FindByID(ctx, nil, id); err != nil {
		return err
	}
	return s.zoneRepo.Delete(ctx, id)
}

func (s *zoneService) Get(ctx context.Context, id uint) (*models.ZoneCoverage, error) {
	return s.zoneRepo.FindByID(ctx, nil, id)
}

func (s *zoneService) List(ctx context.Context) ([]models.ZoneCoverage, error) {
	return s.zoneRepo.FindAll(ctx)
}

func (s *zoneService) validateSlot(ctx context.Context, slotID *uint) error {
	if slotID == nil {
		return nil
	}
	_, err := s.slotRepo.FindByID(ctx, *slotID)
	return err
}

// applyZoneChanges parses and validates the boundary, derives the
// centroid and normalizes the text fields.
func applyZoneChanges(entity *models.ZoneCoverage, input ZoneInput) error {
	polygon, err := geo.ParsePolygon(input.Boundary)
	if err != nil {
		return apperr.Validation("boundary must be a valid GeoJSON polygon: %v", err)
	}
	centroid := polygon.Centroid()

	entity.Name = strings.TrimSpace(input.Name)
	entity.CommuneID = input.CommuneID
	entity.Commune = strings.TrimSpace(input.Commune)
	entity.Region = strings.TrimSpace(input.Region)
	entity.Locality = strings.TrimSpace(input.Locality)
	entity.PostalCode = strings.TrimSpace(input.PostalCode)
	entity.DeliverySlotID = input.DeliverySlotID
	if input.MaxCapacity != nil {
		entity.MaxCapacity = *input.MaxCapacity
	} else {
		entity.MaxCapacity = 0
	}
	entity.Boundary = &polygon
	entity.Location = &centroid
	entity.IsActive = input.IsActive == nil || *input.IsActive
	return nil
}
