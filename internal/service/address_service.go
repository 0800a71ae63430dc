package service

import (
	"context"
	"strings"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/geo"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

type AddressInput struct {
	CustomerID uint
	CommuneID  *uint
	Street     string
	Locality   string
	Commune    string
	Region     string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
	IsDefault  *bool
}

type AddressService interface {
	Create(ctx context.Context, input AddressInput) (*models.DeliveryAddress, error)
	Update(ctx context.Context, id uint, input AddressInput) (*models.DeliveryAddress, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.DeliveryAddress, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.DeliveryAddress, error)
}

type addressService struct {
	addressRepo  repository.AddressRepository
	customerRepo repository.CustomerRepository
	resolver     *ZoneResolver
}

func NewAddressService(addressRepo repository.AddressRepository, customerRepo repository.CustomerRepository, resolver *ZoneResolver) AddressService {
	return &addressService{addressRepo: addressRepo, customerRepo: customerRepo, resolver: resolver}
}

func (s *addressService) Create(ctx context.Context, input AddressInput) (*models.DeliveryAddress, error) {
	if err := requireCustomer(ctx, s.customerRepo, nil, input.CustomerID); err != nil {
		return nil, err
	}
	entity := &models.DeliveryAddress{}
	if err := s.applyChanges(ctx, entity, input); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *addressService) Update(ctx context.Context, id uint, input AddressInput) (*models.DeliveryAddress, error) {
	entity, err := s.addressRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyChanges(ctx, entity, input); err != nil {
		return nil, err
	}
	if err := s.addressRepo.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *addressService) Delete(ctx context.Context, id uint) error {
	if _, err := s.addressRepo.FindByID(ctx, nil, id); err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, id)
}

func (s *addressService) Get(ctx context.Context, id uint) (*models.DeliveryAddress, error) {
	return s.addressRepo.FindByID(ctx, nil, id)
}

func (s *addressService) ListByCustomer(ctx context.Context, customerID uint) ([]models.DeliveryAddress, error) {
	if err := requireCustomer(ctx, s.customerRepo, nil, customerID); err != nil {
		return nil, err
	}
	return s.addressRepo.FindByCustomerID(ctx, customerID)
}

// applyChanges captures the zone assignment at save time: when the
// request carries coordinates the point must fall inside at least one
// active zone, and the smallest matching zone is recorded on the
// address. Reservations later validate against this captured zone, not
// a fresh resolution.
func (s *addressService) applyChanges(ctx context.Context, entity *models.DeliveryAddress, input AddressInput) error {
	entity.CustomerID = input.CustomerID
	entity.CommuneID = input.CommuneID
	entity.Street = strings.TrimSpace(input.Street)
	entity.Locality = strings.TrimSpace(input.Locality)
	entity.Commune = strings.TrimSpace(input.Commune)
	entity.Region = strings.TrimSpace(input.Region)
	entity.PostalCode = strings.TrimSpace(input.PostalCode)
	entity.IsDefault = input.IsDefault != nil && *input.IsDefault

	if input.Latitude == nil || input.Longitude == nil {
		entity.Location = nil
		entity.ZoneCoverageID = nil
		return nil
	}

	point, err := geo.NewPoint(*input.Longitude, *input.Latitude)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	zones, err := s.resolver.Resolve(ctx, point)
	if err != nil {
		return err
	}
	if len(zones) == 0 {
		return apperr.Validation("location is outside all active coverage zones")
	}

	entity.Location = &point
	zoneID := zones[0].ID
	entity.ZoneCoverageID = &zoneID
	return nil
}
