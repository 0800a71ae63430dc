package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/repository"
)

func newAddressService(db *gorm.DB) AddressService {
	return NewAddressService(
		repository.NewAddressRepository(db),
		repository.NewCustomerRepository(db),
		NewZoneResolver(repository.NewZoneRepository(db)),
	)
}

func float64Ptr(v float64) *float64 { return &v }

func TestCreateAddress_CapturesSmallestContainingZone(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	createZone(t, db, nil, squareBoundary(-70.8, -33.6, 0.4))
	small := createZone(t, db, nil, squareBoundary(-70.7, -33.5, 0.1))
	svc := newAddressService(db)

	address, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "  Av. Providencia 1234  ",
		Locality:   "Providencia",
		Commune:    "Providencia",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-33.45),
		Longitude:  float64Ptr(-70.65),
	})
	require.NoError(t, err)

	require.NotNil(t, address.ZoneCoverageID)
	assert.Equal(t, small.ID, *address.ZoneCoverageID)
	require.NotNil(t, address.Location)
	assert.Equal(t, "Av. Providencia 1234", address.Street)
}

func TestCreateAddress_OutsideAllZones(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	createZone(t, db, nil, squareBoundary(-70.7, -33.5, 0.1))
	svc := newAddressService(db)

	_, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "Camino Rural s/n",
		Locality:   "Pirque",
		Commune:    "Pirque",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-33.9),
		Longitude:  float64Ptr(-70.2),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateAddress_WithoutCoordinates(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	svc := newAddressService(db)

	address, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Matta 500",
		Locality:   "Santiago",
		Commune:    "Santiago",
		Region:     "Metropolitana",
	})
	require.NoError(t, err)
	assert.Nil(t, address.Location)
	assert.Nil(t, address.ZoneCoverageID)
}

func TestCreateAddress_UnknownCustomer(t *testing.T) {
	db := openTestDB(t)
	svc := newAddressService(db)

	_, err := svc.Create(context.Background(), AddressInput{
		CustomerID: 9999,
		Street:     "Av. Matta 500",
		Locality:   "Santiago",
		Commune:    "Santiago",
		Region:     "Metropolitana",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateAddress_InvalidCoordinates(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	svc := newAddressService(db)

	_, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Matta 500",
		Locality:   "Santiago",
		Commune:    "Santiago",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-95),
		Longitude:  float64Ptr(-70.65),
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestUpdateAddress_ReassignsZoneOnMove(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	north := createZone(t, db, nil, squareBoundary(-70.7, -33.5, 0.1))
	south := createZone(t, db, nil, squareBoundary(-71.0, -34.0, 0.1))
	svc := newAddressService(db)

	address, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Providencia 1234",
		Locality:   "Providencia",
		Commune:    "Providencia",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-33.45),
		Longitude:  float64Ptr(-70.65),
	})
	require.NoError(t, err)
	require.Equal(t, north.ID, *address.ZoneCoverageID)

	moved, err := svc.Update(context.Background(), address.ID, AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Concha y Toro 100",
		Locality:   "Puente Alto",
		Commune:    "Puente Alto",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-33.95),
		Longitude:  float64Ptr(-70.95),
	})
	require.NoError(t, err)
	require.NotNil(t, moved.ZoneCoverageID)
	assert.Equal(t, south.ID, *moved.ZoneCoverageID)
}

func TestUpdateAddress_DroppingCoordinatesClearsZone(t *testing.T) {
	db := openTestDB(t)
	customer := createCustomer(t, db)
	createZone(t, db, nil, squareBoundary(-70.7, -33.5, 0.1))
	svc := newAddressService(db)

	address, err := svc.Create(context.Background(), AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Providencia 1234",
		Locality:   "Providencia",
		Commune:    "Providencia",
		Region:     "Metropolitana",
		Latitude:   float64Ptr(-33.45),
		Longitude:  float64Ptr(-70.65),
	})
	require.NoError(t, err)

	cleared, err := svc.Update(context.Background(), address.ID, AddressInput{
		CustomerID: customer.ID,
		Street:     "Av. Providencia 1234",
		Locality:   "Providencia",
		Commune:    "Providencia",
		Region:     "Metropolitana",
	})
	require.NoError(t, err)
	assert.Nil(t, cleared.Location)
	assert.Nil(t, cleared.ZoneCoverageID)
}
