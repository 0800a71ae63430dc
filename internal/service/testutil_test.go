package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dmardones/delivery-slots/internal/geo"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
	"github.com/dmardones/delivery-slots/pkg/database"
)

// openTestDB gives each test a fresh in-memory schema, including the
// partial unique index behind the session rules.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; keep the pool
	// at one so every session sees the same schema. The single connection
	// also means any query that escapes an open transaction blocks on the
	// pool, so transactional code paths cannot pass these tests unless
	// every read and write inside the callback runs on tx.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

var emailCounter int

func createCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	emailCounter++
	customer := &models.Customer{
		FullName: "Valentina Rojas",
		Email:    fmt.Sprintf("valentina.rojas+%d@example.cl", emailCounter),
		Type:     models.CustomerTypeBuyer,
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func createTemplate(t *testing.T, db *gorm.DB, start, end string) *models.TimeSlotTemplate {
	t.Helper()
	template := &models.TimeSlotTemplate{StartTime: start, EndTime: end, IsActive: true}
	require.NoError(t, db.Create(template).Error)
	return template
}

func createSlot(t *testing.T, db *gorm.DB, templateID uint, date string, maxCapacity int) *models.DeliverySlot {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	slot := &models.DeliverySlot{
		TimeSlotTemplateID: templateID,
		DeliveryDate:       datatypes.Date(day),
		DeliveryCost:       3500,
		MaxCapacity:        maxCapacity,
		IsActive:           true,
	}
	require.NoError(t, db.Create(slot).Error)
	return slot
}

// squareBoundary builds a GeoJSON square with its lower-left corner at
// (minLng, minLat).
func squareBoundary(minLng, minLat, size float64) []byte {
	return []byte(fmt.Sprintf(
		`{"type":"Polygon","coordinates":[[[%[1]v,%[2]v],[%[3]v,%[2]v],[%[3]v,%[4]v],[%[1]v,%[4]v],[%[1]v,%[2]v]]]}`,
		minLng, minLat, minLng+size, minLat+size,
	))
}

func createZone(t *testing.T, db *gorm.DB, slotID *uint, boundary []byte) *models.ZoneCoverage {
	t.Helper()
	polygon, err := geo.ParsePolygon(boundary)
	require.NoError(t, err)
	centroid := polygon.Centroid()
	zone := &models.ZoneCoverage{
		Name:           "Providencia Norte",
		Commune:        "Providencia",
		Region:         "Metropolitana",
		DeliverySlotID: slotID,
		MaxCapacity:    100,
		Boundary:       &polygon,
		Location:       &centroid,
		IsActive:       true,
	}
	require.NoError(t, db.Create(zone).Error)
	return zone
}

func createAddress(t *testing.T, db *gorm.DB, customerID uint, zoneID *uint, lng, lat float64) *models.DeliveryAddress {
	t.Helper()
	point, err := geo.NewPoint(lng, lat)
	require.NoError(t, err)
	address := &models.DeliveryAddress{
		CustomerID:     customerID,
		ZoneCoverageID: zoneID,
		Street:         "Av. Providencia 1234",
		Locality:       "Providencia",
		Commune:        "Providencia",
		Region:         "Metropolitana",
		Location:       &point,
	}
	require.NoError(t, db.Create(address).Error)
	return address
}

func newReservationService(db *gorm.DB) ReservationService {
	reservationRepo := repository.NewReservationRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	return NewReservationService(
		reservationRepo,
		repository.NewCustomerRepository(db),
		repository.NewAddressRepository(db),
		repository.NewTemplateRepository(db),
		repository.NewZoneRepository(db),
		NewSlotLedger(slotRepo, reservationRepo),
	)
}

func reloadSlot(t *testing.T, db *gorm.DB, id uint) *models.DeliverySlot {
	t.Helper()
	var slot models.DeliverySlot
	require.NoError(t, db.First(&slot, id).Error)
	return &slot
}
