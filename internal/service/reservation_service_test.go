package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
)

type reservationFixture struct {
	db       *gorm.DB
	svc      ReservationService
	customer *models.Customer
	template *models.TimeSlotTemplate
	slot     *models.DeliverySlot
	zone     *models.ZoneCoverage
	address  *models.DeliveryAddress
}

func setupReservationFixture(t *testing.T, maxCapacity int) reservationFixture {
	t.Helper()
	db := openTestDB(t)
	customer := createCustomer(t, db)
	template := createTemplate(t, db, "09:00:00", "12:00:00")
	slot := createSlot(t, db, template.ID, "2026-09-10", maxCapacity)
	zone := createZone(t, db, &slot.ID, squareBoundary(-70.7, -33.5, 0.1))
	address := createAddress(t, db, customer.ID, &zone.ID, -70.65, -33.45)
	return reservationFixture{
		db:       db,
		svc:      newReservationService(db),
		customer: customer,
		template: template,
		slot:     slot,
		zone:     zone,
		address:  address,
	}
}

func (f reservationFixture) input() ReservationInput {
	return ReservationInput{
		CustomerID:        f.customer.ID,
		DeliveryAddressID: f.address.ID,
		DeliverySlotID:    f.slot.ID,
		ReservationDate:   "2026-09-10",
		ReservationTime:   "10:00",
	}
}

func statusPtr(s models.ReservationStatus) *models.ReservationStatus { return &s }

func TestCreateReservation_Confirmed(t *testing.T) {
	f := setupReservationFixture(t, 5)

	reservation, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, reservation.Status)
	assert.Equal(t, 1, reservation.Version)
	assert.Nil(t, reservation.CancelledAt)
	assert.Equal(t, "2026-09-10", reservation.ReservedAt.Format("2006-01-02"))
	assert.Equal(t, "10:00:00", reservation.ReservedAt.Format("15:04:05"))

	assert.Equal(t, 1, reloadSlot(t, f.db, f.slot.ID).ReservedCount)
}

func TestCreateReservation_UnknownCustomer(t *testing.T) {
	f := setupReservationFixture(t, 5)

	input := f.input()
	input.CustomerID = 9999
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateReservation_AddressNotOwned(t *testing.T) {
	f := setupReservationFixture(t, 5)
	other := createCustomer(t, f.db)

	input := f.input()
	input.CustomerID = other.ID
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateReservation_AddressWithoutZone(t *testing.T) {
	f := setupReservationFixture(t, 5)
	bare := createAddress(t, f.db, f.customer.ID, nil, -70.65, -33.45)

	input := f.input()
	input.DeliveryAddressID = bare.ID
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateReservation_ZoneNotBoundToSlot(t *testing.T) {
	f := setupReservationFixture(t, 5)

	// A zone with no slot binding at all.
	unbound := createZone(t, f.db, nil, squareBoundary(-71.0, -34.0, 0.1))
	address := createAddress(t, f.db, f.customer.ID, &unbound.ID, -70.95, -33.95)

	input := f.input()
	input.DeliveryAddressID = address.ID
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateReservation_DateMustMatchSlot(t *testing.T) {
	f := setupReservationFixture(t, 5)

	input := f.input()
	input.ReservationDate = "2026-09-11"
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateReservation_TimeWindowInclusive(t *testing.T) {
	f := setupReservationFixture(t, 50)

	cases := []struct {
		clock string
		ok    bool
	}{
		{"09:00", true},
		{"09:00:00", true},
		{"12:00:00", true},
		{"08:59:59", false},
		{"12:00:01", false},
	}
	for _, tc := range cases {
		t.Run(tc.clock, func(t *testing.T) {
			input := f.input()
			input.ReservationTime = tc.clock
			_, err := f.svc.Create(context.Background(), input)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperr.ErrValidation)
			}
		})
	}
}

func TestCreateReservation_InvalidDateAndTime(t *testing.T) {
	f := setupReservationFixture(t, 5)

	input := f.input()
	input.ReservationDate = "10-09-2026"
	_, err := f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	input = f.input()
	input.ReservationTime = "25:00"
	_, err = f.svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateReservation_CapacityExhausted(t *testing.T) {
	f := setupReservationFixture(t, 2)

	_, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.input())
	assert.ErrorIs(t, err, apperr.ErrConflict)

	assert.Equal(t, 2, reloadSlot(t, f.db, f.slot.ID).ReservedCount)
}

func TestCreateReservation_CancelledSkipsCapacityCheck(t *testing.T) {
	f := setupReservationFixture(t, 1)

	_, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	input := f.input()
	input.Status = statusPtr(models.StatusCancelled)
	reservation, err := f.svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, reservation.Status)
	assert.NotNil(t, reservation.CancelledAt)
	assert.Equal(t, 1, reloadSlot(t, f.db, f.slot.ID).ReservedCount)
}

func TestUpdateReservation_CancelFreesCapacity(t *testing.T) {
	f := setupReservationFixture(t, 1)

	first, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), f.input())
	require.ErrorIs(t, err, apperr.ErrConflict)

	input := f.input()
	input.Status = statusPtr(models.StatusCancelled)
	cancelled, err := f.svc.Update(context.Background(), first.ID, input)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 2, cancelled.Version)
	assert.Equal(t, 0, reloadSlot(t, f.db, f.slot.ID).ReservedCount)

	_, err = f.svc.Create(context.Background(), f.input())
	assert.NoError(t, err)
}

func TestUpdateReservation_ReconfirmClearsCancelledAt(t *testing.T) {
	f := setupReservationFixture(t, 1)

	reservation, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	input := f.input()
	input.Status = statusPtr(models.StatusCancelled)
	cancelled, err := f.svc.Update(context.Background(), reservation.ID, input)
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledAt)

	reconfirmed, err := f.svc.Update(context.Background(), reservation.ID, f.input())
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, reconfirmed.Status)
	assert.Nil(t, reconfirmed.CancelledAt)
	assert.Equal(t, 1, reloadSlot(t, f.db, f.slot.ID).ReservedCount)
}

func TestUpdateReservation_StaleVersionRejected(t *testing.T) {
	f := setupReservationFixture(t, 5)

	reservation, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), reservation.ID, f.input())
	require.NoError(t, err)

	stale := 1
	input := f.input()
	input.ExpectedVersion = &stale
	_, err = f.svc.Update(context.Background(), reservation.ID, input)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUpdateReservation_SlotChangeRecountsBothSlots(t *testing.T) {
	f := setupReservationFixture(t, 5)

	evening := createTemplate(t, f.db, "14:00:00", "18:00:00")
	slot2 := createSlot(t, f.db, evening.ID, "2026-09-10", 5)
	zone2 := createZone(t, f.db, &slot2.ID, squareBoundary(-71.0, -34.0, 0.1))
	address2 := createAddress(t, f.db, f.customer.ID, &zone2.ID, -70.95, -33.95)

	reservation, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)
	require.Equal(t, 1, reloadSlot(t, f.db, f.slot.ID).ReservedCount)

	input := f.input()
	input.DeliveryAddressID = address2.ID
	input.DeliverySlotID = slot2.ID
	input.ReservationTime = "15:00"
	moved, err := f.svc.Update(context.Background(), reservation.ID, input)
	require.NoError(t, err)

	assert.Equal(t, slot2.ID, moved.DeliverySlotID)
	assert.Equal(t, 0, reloadSlot(t, f.db, f.slot.ID).ReservedCount)
	assert.Equal(t, 1, reloadSlot(t, f.db, slot2.ID).ReservedCount)
}

func TestDeleteReservation_Recounts(t *testing.T) {
	f := setupReservationFixture(t, 5)

	reservation, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), reservation.ID))

	assert.Equal(t, 0, reloadSlot(t, f.db, f.slot.ID).ReservedCount)

	_, err = f.svc.Get(context.Background(), reservation.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListReservationsByCustomer(t *testing.T) {
	f := setupReservationFixture(t, 5)

	_, err := f.svc.Create(context.Background(), f.input())
	require.NoError(t, err)

	list, err := f.svc.ListByCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListByCustomer(context.Background(), 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
