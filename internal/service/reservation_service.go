package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

// ReservationInput carries the validated request payload. Date and time
// arrive as strings (YYYY-MM-DD, HH:MM or HH:MM:SS) and are combined
// into the stored reserved-at instant.
type ReservationInput struct {
	CustomerID        uint
	DeliveryAddressID uint
	DeliverySlotID    uint
	ReservationDate   string
	ReservationTime   string
	Status            *models.ReservationStatus
	// ExpectedVersion, when set on update, must match the stored version
	// or the write is rejected with a conflict.
	ExpectedVersion *int
}

type ReservationService interface {
	Create(ctx context.Context, input ReservationInput) (*models.Reservation, error)
	Update(ctx context.Context, id uint, input ReservationInput) (*models.Reservation, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Reservation, error)
	List(ctx context.Context) ([]models.Reservation, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	customerRepo    repository.CustomerRepository
	addressRepo     repository.AddressRepository
	templateRepo    repository.TemplateRepository
	zoneRepo        repository.ZoneRepository
	ledger          *SlotLedger
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	customerRepo repository.CustomerRepository,
	addressRepo repository.AddressRepository,
	templateRepo repository.TemplateRepository,
	zoneRepo repository.ZoneRepository,
	ledger *SlotLedger,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		customerRepo:    customerRepo,
		addressRepo:     addressRepo,
		templateRepo:    templateRepo,
		zoneRepo:        zoneRepo,
		ledger:          ledger,
	}
}

func (s *reservationService) Create(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		address, slot, template, err := s.loadAndLock(ctx, tx, input)
		if err != nil {
			return err
		}
		if err := validateZoneBinding(ctx, s.zoneRepo, tx, address, slot.ID); err != nil {
			return err
		}

		reservedAt, err := buildReservedAt(input.ReservationDate, input.ReservationTime)
		if err != nil {
			return err
		}
		if err := validateSchedule(reservedAt, slot, template); err != nil {
			return err
		}

		status := resolveStatus(input.Status)
		if err := s.ledger.Admit(ctx, tx, slot, status, nil); err != nil {
			return err
		}

		entity := &models.Reservation{Version: 1}
		applyChanges(entity, input, reservedAt, status, time.Now().UTC())
		if err := s.reservationRepo.Create(ctx, tx, entity); err != nil {
			return err
		}
		result = entity

		return s.ledger.SyncReservedCount(ctx, tx, slot.ID)
	})

	return result, err
}

func (s *reservationService) Update(ctx context.Context, id uint, input ReservationInput) (*models.Reservation, error) {
	var result *models.Reservation

	err := s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.reservationRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		previousSlotID := entity.DeliverySlotID

		if input.ExpectedVersion != nil && *input.ExpectedVersion != entity.Version {
			return apperr.Conflict("reservation %d changed concurrently (version %d, expected %d)",
				id, entity.Version, *input.ExpectedVersion)
		}

		address, slot, template, err := s.loadAndLock(ctx, tx, input)
		if err != nil {
			return err
		}
		if previousSlotID != slot.ID {
			if _, err := s.ledger.Lock(ctx, tx, previousSlotID); err != nil {
				return err
			}
		}
		if err := validateZoneBinding(ctx, s.zoneRepo, tx, address, slot.ID); err != nil {
			return err
		}

		reservedAt, err := buildReservedAt(input.ReservationDate, input.ReservationTime)
		if err != nil {
			return err
		}
		if err := validateSchedule(reservedAt, slot, template); err != nil {
			return err
		}

		status := resolveStatus(input.Status)
		excludeID := id
		if err := s.ledger.Admit(ctx, tx, slot, status, &excludeID); err != nil {
			return err
		}

		expectedVersion := entity.Version
		applyChanges(entity, input, reservedAt, status, time.Now().UTC())
		ok, err := s.reservationRepo.UpdateVersioned(ctx, tx, entity, expectedVersion)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("reservation %d changed concurrently", id)
		}
		result = entity

		if err := s.ledger.SyncReservedCount(ctx, tx, slot.ID); err != nil {
			return err
		}
		if previousSlotID != slot.ID {
			return s.ledger.SyncReservedCount(ctx, tx, previousSlotID)
		}
		return nil
	})

	return result, err
}

// Delete removes the reservation and recounts its slot inside one
// transaction, so the counter is never stale relative to stored rows.
func (s *reservationService) Delete(ctx context.Context, id uint) error {
	return s.reservationRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entity, err := s.reservationRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := s.ledger.Lock(ctx, tx, entity.DeliverySlotID); err != nil {
			return err
		}
		if err := s.reservationRepo.Delete(ctx, tx, entity); err != nil {
			return err
		}
		return s.ledger.SyncReservedCount(ctx, tx, entity.DeliverySlotID)
	})
}

func (s *reservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.reservationRepo.FindByID(ctx, nil, id)
}

func (s *reservationService) List(ctx context.Context) ([]models.Reservation, error) {
	return s.reservationRepo.FindAll(ctx)
}

func (s *reservationService) ListByCustomer(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	if err := requireCustomer(ctx, s.customerRepo, nil, customerID); err != nil {
		return nil, err
	}
	return s.reservationRepo.FindByCustomerID(ctx, customerID)
}

// loadAndLock runs the front of the validation pipeline: customer
// existence, address existence and ownership, then the slot lock and its
// template. The returned slot is locked in tx for the rest of the
// transaction.
func (s *reservationService) loadAndLock(ctx context.Context, tx *gorm.DB, input ReservationInput) (*models.DeliveryAddress, *models.DeliverySlot, *models.TimeSlotTemplate, error) {
	if err := requireCustomer(ctx, s.customerRepo, tx, input.CustomerID); err != nil {
		return nil, nil, nil, err
	}

	address, err := s.addressRepo.FindByID(ctx, tx, input.DeliveryAddressID)
	if err != nil {
		return nil, nil, nil, err
	}
	if address.CustomerID != input.CustomerID {
		return nil, nil, nil, apperr.Validation("delivery address %d does not belong to customer %d",
			address.ID, input.CustomerID)
	}

	slot, err := s.ledger.Lock(ctx, tx, input.DeliverySlotID)
	if err != nil {
		return nil, nil, nil, err
	}
	template, err := s.templateRepo.FindByID(ctx, tx, slot.TimeSlotTemplateID)
	if err != nil {
		return nil, nil, nil, err
	}
	return address, slot, template, nil
}

// validateZoneBinding checks the captured zone assignment: the address
// must carry a zone, and that zone must be bound to the reservation's
// slot. The two failures get distinct messages on purpose.
func validateZoneBinding(ctx context.Context, zoneRepo repository.ZoneRepository, tx *gorm.DB, address *models.DeliveryAddress, slotID uint) error {
	if address.ZoneCoverageID == nil {
		return apperr.Validation("delivery address %d has no coverage zone assigned", address.ID)
	}
	zone, err := zoneRepo.FindByID(ctx, tx, *address.ZoneCoverageID)
	if err != nil {
		return err
	}
	if zone.DeliverySlotID == nil || *zone.DeliverySlotID != slotID {
		return apperr.Validation("delivery address %d is not inside a zone bound to delivery slot %d",
			address.ID, slotID)
	}
	return nil
}

func buildReservedAt(date, clock string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid reservation date %q", date)
	}
	normalized, err := normalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	t, _ := time.Parse("15:04:05", normalized)
	return time.Date(day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

func validateSchedule(reservedAt time.Time, slot *models.DeliverySlot, template *models.TimeSlotTemplate) error {
	if reservedAt.Format("2006-01-02") != slot.DateString() {
		return apperr.Validation("reservation date must match the slot's delivery date %s", slot.DateString())
	}
	clock := reservedAt.Format("15:04:05")
	// Inclusive on both ends; zero-padded HH:MM:SS strings order correctly.
	if clock < template.StartTime || clock > template.EndTime {
		return apperr.Validation("reservation time %s is outside the slot window %s-%s",
			clock, template.StartTime, template.EndTime)
	}
	return nil
}

func resolveStatus(status *models.ReservationStatus) models.ReservationStatus {
	if status == nil {
		return models.StatusConfirmed
	}
	return *status
}

// applyChanges mutates the reservation from the validated input. The
// cancellation timestamp is stamped on the first transition into
// CANCELLED, kept on re-cancellation, and cleared when the reservation
// leaves CANCELLED.
func applyChanges(entity *models.Reservation, input ReservationInput, reservedAt time.Time, status models.ReservationStatus, now time.Time) {
	entity.CustomerID = input.CustomerID
	entity.DeliveryAddressID = input.DeliveryAddressID
	entity.DeliverySlotID = input.DeliverySlotID
	entity.ReservedAt = reservedAt
	entity.Status = status

	if status == models.StatusCancelled {
		if entity.CancelledAt == nil {
			entity.CancelledAt = &now
		}
	} else {
		entity.CancelledAt = nil
	}
}

func requireCustomer(ctx context.Context, customerRepo repository.CustomerRepository, tx *gorm.DB, customerID uint) error {
	exists, err := customerRepo.Exists(ctx, tx, customerID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("customer %d", customerID)
	}
	return nil
}

func normalizeClock(clock string) (string, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, clock); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", apperr.Validation("invalid reservation time %q", clock)
}
