package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

// SlotLedger owns a delivery slot's capacity accounting. Admission
// checks and reserved-count writes only happen while the slot's row lock
// is held; releasing the lock between the check and the write would
// reopen the check-then-act race the lock exists to prevent.
type SlotLedger struct {
	slotRepo        repository.SlotRepository
	reservationRepo repository.ReservationRepository
}

func NewSlotLedger(slotRepo repository.SlotRepository, reservationRepo repository.ReservationRepository) *SlotLedger {
	return &SlotLedger{slotRepo: slotRepo, reservationRepo: reservationRepo}
}

// Lock acquires the slot's exclusive row lock inside tx and returns its
// current state. The lock is held until tx commits or rolls back.
func (l *SlotLedger) Lock(ctx context.Context, tx *gorm.DB, slotID uint) (*models.DeliverySlot, error) {
	return l.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
}

// Admit checks whether one more reservation with the target status fits
// the slot. Non-CONFIRMED statuses always admit: a cancellation never
// needs capacity. Must be called with the slot lock held in tx.
func (l *SlotLedger) Admit(ctx context.Context, tx *gorm.DB, slot *models.DeliverySlot, status models.ReservationStatus, excludeID *uint) error {
	if status != models.StatusConfirmed {
		return nil
	}
	confirmed, err := l.reservationRepo.CountConfirmedBySlot(ctx, tx, slot.ID, excludeID)
	if err != nil {
		return err
	}
	if confirmed+1 > int64(slot.MaxCapacity) {
		return apperr.Conflict("no capacity left in delivery slot %d", slot.ID)
	}
	return nil
}

// SyncReservedCount re-locks the slot, recounts its CONFIRMED
// reservations and persists the result. Called after every committed
// create, update or delete that touches the slot.
func (l *SlotLedger) SyncReservedCount(ctx context.Context, tx *gorm.DB, slotID uint) error {
	slot, err := l.slotRepo.FindByIDForUpdate(ctx, tx, slotID)
	if err != nil {
		return err
	}
	confirmed, err := l.reservationRepo.CountConfirmedBySlot(ctx, tx, slotID, nil)
	if err != nil {
		return err
	}
	slot.ReservedCount = int(confirmed)
	return l.slotRepo.Save(ctx, tx, slot)
}
