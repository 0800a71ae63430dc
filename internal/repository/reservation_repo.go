package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/models"
)

type ReservationRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	// UpdateVersioned writes the reservation only if the stored version
	// still matches expectedVersion, bumping the version in the same
	// statement. Returns false when another writer got there first.
	UpdateVersioned(ctx context.Context, tx *gorm.DB, reservation *models.Reservation, expectedVersion int) (bool, error)
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]models.Reservation, error)
	// CountConfirmedBySlot counts CONFIRMED reservations for the slot,
	// optionally excluding one reservation id (used on update).
	CountConfirmedBySlot(ctx context.Context, tx *gorm.DB, slotID uint, excludeID *uint) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error
	GetDB() *gorm.DB
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *reservationRepository) Create(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Create(reservation).Error
}

func (r *reservationRepository) UpdateVersioned(ctx context.Context, tx *gorm.DB, reservation *models.Reservation, expectedVersion int) (bool, error) {
	res := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ? AND version = ?", reservation.ID, expectedVersion).
		Updates(map[string]any{
			"customer_id":         reservation.CustomerID,
			"delivery_address_id": reservation.DeliveryAddressID,
			"delivery_slot_id":    reservation.DeliverySlotID,
			"status":              reservation.Status,
			"reserved_at":         reservation.ReservedAt,
			"cancelled_at":        reservation.CancelledAt,
			"version":             expectedVersion + 1,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	reservation.Version = expectedVersion + 1
	return true, nil
}

func (r *reservationRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := conn(tx, r.db).WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, notFound(err, "reservation", id)
	}
	return &reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Order("reserved_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("reserved_at DESC, id DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) CountConfirmedBySlot(ctx context.Context, tx *gorm.DB, slotID uint, excludeID *uint) (int64, error) {
	q := tx.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("delivery_slot_id = ? AND status = ?", slotID, models.StatusConfirmed)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *reservationRepository) Delete(ctx context.Context, tx *gorm.DB, reservation *models.Reservation) error {
	return tx.WithContext(ctx).Delete(reservation).Error
}
