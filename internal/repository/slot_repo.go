package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmardones/delivery-slots/internal/models"
)

type SlotRepository interface {
	Create(ctx context.Context, slot *models.DeliverySlot) error
	Save(ctx context.Context, tx *gorm.DB, slot *models.DeliverySlot) error
	FindByID(ctx context.Context, id uint) (*models.DeliverySlot, error)
	// FindByIDForUpdate acquires an exclusive row lock on the slot within
	// the given transaction. Every capacity check and reserved-count write
	// must happen while this lock is held.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.DeliverySlot, error)
	FindAll(ctx context.Context) ([]models.DeliverySlot, error)
	ExistsByDateAndTemplate(ctx context.Context, date datatypes.Date, templateID uint, excludeID *uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	GetDB() *gorm.DB
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *slotRepository) Create(ctx context.Context, slot *models.DeliverySlot) error {
	err := r.db.WithContext(ctx).Create(slot).Error
	return integrity(err, "delivery slot already exists for that date and template")
}

func (r *slotRepository) Save(ctx context.Context, tx *gorm.DB, slot *models.DeliverySlot) error {
	err := tx.WithContext(ctx).Save(slot).Error
	return integrity(err, "delivery slot already exists for that date and template")
}

func (r *slotRepository) FindByID(ctx context.Context, id uint) (*models.DeliverySlot, error) {
	var slot models.DeliverySlot
	if err := r.db.WithContext(ctx).First(&slot, id).Error; err != nil {
		return nil, notFound(err, "delivery slot", id)
	}
	return &slot, nil
}

func (r *slotRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.DeliverySlot, error) {
	var slot models.DeliverySlot
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&slot, id).Error; err != nil {
		return nil, notFound(err, "delivery slot", id)
	}
	return &slot, nil
}

func (r *slotRepository) FindAll(ctx context.Context) ([]models.DeliverySlot, error) {
	var slots []models.DeliverySlot
	err := r.db.WithContext(ctx).
		Order("delivery_date ASC, time_slot_template_id ASC").
		Find(&slots).Error
	return slots, err
}

func (r *slotRepository) ExistsByDateAndTemplate(ctx context.Context, date datatypes.Date, templateID uint, excludeID *uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.DeliverySlot{}).
		Where("delivery_date = ? AND time_slot_template_id = ?", date, templateID)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *slotRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DeliverySlot{}, id).Error
}
