package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/models"
)

type TemplateRepository interface {
	Create(ctx context.Context, template *models.TimeSlotTemplate) error
	Save(ctx context.Context, template *models.TimeSlotTemplate) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TimeSlotTemplate, error)
	FindAll(ctx context.Context) ([]models.TimeSlotTemplate, error)
	Exists(ctx context.Context, id uint) (bool, error)
	ExistsByRange(ctx context.Context, start, end string, excludeID *uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *models.TimeSlotTemplate) error {
	err := r.db.WithContext(ctx).Create(template).Error
	return integrity(err, "time slot template already exists for that range")
}

func (r *templateRepository) Save(ctx context.Context, template *models.TimeSlotTemplate) error {
	err := r.db.WithContext(ctx).Save(template).Error
	return integrity(err, "time slot template already exists for that range")
}

func (r *templateRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.TimeSlotTemplate, error) {
	var template models.TimeSlotTemplate
	if err := conn(tx, r.db).WithContext(ctx).First(&template, id).Error; err != nil {
		return nil, notFound(err, "time slot template", id)
	}
	return &template, nil
}

func (r *templateRepository) FindAll(ctx context.Context) ([]models.TimeSlotTemplate, error) {
	var templates []models.TimeSlotTemplate
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&templates).Error
	return templates, err
}

func (r *templateRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TimeSlotTemplate{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *templateRepository) ExistsByRange(ctx context.Context, start, end string, excludeID *uint) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.TimeSlotTemplate{}).
		Where("start_time = ? AND end_time = ?", start, end)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TimeSlotTemplate{}, id).Error
}
