package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/models"
)

type ZoneRepository interface {
	Create(ctx context.Context, zone *models.ZoneCoverage) error
	Save(ctx context.Context, zone *models.ZoneCoverage) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ZoneCoverage, error)
	FindAll(ctx context.Context) ([]models.ZoneCoverage, error)
	// FindActiveWithBoundary returns the candidate set for geographic
	// resolution: active zones that carry a boundary polygon.
	FindActiveWithBoundary(ctx context.Context) ([]models.ZoneCoverage, error)
	Delete(ctx context.Context, id uint) error
}

type zoneRepository struct {
	db *gorm.DB
}

func NewZoneRepository(db *gorm.DB) ZoneRepository {
	return &zoneRepository{db: db}
}

func (r *zoneRepository) Create(ctx context.Context, zone *models.ZoneCoverage) error {
	return r.db.WithContext(ctx).Create(zone).Error
}

func (r *zoneRepository) Save(ctx context.Context, zone *models.ZoneCoverage) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

func (r *zoneRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ZoneCoverage, error) {
	var zone models.ZoneCoverage
	if err := conn(tx, r.db).WithContext(ctx).First(&zone, id).Error; err != nil {
		return nil, notFound(err, "zone coverage", id)
	}
	return &zone, nil
}

func (r *zoneRepository) FindAll(ctx context.Context) ([]models.ZoneCoverage, error) {
	var zones []models.ZoneCoverage
	err := r.db.WithContext(ctx).Order("id ASC").Find(&zones).Error
	return zones, err
}

func (r *zoneRepository) FindActiveWithBoundary(ctx context.Context) ([]models.ZoneCoverage, error) {
	var zones []models.ZoneCoverage
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND boundary IS NOT NULL", true).
		Order("id ASC").
		Find(&zones).Error
	return zones, err
}

func (r *zoneRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ZoneCoverage{}, id).Error
}
