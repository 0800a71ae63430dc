package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dmardones/delivery-slots/internal/models"
)

type CatalogRepository interface {
	UpsertRegion(ctx context.Context, region *models.Region) error
	UpsertCommune(ctx context.Context, commune *models.Commune) error
	FindRegions(ctx context.Context) ([]models.Region, error)
	FindRegionByID(ctx context.Context, id uint) (*models.Region, error)
	FindCommunesByRegion(ctx context.Context, regionID uint) ([]models.Commune, error)
	FindCommuneByID(ctx context.Context, id uint) (*models.Commune, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// Upserts keep ids from the upstream catalog so republished messages are
// idempotent.

func (r *catalogRepository) UpsertRegion(ctx context.Context, region *models.Region) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "code", "updated_at"}),
	}).Create(region).Error
}

func (r *catalogRepository) UpsertCommune(ctx context.Context, commune *models.Commune) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "region_id", "updated_at"}),
	}).Create(commune).Error
}

func (r *catalogRepository) FindRegions(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	err := r.db.WithContext(ctx).Order("id ASC").Find(&regions).Error
	return regions, err
}

func (r *catalogRepository) FindRegionByID(ctx context.Context, id uint) (*models.Region, error) {
	var region models.Region
	if err := r.db.WithContext(ctx).First(&region, id).Error; err != nil {
		return nil, notFound(err, "region", id)
	}
	return &region, nil
}

func (r *catalogRepository) FindCommunesByRegion(ctx context.Context, regionID uint) ([]models.Commune, error) {
	var communes []models.Commune
	err := r.db.WithContext(ctx).
		Where("region_id = ?", regionID).
		Order("name ASC").
		Find(&communes).Error
	return communes, err
}

func (r *catalogRepository) FindCommuneByID(ctx context.Context, id uint) (*models.Commune, error) {
	var commune models.Commune
	if err := r.db.WithContext(ctx).First(&commune, id).Error; err != nil {
		return nil, notFound(err, "commune", id)
	}
	return &commune, nil
}
