package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmardones/delivery-slots/internal/models"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.DeliveryAddress) error
	Save(ctx context.Context, address *models.DeliveryAddress) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.DeliveryAddress, error)
	FindByCustomerID(ctx context.Context, customerID uint) ([]models.DeliveryAddress, error)
	Delete(ctx context.Context, id uint) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(ctx context.Context, address *models.DeliveryAddress) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *addressRepository) Save(ctx context.Context, address *models.DeliveryAddress) error {
	return r.db.WithContext(ctx).Save(address).Error
}

func (r *addressRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.DeliveryAddress, error) {
	var address models.DeliveryAddress
	if err := conn(tx, r.db).WithContext(ctx).First(&address, id).Error; err != nil {
		return nil, notFound(err, "delivery address", id)
	}
	return &address, nil
}

func (r *addressRepository) FindByCustomerID(ctx context.Context, customerID uint) ([]models.DeliveryAddress, error) {
	var addresses []models.DeliveryAddress
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&addresses).Error
	return addresses, err
}

func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.DeliveryAddress{}, id).Error
}
