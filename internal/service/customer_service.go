package service

import (
	"context"
	"strings"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

type CustomerInput struct {
	FullName string
	Email    string
	Phone    string
	Type     *models.CustomerType
}

type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*models.Customer, error)
	Get(ctx context.Context, id uint) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.FullName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, apperr.Validation("full name and email are required")
	}

	customerType := models.CustomerTypeBuyer
	if input.Type != nil {
		customerType = *input.Type
	}

	entity := &models.Customer{
		FullName: name,
		Email:    email,
		Phone:    strings.TrimSpace(input.Phone),
		Type:     customerType,
	}
	if err := s.customerRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.customerRepo.FindByID(ctx, id)
}

func (s *customerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}
