package service

import (
	"context"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

type TemplateInput struct {
	StartTime string
	EndTime   string
	IsActive  *bool
}

type TemplateService interface {
	Create(ctx context.Context, input TemplateInput) (*models.TimeSlotTemplate, error)
	Update(ctx context.Context, id uint, input TemplateInput) (*models.TimeSlotTemplate, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.TimeSlotTemplate, error)
	List(ctx context.Context) ([]models.TimeSlotTemplate, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository) TemplateService {
	return &templateService{templateRepo: templateRepo}
}

func (s *templateService) Create(ctx context.Context, input TemplateInput) (*models.TimeSlotTemplate, error) {
	start, end, err := s.validateRange(ctx, input, nil)
	if err != nil {
		return nil, err
	}
	entity := &models.TimeSlotTemplate{
		StartTime: start,
		EndTime:   end,
		IsActive:  input.IsActive == nil || *input.IsActive,
	}
	if err := s.templateRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *templateService) Update(ctx context.Context, id uint, input TemplateInput) (*models.TimeSlotTemplate, error) {
	entity, err := s.templateRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	start, end, err := s.validateRange(ctx, input, &id)
	if err != nil {
		return nil, err
	}
	entity.StartTime = start
	entity.EndTime = end
	entity.IsActive = input.IsActive == nil || *input.IsActive
	if err := s.templateRepo.Save(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *templateService) Delete(ctx context.Context, id uint) error {
	if _, err := s.templateRepo.FindByID(ctx, nil, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}

func (s *templateService) Get(ctx context.Context, id uint) (*models.TimeSlotTemplate, error) {
	return s.templateRepo.FindByID(ctx, nil, id)
}

func (s *templateService) List(ctx context.Context) ([]models.TimeSlotTemplate, error) {
	return s.templateRepo.FindAll(ctx)
}

func (s *templateService) validateRange(ctx context.Context, input TemplateInput, excludeID *uint) (string, string, error) {
	start, err := normalizeClock(input.StartTime)
	if err != nil {
		return "", "", err
	}
	end, err := normalizeClock(input.EndTime)
	if err != nil {
		return "", "", err
	}
	if start >= end {
		return "", "", apperr.Validation("start time %s must be before end time %s", start, end)
	}

	exists, err := s.templateRepo.ExistsByRange(ctx, start, end, excludeID)
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", "", apperr.Conflict("a time slot template already exists for %s-%s", start, end)
	}
	return start, end, nil
}
