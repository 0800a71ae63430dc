package service

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/dmardones/delivery-slots/internal/apperr"
	"github.com/dmardones/delivery-slots/internal/models"
	"github.com/dmardones/delivery-slots/internal/repository"
)

type SlotInput struct {
	TimeSlotTemplateID uint
	DeliveryDate       string
	DeliveryCost       float64
	MaxCapacity        *int
	ReservedCount      *int
	IsActive           *bool
}

type SlotService interface {
	Create(ctx context.Context, input SlotInput) (*models.DeliverySlot, error)
	Update(ctx context.Context, id uint, input SlotInput) (*models.DeliverySlot, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.DeliverySlot, error)
	List(ctx context.Context) ([]models.DeliverySlot, error)
}

type slotService struct {
	slotRepo     repository.SlotRepository
	templateRepo repository.TemplateRepository
}

func NewSlotService(slotRepo repository.SlotRepository, templateRepo repository.TemplateRepository) SlotService {
	return &slotService{slotRepo: slotRepo, templateRepo: templateRepo}
}

func (s *slotService) Create(ctx context.Context, input SlotInput) (*models.DeliverySlot, error) {
	date, err := s.validate(ctx, input, nil)
	if err != nil {
		return nil, err
	}

	entity := &models.DeliverySlot{}
	if err := applySlotChanges(entity, input, date); err != nil {
		return nil, err
	}
	if err := s.slotRepo.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *slotService) Update(ctx context.Context, id uint, input SlotInput) (*models.DeliverySlot, error) {
	entity, err := s.slotRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	date, err := s.validate(ctx, input, &id)
	if err != nil {
		return nil, err
	}
	if err := applySlotChanges(entity, input, date); err != nil {
		return nil, err
	}
	if err := s.slotRepo.Save(ctx, s.slotRepo.GetDB(), entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *slotService) Delete(ctx context.Context, id uint) error {
	if _, err := s.slotRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.slotRepo.Delete(ctx, id)
}

func (s *slotService) Get(ctx context.Context, id uint) (*models.DeliverySlot, error) {
	return s.slotRepo.FindByID(ctx, id)
}

func (s *slotService) List(ctx context.Context) ([]models.DeliverySlot, error) {
	return s.slotRepo.FindAll(ctx)
}

func (s *slotService) validate(ctx context.Context, input SlotInput, excludeID *uint) (datatypes.Date, error) {
	day, err := time.Parse("2006-01-02", input.DeliveryDate)
	if err != nil {
		return datatypes.Date{}, apperr.Validation("invalid delivery date %q", input.DeliveryDate)
	}
	date := datatypes.Date(day)

	exists, err := s.templateRepo.Exists(ctx, input.TimeSlotTemplateID)
	if err != nil {
		return datatypes.Date{}, err
	}
	if !exists {
		return datatypes.Date{}, apperr.NotFound("time slot template %d", input.TimeSlotTemplateID)
	}

	duplicate, err := s.slotRepo.ExistsByDateAndTemplate(ctx, date, input.TimeSlotTemplateID, excludeID)
	if err != nil {
		return datatypes.Date{}, err
	}
	if duplicate {
		return datatypes.Date{}, apperr.Conflict("a delivery slot already exists for %s and template %d",
			input.DeliveryDate, input.TimeSlotTemplateID)
	}
	return date, nil
}

func applySlotChanges(entity *models.DeliverySlot, input SlotInput, date datatypes.Date) error {
	maxCapacity := 0
	if input.MaxCapacity != nil {
		maxCapacity = *input.MaxCapacity
	}
	reservedCount := 0
	if input.ReservedCount != nil {
		reservedCount = *input.ReservedCount
	}
	if maxCapacity < 0 || reservedCount < 0 {
		return apperr.Validation("capacity values must be non-negative")
	}
	if reservedCount > maxCapacity {
		return apperr.Conflict("reserved count %d cannot exceed max capacity %d", reservedCount, maxCapacity)
	}

	entity.TimeSlotTemplateID = input.TimeSlotTemplateID
	entity.DeliveryDate = date
	entity.DeliveryCost = input.DeliveryCost
	entity.MaxCapacity = maxCapacity
	entity.ReservedCount = reservedCount
	entity.IsActive = input.IsActive == nil || *input.IsActive
	return nil
}
