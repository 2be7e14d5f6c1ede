package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/repository"
	"go.uber.org/zap"
)

type DogService struct {
	dogRepo       *repository.DogRepository
	familyService *FamilyService
	logger        *zap.Logger
}

func NewDogService(dogRepo *repository.DogRepository, familyService *FamilyService, logger *zap.Logger) *DogService {
	return &DogService{
		dogRepo:       dogRepo,
		familyService: familyService,
		logger:        logger,
	}
}

// Register регистрирует новую собаку в семье пользователя.
// Если пользователь ещё не состоит в семье, семья создаётся.
func (s *DogService) Register(ctx context.Context, user *model.User, name, breedType string, gender model.DogGender, birthDate *time.Time) (*model.Dog, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: dog name is required", model.ErrValidation)
	}
	if gender != model.DogGenderMale && gender != model.DogGenderFemale {
		return nil, fmt.Errorf("%w: unknown gender %q", model.ErrValidation, gender)
	}
	if birthDate != nil && birthDate.After(time.Now()) {
		return nil, fmt.Errorf("%w: birth date is in the future", model.ErrValidation)
	}

	familyID, err := s.familyService.EnsureFamily(ctx, user)
	if err != nil {
		return nil, err
	}

	dog := &model.Dog{
		FamilyID:  familyID,
		Name:      name,
		BreedType: strings.TrimSpace(breedType),
		Gender:    gender,
		BirthDate: birthDate,
	}

	if err := s.dogRepo.Create(ctx, dog); err != nil {
		return nil, fmt.Errorf("%w: create dog: %v", model.ErrStorage, err)
	}

	s.logger.Info("Dog registered",
		zap.Int64("dog_id", dog.ID),
		zap.Int64("family_id", familyID),
		zap.String("name", dog.Name),
	)

	return dog, nil
}

// List возвращает собак семьи
func (s *DogService) List(ctx context.Context, familyID int64) ([]*model.Dog, error) {
	dogs, err := s.dogRepo.GetByFamilyID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: list dogs: %v", model.ErrStorage, err)
	}
	return dogs, nil
}

// GetByID получает собаку, проверяя принадлежность семье
func (s *DogService) GetByID(ctx context.Context, dogID, familyID int64) (*model.Dog, error) {
	dog, err := s.dogRepo.GetByID(ctx, dogID)
	if err != nil {
		return nil, fmt.Errorf("%w: get dog: %v", model.ErrStorage, err)
	}
	if dog == nil || dog.FamilyID != familyID {
		return nil, fmt.Errorf("%w: dog %d", model.ErrNotFound, dogID)
	}
	return dog, nil
}

// Delete удаляет собаку вместе со всеми её расписаниями
func (s *DogService) Delete(ctx context.Context, dogID, familyID int64) error {
	if _, err := s.GetByID(ctx, dogID, familyID); err != nil {
		return err
	}

	affected, err := s.dogRepo.Delete(ctx, dogID)
	if err != nil {
		return fmt.Errorf("%w: delete dog: %v", model.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: dog %d", model.ErrNotFound, dogID)
	}

	s.logger.Info("Dog deleted", zap.Int64("dog_id", dogID))
	return nil
}
