package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/Antoshhka/dogcare_bot/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Срок жизни кода приглашения по умолчанию
const inviteCodeTTL = 7 * 24 * time.Hour

type FamilyService struct {
	familyRepo *repository.FamilyRepository
	userRepo   *repository.UserRepository
	codeRepo   *repository.InviteCodeRepository
	logger     *zap.Logger
}

func NewFamilyService(
	familyRepo *repository.FamilyRepository,
	userRepo *repository.UserRepository,
	codeRepo *repository.InviteCodeRepository,
	logger *zap.Logger,
) *FamilyService {
	return &FamilyService{
		familyRepo: familyRepo,
		userRepo:   userRepo,
		codeRepo:   codeRepo,
		logger:     logger,
	}
}

// EnsureFamily возвращает семью пользователя, создавая её при необходимости
func (s *FamilyService) EnsureFamily(ctx context.Context, user *model.User) (int64, error) {
	if user.FamilyID != nil {
		return *user.FamilyID, nil
	}

	name := strings.TrimSpace("Семья " + user.FirstName)
	family := &model.Family{Name: name}
	if err := s.familyRepo.Create(ctx, family); err != nil {
		return 0, fmt.Errorf("%w: create family: %v", model.ErrStorage, err)
	}

	if err := s.familyRepo.AddMember(ctx, family.ID, user.ID); err != nil {
		return 0, fmt.Errorf("%w: add family member: %v", model.ErrStorage, err)
	}
	if err := s.userRepo.SetFamily(ctx, user.ID, family.ID); err != nil {
		return 0, fmt.Errorf("%w: set user family: %v", model.ErrStorage, err)
	}

	user.FamilyID = &family.ID

	s.logger.Info("Family created",
		zap.Int64("family_id", family.ID),
		zap.Int64("user_id", user.ID),
	)

	return family.ID, nil
}

// CreateInviteCode выпускает новый код приглашения в семью
func (s *FamilyService) CreateInviteCode(ctx context.Context, familyID int64) (*model.FamilyInviteCode, error) {
	expiresAt := time.Now().Add(inviteCodeTTL)

	code := &model.FamilyInviteCode{
		FamilyID:  familyID,
		Code:      generateInviteCode(),
		ExpiresAt: &expiresAt,
		IsActive:  true,
	}

	if err := s.codeRepo.Create(ctx, code); err != nil {
		return nil, fmt.Errorf("%w: create invite code: %v", model.ErrStorage, err)
	}

	s.logger.Info("Invite code created",
		zap.Int64("family_id", familyID),
		zap.String("code", code.Code),
	)

	return code, nil
}

// JoinByCode присоединяет пользователя к семье по коду приглашения
func (s *FamilyService) JoinByCode(ctx context.Context, user *model.User, rawCode string) (*model.Family, error) {
	normalized := strings.ToUpper(strings.TrimSpace(rawCode))
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty invite code", model.ErrValidation)
	}

	code, err := s.codeRepo.GetByCode(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: get invite code: %v", model.ErrStorage, err)
	}
	if code == nil || !code.IsValid() {
		return nil, fmt.Errorf("%w: invite code is invalid or expired", model.ErrNotFound)
	}

	if user.FamilyID != nil && *user.FamilyID == code.FamilyID {
		return nil, fmt.Errorf("%w: already a member of this family", model.ErrValidation)
	}

	family, err := s.familyRepo.GetByID(ctx, code.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("%w: get family: %v", model.ErrStorage, err)
	}
	if family == nil {
		return nil, fmt.Errorf("%w: family no longer exists", model.ErrNotFound)
	}

	if err := s.familyRepo.AddMember(ctx, family.ID, user.ID); err != nil {
		return nil, fmt.Errorf("%w: add family member: %v", model.ErrStorage, err)
	}
	if err := s.userRepo.SetFamily(ctx, user.ID, family.ID); err != nil {
		return nil, fmt.Errorf("%w: set user family: %v", model.ErrStorage, err)
	}
	if err := s.codeRepo.IncrementUses(ctx, code.ID); err != nil {
		return nil, fmt.Errorf("%w: increment code uses: %v", model.ErrStorage, err)
	}

	user.FamilyID = &family.ID

	s.logger.Info("User joined family",
		zap.Int64("user_id", user.ID),
		zap.Int64("family_id", family.ID),
		zap.String("code", code.Code),
	)

	return family, nil
}

// Members возвращает участников семьи
func (s *FamilyService) Members(ctx context.Context, familyID int64) ([]*model.User, error) {
	users, err := s.userRepo.GetByFamilyID(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("%w: get family members: %v", model.ErrStorage, err)
	}
	return users, nil
}

// generateInviteCode выдаёт короткий код из uuid, без дефисов, в верхнем регистре
func generateInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
