package repository

import (
	"context"
	"fmt"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// FamilyRepository управляет семьями в базе данных
type FamilyRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewFamilyRepository создаёт новый репозиторий
func NewFamilyRepository(pool *pgxpool.Pool, logger *zap.Logger) *FamilyRepository {
	return &FamilyRepository{pool: pool, logger: logger}
}

// Create создаёт новую семью
func (r *FamilyRepository) Create(ctx context.Context, family *model.Family) error {
	query := `
		INSERT INTO families (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, family.Name).Scan(&family.ID, &family.CreatedAt)
	if err != nil {
		return fmt.Errorf("create family: %w", err)
	}

	return nil
}

// GetByID получает семью по ID
func (r *FamilyRepository) GetByID(ctx context.Context, id int64) (*model.Family, error) {
	query := `SELECT id, name, created_at FROM families WHERE id = $1`

	family := &model.Family{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&family.ID, &family.Name, &family.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get family by id: %w", err)
	}

	return family, nil
}

// AddMember добавляет участника семьи
func (r *FamilyRepository) AddMember(ctx context.Context, familyID, userID int64) error {
	query := `
		INSERT INTO family_members (family_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.pool.Exec(ctx, query, familyID, userID)
	if err != nil {
		return fmt.Errorf("add family member: %w", err)
	}

	return nil
}

// CountMembers возвращает количество участников семьи
func (r *FamilyRepository) CountMembers(ctx context.Context, familyID int64) (int, error) {
	query := `SELECT COUNT(*) FROM family_members WHERE family_id = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, familyID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count family members: %w", err)
	}

	return count, nil
}
