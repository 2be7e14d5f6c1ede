package repository

import (
	"context"
	"fmt"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// InviteCodeRepository управляет кодами приглашения в семью
type InviteCodeRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewInviteCodeRepository создаёт новый репозиторий
func NewInviteCodeRepository(pool *pgxpool.Pool, logger *zap.Logger) *InviteCodeRepository {
	return &InviteCodeRepository{pool: pool, logger: logger}
}

// Create создаёт новый код приглашения
func (r *InviteCodeRepository) Create(ctx context.Context, code *model.FamilyInviteCode) error {
	query := `
		INSERT INTO family_invite_codes (family_id, code, max_uses, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, current_uses, created_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		code.FamilyID,
		code.Code,
		code.MaxUses,
		code.ExpiresAt,
		code.IsActive,
	).Scan(&code.ID, &code.CurrentUses, &code.CreatedAt)

	if err != nil {
		return fmt.Errorf("create invite code: %w", err)
	}

	return nil
}

// GetByCode получает код приглашения по значению
func (r *InviteCodeRepository) GetByCode(ctx context.Context, code string) (*model.FamilyInviteCode, error) {
	query := `
		SELECT id, family_id, code, max_uses, current_uses, expires_at, is_active, created_at
		FROM family_invite_codes
		WHERE code = $1
	`

	invite := &model.FamilyInviteCode{}
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&invite.ID,
		&invite.FamilyID,
		&invite.Code,
		&invite.MaxUses,
		&invite.CurrentUses,
		&invite.ExpiresAt,
		&invite.IsActive,
		&invite.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invite code: %w", err)
	}

	return invite, nil
}

// IncrementUses увеличивает счётчик использований кода
func (r *InviteCodeRepository) IncrementUses(ctx context.Context, id int64) error {
	query := `UPDATE family_invite_codes SET current_uses = current_uses + 1 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment invite code uses: %w", err)
	}

	return nil
}

// Deactivate деактивирует код приглашения
func (r *InviteCodeRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE family_invite_codes SET is_active = false WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate invite code: %w", err)
	}

	return nil
}

// GetActiveByFamilyID получает активные коды семьи
func (r *InviteCodeRepository) GetActiveByFamilyID(ctx context.Context, familyID int64) ([]*model.FamilyInviteCode, error) {
	query := `
		SELECT id, family_id, code, max_uses, current_uses, expires_at, is_active, created_at
		FROM family_invite_codes
		WHERE family_id = $1 AND is_active = true
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("get invite codes by family: %w", err)
	}
	defer rows.Close()

	var codes []*model.FamilyInviteCode
	for rows.Next() {
		invite := &model.FamilyInviteCode{}
		err := rows.Scan(
			&invite.ID,
			&invite.FamilyID,
			&invite.Code,
			&invite.MaxUses,
			&invite.CurrentUses,
			&invite.ExpiresAt,
			&invite.IsActive,
			&invite.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invite code: %w", err)
		}
		codes = append(codes, invite)
	}

	return codes, nil
}
