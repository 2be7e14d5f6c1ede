package repository

import (
	"context"
	"fmt"

	"github.com/Antoshhka/dogcare_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// DogRepository управляет собаками в базе данных
type DogRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDogRepository создаёт новый репозиторий
func NewDogRepository(pool *pgxpool.Pool, logger *zap.Logger) *DogRepository {
	return &DogRepository{pool: pool, logger: logger}
}

// Create создаёт новую собаку
func (r *DogRepository) Create(ctx context.Context, dog *model.Dog) error {
	query := `
		INSERT INTO dogs (family_id, name, breed_type, gender, birth_date, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		dog.FamilyID,
		dog.Name,
		dog.BreedType,
		dog.Gender,
		dog.BirthDate,
		dog.ProfileImage,
	).Scan(&dog.ID, &dog.CreatedAt, &dog.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create dog: %w", err)
	}

	return nil
}

// GetByID получает собаку по ID
func (r *DogRepository) GetByID(ctx context.Context, id int64) (*model.Dog, error) {
	query := `
		SELECT id, family_id, name, breed_type, gender, birth_date, profile_image, created_at, updated_at
		FROM dogs
		WHERE id = $1
	`

	dog := &model.Dog{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&dog.ID,
		&dog.FamilyID,
		&dog.Name,
		&dog.BreedType,
		&dog.Gender,
		&dog.BirthDate,
		&dog.ProfileImage,
		&dog.CreatedAt,
		&dog.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dog by id: %w", err)
	}

	return dog, nil
}

// GetByFamilyID получает всех собак семьи
func (r *DogRepository) GetByFamilyID(ctx context.Context, familyID int64) ([]*model.Dog, error) {
	query := `
		SELECT id, family_id, name, breed_type, gender, birth_date, profile_image, created_at, updated_at
		FROM dogs
		WHERE family_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("get dogs by family: %w", err)
	}
	defer rows.Close()

	var dogs []*model.Dog
	for rows.Next() {
		dog := &model.Dog{}
		err := rows.Scan(
			&dog.ID,
			&dog.FamilyID,
			&dog.Name,
			&dog.BreedType,
			&dog.Gender,
			&dog.BirthDate,
			&dog.ProfileImage,
			&dog.CreatedAt,
			&dog.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan dog: %w", err)
		}
		dogs = append(dogs, dog)
	}

	return dogs, nil
}

// Update обновляет данные собаки
func (r *DogRepository) Update(ctx context.Context, dog *model.Dog) error {
	query := `
		UPDATE dogs
		SET name = $2, breed_type = $3, gender = $4, birth_date = $5, profile_image = $6, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(
		ctx,
		query,
		dog.ID,
		dog.Name,
		dog.BreedType,
		dog.Gender,
		dog.BirthDate,
		dog.ProfileImage,
	).Scan(&dog.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update dog: %w", err)
	}

	return nil
}

// Delete удаляет собаку (расписания удаляются каскадом)
func (r *DogRepository) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM dogs WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete dog: %w", err)
	}

	return tag.RowsAffected(), nil
}
