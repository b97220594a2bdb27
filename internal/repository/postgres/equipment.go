package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var _ model.EquipmentStore = (*EquipmentRepository)(nil)

type EquipmentRepository struct {
	db DBTX
}

func NewEquipmentRepository(db DBTX) *EquipmentRepository {
	return &EquipmentRepository{
		db: db,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, equipment model.Equipment) (model.Equipment, error) {
	query := `INSERT INTO equipment (name, brand, category)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, brand, category, created_at`

	var created model.Equipment
	err := r.db.QueryRowContext(ctx, query, equipment.Name, equipment.Brand, equipment.Category).Scan(
		&created.ID, &created.Name, &created.Brand, &created.Category, &created.CreatedAt,
	)
	if err != nil {
		return model.Equipment{}, fmt.Errorf("failed to create equipment: %w", err)
	}

	return created, nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (model.Equipment, error) {
	query := `SELECT id, name, brand, category, created_at FROM equipment WHERE id = $1`

	var equipment model.Equipment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&equipment.ID, &equipment.Name, &equipment.Brand, &equipment.Category, &equipment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Equipment{}, model.ErrNotFound
		}
		return model.Equipment{}, fmt.Errorf("failed to get equipment by id: %w", err)
	}

	return equipment, nil
}

func (r *EquipmentRepository) FindFirstByName(ctx context.Context, name string) (model.Equipment, error) {
	query := `SELECT id, name, brand, category, created_at FROM equipment
			  WHERE name = $1
			  ORDER BY id
			  LIMIT 1`

	var equipment model.Equipment
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&equipment.ID, &equipment.Name, &equipment.Brand, &equipment.Category, &equipment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Equipment{}, model.ErrNotFound
		}
		return model.Equipment{}, fmt.Errorf("failed to find equipment by name: %w", err)
	}

	return equipment, nil
}
