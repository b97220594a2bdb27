package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

// Equipment maintains the equipment catalog.
type Equipment struct {
	equipment model.EquipmentStore
	logger    *logger.Logger
}

func NewEquipment(equipment model.EquipmentStore, logger *logger.Logger) *Equipment {
	return &Equipment{
		equipment: equipment,
		logger:    logger,
	}
}

// SeedCatalog creates every catalog entry whose name is not stored yet and
// returns how many were created. Running it again creates nothing.
func (e *Equipment) SeedCatalog(ctx context.Context, catalog []model.Equipment) (created int, err error) {
	ctx, span := startSpan(ctx, "Equipment.SeedCatalog")
	defer func() { endSpan(span, err) }()

	for _, entry := range catalog {
		_, err := e.equipment.FindFirstByName(ctx, entry.Name)
		if err == nil {
			e.logger.Debug("Equipment service: catalog entry exists",
				"equipment_name", entry.Name)
			continue
		}
		if !errors.Is(err, model.ErrNotFound) {
			return created, fmt.Errorf("failed to look up %q: %w", entry.Name, err)
		}

		item, err := e.equipment.Create(ctx, model.Equipment{
			Name:     entry.Name,
			Brand:    entry.Brand,
			Category: entry.Category,
		})
		if err != nil {
			return created, fmt.Errorf("failed to create %q: %w", entry.Name, err)
		}
		created++

		e.logger.Info("Equipment service: seeded catalog entry",
			"equipment_id", item.ID,
			"equipment_name", item.Name)
	}

	return created, nil
}
