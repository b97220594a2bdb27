package model

import (
	"context"
	"time"
)

// EquipmentStore defines persistence operations for equipment.
// Name is not unique: several rows may share it.
type EquipmentStore interface {
	Create(ctx context.Context, equipment Equipment) (Equipment, error)
	GetByID(ctx context.Context, id int64) (Equipment, error)
	// FindFirstByName returns the lowest-id equipment with exactly this name.
	FindFirstByName(ctx context.Context, name string) (Equipment, error)
}

// Equipment is a named piece of equipment (a bike) a profile may point to.
type Equipment struct {
	ID        int64
	Name      string
	Brand     string
	Category  string
	CreatedAt time.Time
}

// DefaultEquipmentCatalog is the equipment seeded into a fresh database.
var DefaultEquipmentCatalog = []Equipment{
	{Name: "YZF-R6", Brand: "Yamaha", Category: "Supersport"},
	{Name: "CBR600RR", Brand: "Honda", Category: "Supersport"},
	{Name: "GSX-R600", Brand: "Suzuki", Category: "Supersport"},
	{Name: "ZX-6R", Brand: "Kawasaki", Category: "Supersport"},
	{Name: "Panigale V2", Brand: "Ducati", Category: "Supersport"},
}
