package memory

import (
	"context"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var _ model.EquipmentStore = (*EquipmentRepository)(nil)

type EquipmentRepository struct {
	s *Store
}

func NewEquipmentRepository(s *Store) *EquipmentRepository {
	return &EquipmentRepository{s: s}
}

// Create always inserts a new row; names are not unique.
func (r *EquipmentRepository) Create(_ context.Context, equipment model.Equipment) (model.Equipment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextEquipmentID++
	equipment.ID = r.s.nextEquipmentID
	equipment.CreatedAt = r.s.now()
	r.s.equipment[equipment.ID] = equipment

	return equipment, nil
}

func (r *EquipmentRepository) GetByID(_ context.Context, id int64) (model.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	equipment, ok := r.s.equipment[id]
	if !ok {
		return model.Equipment{}, model.ErrNotFound
	}
	return equipment, nil
}

func (r *EquipmentRepository) FindFirstByName(_ context.Context, name string) (model.Equipment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var (
		found model.Equipment
		ok    bool
	)
	for _, equipment := range r.s.equipment {
		if equipment.Name != name {
			continue
		}
		if !ok || equipment.ID < found.ID {
			found, ok = equipment, true
		}
	}
	if !ok {
		return model.Equipment{}, model.ErrNotFound
	}
	return found, nil
}
