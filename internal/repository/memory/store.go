// Package memory keeps accounts and equipment in process memory.
// It enforces the same uniqueness and foreign-key rules as the Postgres schema.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var _ model.Pinger = (*Store)(nil)

// Store is the shared state behind AccountRepository and EquipmentRepository.
type Store struct {
	mu              sync.RWMutex
	accounts        map[int64]model.Account
	equipment       map[int64]model.Equipment
	nextAccountID   int64
	nextEquipmentID int64
	now             func() time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:  map[int64]model.Account{},
		equipment: map[int64]model.Equipment{},
		now:       time.Now,
	}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error {
	return nil
}
