package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ride2gather-server/internal/model"
)

var equipmentColumnNames = []string{"id", "name", "brand", "category", "created_at"}

func TestEquipmentRepository_Create(t *testing.T) {
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO equipment`).
			WithArgs("ZX-6R", "Kawasaki", "Supersport").
			WillReturnRows(sqlmock.NewRows(equipmentColumnNames).AddRow(4, "ZX-6R", "Kawasaki", "Supersport", now))

		got, err := NewEquipmentRepository(db).Create(context.Background(), model.Equipment{
			Name: "ZX-6R", Brand: "Kawasaki", Category: "Supersport",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.ID)
		assert.Equal(t, "Kawasaki", got.Brand)
	})

	t.Run("name only", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO equipment`).
			WithArgs("Ninja 400", "", "").
			WillReturnRows(sqlmock.NewRows(equipmentColumnNames).AddRow(6, "Ninja 400", "", "", now))

		got, err := NewEquipmentRepository(db).Create(context.Background(), model.Equipment{Name: "Ninja 400"})
		require.NoError(t, err)
		assert.Equal(t, int64(6), got.ID)
	})

	t.Run("error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`INSERT INTO equipment`).WillReturnError(errors.New("disk full"))

		_, err := NewEquipmentRepository(db).Create(context.Background(), model.Equipment{Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create equipment")
	})
}

func TestEquipmentRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT .* FROM equipment WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(equipmentColumnNames).AddRow(1, "YZF-R6", "Yamaha", "Supersport", time.Now()))

		got, err := NewEquipmentRepository(db).GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "YZF-R6", got.Name)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT .* FROM equipment WHERE id = \$1`).
			WillReturnRows(sqlmock.NewRows(equipmentColumnNames))

		_, err := NewEquipmentRepository(db).GetByID(context.Background(), 1)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestEquipmentRepository_FindFirstByName(t *testing.T) {
	t.Run("lowest id wins", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`WHERE name = \$1\s+ORDER BY id\s+LIMIT 1`).
			WithArgs("CBR600RR").
			WillReturnRows(sqlmock.NewRows(equipmentColumnNames).AddRow(2, "CBR600RR", "Honda", "Supersport", time.Now()))

		got, err := NewEquipmentRepository(db).FindFirstByName(context.Background(), "CBR600RR")
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM equipment`).WillReturnRows(sqlmock.NewRows(equipmentColumnNames))

		_, err := NewEquipmentRepository(db).FindFirstByName(context.Background(), "unknown")
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("error", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`FROM equipment`).WillReturnError(errors.New("boom"))

		_, err := NewEquipmentRepository(db).FindFirstByName(context.Background(), "x")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})
}
