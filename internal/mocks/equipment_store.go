package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ride2gather-server/internal/model"
)

// EquipmentStore is a mock of model.EquipmentStore.
type EquipmentStore struct {
	mock.Mock
}

func (_m *EquipmentStore) Create(ctx context.Context, equipment model.Equipment) (model.Equipment, error) {
	ret := _m.Called(ctx, equipment)
	return ret.Get(0).(model.Equipment), ret.Error(1)
}

func (_m *EquipmentStore) GetByID(ctx context.Context, id int64) (model.Equipment, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Equipment), ret.Error(1)
}

func (_m *EquipmentStore) FindFirstByName(ctx context.Context, name string) (model.Equipment, error) {
	ret := _m.Called(ctx, name)
	return ret.Get(0).(model.Equipment), ret.Error(1)
}

// NewEquipmentStore creates a mock and asserts its expectations on cleanup.
func NewEquipmentStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *EquipmentStore {
	m := &EquipmentStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
