package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/ride2gather-server/internal/model"
)

// AccountStore is a mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func (_m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	ret := _m.Called(ctx, account)
	if rf, ok := ret.Get(0).(func(context.Context, model.Account) (model.Account, error)); ok {
		return rf(ctx, account)
	}
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) GetByID(ctx context.Context, id int64) (model.Account, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	ret := _m.Called(ctx, username)
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) FindByIdentity(ctx context.Context, email, username string) (model.Account, error) {
	ret := _m.Called(ctx, email, username)
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) UpdateProfile(ctx context.Context, id int64, changes model.AccountProfileChanges) (model.Account, error) {
	ret := _m.Called(ctx, id, changes)
	if rf, ok := ret.Get(0).(func(context.Context, int64, model.AccountProfileChanges) (model.Account, error)); ok {
		return rf(ctx, id, changes)
	}
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) UpdateAvatar(ctx context.Context, id int64, avatarRef string) (model.Account, error) {
	ret := _m.Called(ctx, id, avatarRef)
	return ret.Get(0).(model.Account), ret.Error(1)
}

func (_m *AccountStore) List(ctx context.Context) ([]model.Account, error) {
	ret := _m.Called(ctx)
	var accounts []model.Account
	if v := ret.Get(0); v != nil {
		accounts = v.([]model.Account)
	}
	return accounts, ret.Error(1)
}

// NewAccountStore creates a mock and asserts its expectations on cleanup.
func NewAccountStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *AccountStore {
	m := &AccountStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
