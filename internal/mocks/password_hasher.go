package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (_m *PasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	ret := _m.Called(ctx, password)
	return ret.String(0), ret.Error(1)
}

func (_m *PasswordHasher) Verify(ctx context.Context, hash, password string) (bool, error) {
	ret := _m.Called(ctx, hash, password)
	return ret.Bool(0), ret.Error(1)
}

// NewPasswordHasher creates a mock and asserts its expectations on cleanup.
func NewPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *PasswordHasher {
	m := &PasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
