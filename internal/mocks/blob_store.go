package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// BlobStore is a mock of model.BlobStore.
type BlobStore struct {
	mock.Mock
}

func (_m *BlobStore) Upload(ctx context.Context, key string, reader io.Reader) error {
	ret := _m.Called(ctx, key, reader)
	return ret.Error(0)
}

func (_m *BlobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)
	var rc io.ReadCloser
	if v := ret.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, ret.Error(1)
}

func (_m *BlobStore) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

func (_m *BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

// NewBlobStore creates a mock and asserts its expectations on cleanup.
func NewBlobStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *BlobStore {
	m := &BlobStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
