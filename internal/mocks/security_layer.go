package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func (_m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	ret := _m.Called(protocol, addr)

	var r0 net.Listener
	if rf, ok := ret.Get(0).(func(string, string) net.Listener); ok {
		r0 = rf(protocol, addr)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(net.Listener)
	}

	return r0, ret.Error(1)
}

// NewSecurityLayer creates a mock and asserts its expectations on cleanup.
func NewSecurityLayer(t interface {
	mock.TestingT
	Cleanup(func())
}) *SecurityLayer {
	m := &SecurityLayer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
