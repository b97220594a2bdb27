package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores when a uniqueness constraint rejects a write.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference is returned by stores when a write points at a row that does not exist.
	ErrInvalidReference = errors.New("referenced row does not exist")
)
