// Package repository defines the persistence boundary shared by every
// snapshot backend.
package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a BlobStore when no value is stored under a key.
var ErrNotFound = errors.New("blob not found")

// BlobStore persists opaque values under string keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close(ctx context.Context) error
}
