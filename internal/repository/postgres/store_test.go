package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/mamadbah2/dairy/internal/repository"
)

// Requires a reachable database in TEST_POSTGRES_DSN.
func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = store.Close(ctx) })

	key := "test-" + uuid.NewString()
	t.Cleanup(func() { _, _ = store.pool.Exec(ctx, `DELETE FROM farm_blobs WHERE key = $1`, key) })

	if _, err := store.Get(ctx, key); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Put(ctx, key, []byte(`{"cows": []}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, key, []byte(`{"cows": [1]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"cows": [1]}` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestNewRejectsBadDSN(t *testing.T) {
	if _, err := New(context.Background(), "postgres://%zz", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
