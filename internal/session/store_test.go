package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cartera-app/cartera-gateway/internal/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCreateGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{
		ID:        uuid.New(),
		Username:  "alice",
		Token:     "jwt-abc",
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second).UTC(),
	}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.CreatedAt.IsZero() {
		t.Error("CreatedAt not filled")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Username != "alice" || got.Token != "jwt-abc" {
		t.Errorf("got = %+v", got)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("expiry = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}
	if got.MenuCollapsed {
		t.Error("menu collapsed should default to false")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Get(context.Background(), uuid.New()); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{ID: uuid.New(), Username: "alice", Token: "t"}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("session survived delete: %v", err)
	}

	// deleting an unknown id is not an error
	if err := store.Delete(ctx, uuid.New()); err != nil {
		t.Errorf("Delete unknown: %v", err)
	}
}

func TestStoreSetMenuCollapsed(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sess := &domain.Session{ID: uuid.New(), Username: "alice", Token: "t"}
	if err := store.Create(ctx, sess); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.SetMenuCollapsed(ctx, sess.ID, true); err != nil {
		t.Fatalf("SetMenuCollapsed: %v", err)
	}
	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.MenuCollapsed {
		t.Error("preference not persisted")
	}

	if err := store.SetMenuCollapsed(ctx, uuid.New(), true); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestStorePurgeExpired(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	expired := &domain.Session{ID: uuid.New(), Username: "a", Token: "t", ExpiresAt: now.Add(-time.Hour)}
	live := &domain.Session{ID: uuid.New(), Username: "b", Token: "t", ExpiresAt: now.Add(time.Hour)}
	for _, sess := range []*domain.Session{expired, live} {
		if err := store.Create(ctx, sess); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	n, err := store.PurgeExpired(ctx, now)
	if err != nil {
		t.Fatalf("PurgeExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("purged %d sessions, want 1", n)
	}
	if _, err := store.Get(ctx, expired.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Error("expired session survived purge")
	}
	if _, err := store.Get(ctx, live.ID); err != nil {
		t.Errorf("live session purged: %v", err)
	}
}
