package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/sinarjaya/maintenance-panel/internal/api/view"
)

func newTestStore(t *testing.T) *StateStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStateStore(client)
}

func TestStateStore_PutTake(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := view.PageState{
		Flash:  view.Flash{Success: "User created successfully."},
		Errors: map[string]string{"email": "The email has already been taken."},
		Old:    map[string]string{"name": "Alice"},
	}
	if err := store.Put(ctx, "tok1", want); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := store.Take(ctx, "tok1")
	if err != nil {
		t.Fatalf("Take returned error: %v", err)
	}
	if got == nil {
		t.Fatalf("expected state, got nil")
	}
	if got.Flash.Success != want.Flash.Success {
		t.Fatalf("flash = %+v, want %+v", got.Flash, want.Flash)
	}
	if got.Errors["email"] != want.Errors["email"] || got.Old["name"] != want.Old["name"] {
		t.Fatalf("state mismatch: %+v", got)
	}
}

func TestStateStore_TakeIsOneShot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "tok1", view.PageState{Flash: view.Flash{Success: "ok"}}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	if st, err := store.Take(ctx, "tok1"); err != nil || st == nil {
		t.Fatalf("first Take = (%v, %v), want state", st, err)
	}
	if st, err := store.Take(ctx, "tok1"); err != nil || st != nil {
		t.Fatalf("second Take = (%v, %v), want nil state", st, err)
	}
}

func TestStateStore_TakeUnknownToken(t *testing.T) {
	store := newTestStore(t)

	st, err := store.Take(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Take returned error: %v", err)
	}
	if st != nil {
		t.Fatalf("expected nil state for unknown token, got %+v", st)
	}
}
