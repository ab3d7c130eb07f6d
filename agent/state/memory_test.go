package state

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st := NewConversationState("s1", now)
	st.AppendUserTurn("How many invoices does customer 12 have?", now)
	st.AppendAssistantTurn(contractx.AgentTypeDatabase, "Customer 12 has 7 invoices.", now)

	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(loaded.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(loaded.Turns))
	}
	if loaded.Turns[1].Agent != contractx.AgentTypeDatabase {
		t.Fatalf("unexpected agent on assistant turn: %s", loaded.Turns[1].Agent)
	}

	// Mutating the loaded copy must not leak back into the store.
	loaded.Turns[0].Content = "mutated"
	again, err := store.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if again.Turns[0].Content == "mutated" {
		t.Fatal("store must hand out copies, not shared state")
	}
}

func TestMemoryStoreLoadMissing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	ctx := context.Background()
	now := time.Now()

	st := NewConversationState("s2", now)
	st.AppendUserTurn("hello", now)
	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Delete(ctx, "s2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Load(ctx, "s2"); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreRejectsInvalidState(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	if err := store.Save(context.Background(), nil); !errors.Is(err, ErrNilSessionState) {
		t.Fatalf("expected ErrNilSessionState, got %v", err)
	}
	if err := store.Save(context.Background(), &ConversationState{}); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}
