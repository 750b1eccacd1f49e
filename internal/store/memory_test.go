package store

import (
	"context"
	"errors"
	"testing"

	"github.com/tomboyo/hangman/internal/game"
)

func TestMemoryStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	g, err := game.New("gopher", 6)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if err := st.Save(ctx, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Get(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != g {
		t.Fatalf("get returned a different game: %p vs %p", got, g)
	}
}

func TestMemoryStoreMissing(t *testing.T) {
	st := NewMemoryStore()
	_, err := st.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
