package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/store"
)

func TestLastSaved(t *testing.T) {
	ctx := context.Background()
	kv, err := store.Open(filepath.Join(t.TempDir(), "fuelsync.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer kv.Close()

	if _, ok := lastSaved(ctx, kv); ok {
		t.Fatal("lastSaved on an empty database should report nothing")
	}

	// Opening an empty log writes the sample entries.
	fuel.Open(ctx, kv)
	at, ok := lastSaved(ctx, kv)
	if !ok {
		t.Fatal("lastSaved after seeding reported nothing")
	}
	if d := time.Since(at); d < -time.Minute || d > time.Minute {
		t.Fatalf("lastSaved = %v, want about now", at)
	}
}
