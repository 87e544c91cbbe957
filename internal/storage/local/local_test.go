package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestInitStartsEmptyWithoutSnapshot(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	lots, err := store.GetAllLots(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetAllLots: %v", err)
	}
	if len(lots) != 0 {
		t.Errorf("expected empty store, got %+v", lots)
	}
}

func TestInitRejectsForeignSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	// 未知欄位代表這不是我們寫出的快照檔，寧可報錯也不要默默載入
	if err := os.WriteFile(path, []byte(`{"next_id":1,"bogus_field":true}`), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	store := New(path)
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for snapshot with unknown fields")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()

	store := New(path)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := store.AddLot(ctx, 0, "米", 1000, "g", "", "2026-08-30", "General"); err != nil {
		t.Fatalf("AddLot: %v", err)
	}
	store.Close()

	reopened := New(path)
	if err := reopened.Init(ctx); err != nil {
		t.Fatalf("Init (reopen): %v", err)
	}
	defer reopened.Close()

	lots, err := reopened.GetAllLots(ctx, 0)
	if err != nil {
		t.Fatalf("GetAllLots: %v", err)
	}
	if len(lots) != 1 || lots[0].Name != "米" || lots[0].Quantity != 1000 {
		t.Errorf("unexpected lots after reopen: %+v", lots)
	}
}
