package recipe

import (
	"context"
	"path/filepath"
	"testing"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
	"home-assistant/internal/storage/local"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store := local.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestApplyConsumptionDeducts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := store.AddLot(ctx, owner, "Chicken Breast", 500, "g", "2026-09-05", "", common.AreaFridge); err != nil {
		t.Fatalf("AddLot: %v", err)
	}

	p := &Proposal{Ingredients: []Item{{Name: "chicken breast", Quantity: 200, Unit: "g"}}}
	result, err := ApplyConsumption(ctx, store, owner, p)
	if err != nil {
		t.Fatalf("ApplyConsumption: %v", err)
	}
	if result.DeductedCount != 1 || len(result.Unresolved) != 0 {
		t.Fatalf("expected 1 deducted / 0 unresolved, got %+v", result)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 1 || lots[0].Quantity != 300 {
		t.Errorf("expected 300g remaining, got %+v", lots)
	}
}

func TestApplyConsumptionUnitMismatchBlocksMatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "Chicken Breast", 500, "g", "", "", common.AreaFridge)

	p := &Proposal{Ingredients: []Item{{Name: "chicken breast", Quantity: 200, Unit: "ml"}}}
	result, err := ApplyConsumption(ctx, store, owner, p)
	if err != nil {
		t.Fatalf("ApplyConsumption: %v", err)
	}
	if result.DeductedCount != 0 {
		t.Errorf("unit mismatch must not deduct, got %d", result.DeductedCount)
	}
	if len(result.Unresolved) != 1 || result.Unresolved[0] != "chicken breast" {
		t.Errorf("expected unresolved chicken breast, got %v", result.Unresolved)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if lots[0].Quantity != 500 {
		t.Errorf("stock must be unchanged, got %d", lots[0].Quantity)
	}
}

func TestApplyConsumptionOnlyFirstLotDebited(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "蛋", 2, "unit", "", "", common.AreaFridge)
	_ = store.AddLot(ctx, owner, "雞蛋", 10, "unit", "", "", common.AreaDryGoods)

	p := &Proposal{Ingredients: []Item{{Name: "蛋", Quantity: 5, Unit: "unit"}}}
	result, err := ApplyConsumption(ctx, store, owner, p)
	if err != nil {
		t.Fatalf("ApplyConsumption: %v", err)
	}
	if result.DeductedCount != 1 {
		t.Fatalf("expected single deduction, got %d", result.DeductedCount)
	}

	// 第一個批次扣到歸零刪除，第二個批次不動
	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 1 || lots[0].Name != "雞蛋" || lots[0].Quantity != 10 {
		t.Errorf("only first matching lot should be debited, got %+v", lots)
	}
}

func TestApplyConsumptionDeleteOnZero(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "牛奶", 200, "ml", "", "", common.AreaFridge)

	p := &Proposal{Ingredients: []Item{{Name: "牛奶", Quantity: 200, Unit: "ml"}}}
	if _, err := ApplyConsumption(ctx, store, owner, p); err != nil {
		t.Fatalf("ApplyConsumption: %v", err)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 0 {
		t.Errorf("lot reaching zero should be deleted, got %+v", lots)
	}
}

func TestApplyConsumptionIgnoresShoppingList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "鹽", 100, "g", "", "", common.AreaSeasoning)

	p := &Proposal{ShoppingList: []Item{{Name: "鹽", Quantity: 50, Unit: "g"}}}
	result, err := ApplyConsumption(ctx, store, owner, p)
	if err != nil {
		t.Fatalf("ApplyConsumption: %v", err)
	}
	if result.DeductedCount != 0 || len(result.Unresolved) != 0 {
		t.Errorf("shopping_list must not be deducted, got %+v", result)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if lots[0].Quantity != 100 {
		t.Errorf("stock must be unchanged, got %d", lots[0].Quantity)
	}
}
