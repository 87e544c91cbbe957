package recipe

import (
	"context"
	"errors"
	"testing"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
)

type stubGenerator struct {
	proposal *Proposal
	err      error
	calls    int
}

func (g *stubGenerator) GenerateDailyRecipe(ctx context.Context, family []common.FamilyMember, equipment []string, inventory []common.Lot) (*Proposal, error) {
	g.calls++
	return g.proposal, g.err
}

func (g *stubGenerator) GenerateRecipeImage(ctx context.Context, keywords string) (string, error) {
	return "", errors.New("no image backend in tests")
}

func TestDailyGeneratesAndPersists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	gen := &stubGenerator{proposal: &Proposal{
		Name:        "蕃茄炒蛋",
		Calories:    320,
		Ingredients: []Item{{Name: "蛋", Quantity: 3, Unit: "unit"}},
	}}
	svc := NewService(store, gen)

	p, err := svc.Daily(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if p.Name != "蕃茄炒蛋" {
		t.Errorf("unexpected proposal %+v", p)
	}

	// 第二次讀取走落地的 blob，不再呼叫產生器
	p2, err := svc.Daily(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("Daily (cached): %v", err)
	}
	if p2.Name != p.Name || gen.calls != 1 {
		t.Errorf("expected persisted recipe reuse, calls=%d", gen.calls)
	}

	// 不同日期要重新產生
	if _, err := svc.Daily(ctx, owner, "2026-08-31"); err != nil {
		t.Fatalf("Daily (next day): %v", err)
	}
	if gen.calls != 2 {
		t.Errorf("expected regeneration for new date, calls=%d", gen.calls)
	}
}

func TestDailyGeneratorFailure(t *testing.T) {
	store := newTestStore(t)
	svc := NewService(store, &stubGenerator{err: errors.New("backend down")})

	if _, err := svc.Daily(context.Background(), storage.LocalOwnerID, "2026-08-30"); err == nil {
		t.Fatal("expected error when generator fails")
	}
}

func TestReconcileDaily(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "蛋", 6, "unit", "", "", common.AreaFridge)

	gen := &stubGenerator{proposal: &Proposal{
		Name: "歐姆蛋",
		Ingredients: []Item{
			{Name: "蛋", Quantity: 3, Unit: "unit"},
			{Name: "起司", Quantity: 50, Unit: "g"},
		},
	}}
	svc := NewService(store, gen)

	need, have, err := svc.ReconcileDaily(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("ReconcileDaily: %v", err)
	}
	if len(have) != 1 || have[0].Name != "蛋" {
		t.Errorf("expected 蛋 in have, got %v", have)
	}
	if len(need) != 1 || need[0].Name != "起司" {
		t.Errorf("expected 起司 in need, got %v", need)
	}
}

func TestExportNeedsAddsMissingIngredients(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "蛋", 6, "unit", "", "", common.AreaFridge)
	_ = store.AddShoppingItem(ctx, owner, "起司", "50", "g")

	gen := &stubGenerator{proposal: &Proposal{
		Name: "焗烤蛋",
		Ingredients: []Item{
			{Name: "蛋", Quantity: 3, Unit: "unit"},
			{Name: "起司", Quantity: 50, Unit: "g"},
			{Name: "牛奶", Quantity: 200, Unit: "ml"},
		},
	}}
	svc := NewService(store, gen)

	added, err := svc.ExportNeeds(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("ExportNeeds: %v", err)
	}
	// 蛋已有庫存、起司已在清單上，只應加入牛奶
	if added != 1 {
		t.Errorf("expected 1 item added, got %d", added)
	}

	items, _ := store.GetShoppingList(ctx, owner)
	if len(items) != 2 {
		t.Fatalf("expected 2 shopping items, got %d", len(items))
	}
	found := false
	for _, item := range items {
		if item.ItemName == "牛奶" && item.Quantity == "200" && item.Unit == "ml" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 牛奶 200ml on the list, got %v", items)
	}
}

func TestCookDeductsFromDailyRecipe(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = store.AddLot(ctx, owner, "蛋", 6, "unit", "", "", common.AreaFridge)

	gen := &stubGenerator{proposal: &Proposal{
		Name:        "歐姆蛋",
		Ingredients: []Item{{Name: "蛋", Quantity: 3, Unit: "unit"}},
	}}
	svc := NewService(store, gen)

	result, err := svc.Cook(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("Cook: %v", err)
	}
	if result.DeductedCount != 1 || len(result.Unresolved) != 0 {
		t.Errorf("unexpected result %+v", result)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if lots[0].Quantity != 3 {
		t.Errorf("expected 3 eggs remaining, got %d", lots[0].Quantity)
	}
}
