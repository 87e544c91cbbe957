package shopping

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
	"home-assistant/internal/storage/local"
)

// stubClassifier 固定回覆的分類器
type stubClassifier struct {
	areas map[string]string
	err   error
}

func (c *stubClassifier) EstimateCategory(ctx context.Context, itemName string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	if area, ok := c.areas[itemName]; ok {
		return area, nil
	}
	return common.AreaGeneral, nil
}

func newTestService(t *testing.T, classifier Classifier) (*Service, storage.Store) {
	t.Helper()
	store := local.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(store.Close)
	return NewService(store, classifier), store
}

func TestPromoteCheckedItems(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{
		areas: map[string]string{"Soy Sauce": common.AreaSeasoning},
	})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.Add(ctx, owner, "Soy Sauce", "500ml", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items, _ := svc.List(ctx, owner)
	if err := svc.SetChecked(ctx, owner, items[0].ID, true); err != nil {
		t.Fatalf("SetChecked: %v", err)
	}

	promoted, err := svc.PromoteCheckedItems(ctx, owner)
	if err != nil {
		t.Fatalf("PromoteCheckedItems: %v", err)
	}
	if promoted != 1 {
		t.Fatalf("expected 1 promoted, got %d", promoted)
	}

	items, _ = svc.List(ctx, owner)
	if len(items) != 0 {
		t.Errorf("shopping list should be empty, got %+v", items)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 1 {
		t.Fatalf("expected 1 inventory lot, got %d", len(lots))
	}
	lot := lots[0]
	if lot.Name != "Soy Sauce" || lot.Quantity != 500 || lot.Unit != "ml" {
		t.Errorf("unexpected lot %+v", lot)
	}
	if lot.Area != common.AreaSeasoning {
		t.Errorf("expected classified area Seasoning, got %q", lot.Area)
	}
	if lot.BuyDate == "" || lot.ExpiryDate <= lot.BuyDate {
		t.Errorf("expected buy=today and expiry after buy, got buy=%q expiry=%q", lot.BuyDate, lot.ExpiryDate)
	}
}

func TestPromoteSkipsUnchecked(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.Add(ctx, owner, "米", "2kg", "")

	promoted, err := svc.PromoteCheckedItems(ctx, owner)
	if err != nil {
		t.Fatalf("PromoteCheckedItems: %v", err)
	}
	if promoted != 0 {
		t.Errorf("unchecked item must not be promoted, got %d", promoted)
	}
	items, _ := svc.List(ctx, owner)
	if len(items) != 1 {
		t.Errorf("item should stay on list, got %+v", items)
	}
	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 0 {
		t.Errorf("inventory should stay empty, got %+v", lots)
	}
}

func TestPromoteClassifierFailureSkipsItem(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{err: errors.New("backend down")})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.Add(ctx, owner, "牛奶", "1l", "")
	items, _ := svc.List(ctx, owner)
	_ = svc.SetChecked(ctx, owner, items[0].ID, true)

	promoted, err := svc.PromoteCheckedItems(ctx, owner)
	if err != nil {
		t.Fatalf("batch must not abort on per-item failure: %v", err)
	}
	if promoted != 0 {
		t.Errorf("failed item must not be promoted, got %d", promoted)
	}
	items, _ = svc.List(ctx, owner)
	if len(items) != 1 {
		t.Errorf("failed item should remain on list, got %+v", items)
	}
	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 0 {
		t.Errorf("inventory should stay empty, got %+v", lots)
	}
}

func TestPromoteFreeTextQuantityDefaults(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	// 無法解析的自由文字數量 → 1 unit
	_ = svc.Add(ctx, owner, "洗碗精", "適量", "")
	items, _ := svc.List(ctx, owner)
	_ = svc.SetChecked(ctx, owner, items[0].ID, true)

	promoted, err := svc.PromoteCheckedItems(ctx, owner)
	if err != nil {
		t.Fatalf("PromoteCheckedItems: %v", err)
	}
	if promoted != 1 {
		t.Fatalf("expected 1 promoted, got %d", promoted)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if lots[0].Quantity != 1 || lots[0].Unit != "unit" {
		t.Errorf("unparseable quantity should default to 1 unit, got %+v", lots[0])
	}
	if lots[0].Area != common.AreaGeneral {
		t.Errorf("classifier default should be General, got %q", lots[0].Area)
	}
}

func TestPromoteUsesStructuredUnitFallback(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	// 數量文字沒有內嵌單位時，採用結構化 unit 欄位
	_ = svc.Add(ctx, owner, "麵粉", "2", "kg")
	items, _ := svc.List(ctx, owner)
	_ = svc.SetChecked(ctx, owner, items[0].ID, true)

	if _, err := svc.PromoteCheckedItems(ctx, owner); err != nil {
		t.Fatalf("PromoteCheckedItems: %v", err)
	}

	lots, _ := store.GetAllLots(ctx, owner)
	if lots[0].Quantity != 2000 || lots[0].Unit != "g" {
		t.Errorf("expected 2000 g from structured unit fallback, got %+v", lots[0])
	}
}

func TestPromoteZeroQuantityStaysOnList(t *testing.T) {
	svc, store := newTestService(t, &stubClassifier{})
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.Add(ctx, owner, "醬油", "0g", ""); err != nil {
		t.Fatalf("Add: %v", err)
	}
	items, _ := svc.List(ctx, owner)
	if err := svc.SetChecked(ctx, owner, items[0].ID, true); err != nil {
		t.Fatalf("SetChecked: %v", err)
	}

	promoted, err := svc.PromoteCheckedItems(ctx, owner)
	if err != nil {
		t.Fatalf("PromoteCheckedItems: %v", err)
	}
	if promoted != 0 {
		t.Errorf("expected 0 promoted, got %d", promoted)
	}

	// 數量為零不可入庫，品項留在清單上
	lots, _ := store.GetAllLots(ctx, owner)
	if len(lots) != 0 {
		t.Errorf("zero-quantity item must not create a lot, got %+v", lots)
	}
	items, _ = svc.List(ctx, owner)
	if len(items) != 1 {
		t.Errorf("item should stay on the list, got %+v", items)
	}
}

func TestAddRejectsEmptyName(t *testing.T) {
	svc, _ := newTestService(t, &stubClassifier{})
	if err := svc.Add(context.Background(), storage.LocalOwnerID, "", "1", ""); err == nil {
		t.Fatal("expected validation error for empty name")
	}
}
