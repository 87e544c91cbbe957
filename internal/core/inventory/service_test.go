package inventory

import (
	"context"
	"path/filepath"
	"testing"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
	"home-assistant/internal/storage/local"
)

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store := local.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(store.Close)
	return NewService(store), store
}

func TestAddItemNormalizesUnit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.AddItem(ctx, owner, "麵粉", 1.5, "kg", "2026-09-10", "2026-08-30", common.AreaDryGoods); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lots, err := svc.ListAll(ctx, owner)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	if lots[0].Quantity != 1500 || lots[0].Unit != "g" {
		t.Errorf("expected 1500 g, got %d %s", lots[0].Quantity, lots[0].Unit)
	}
}

func TestAddItemMergesSameKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.AddItem(ctx, owner, "牛奶", 1, "l", "2026-09-05", "2026-08-28", common.AreaFridge); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// 同名同區同單位：合併，效期取較早者
	if err := svc.AddItem(ctx, owner, "牛奶", 0.5, "l", "2026-09-02", "2026-08-30", common.AreaFridge); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lots, err := svc.ListAll(ctx, owner)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected merged lot, got %d lots", len(lots))
	}
	got := lots[0]
	if got.Quantity != 1500 {
		t.Errorf("expected quantity 1500, got %d", got.Quantity)
	}
	if got.ExpiryDate != "2026-09-02" {
		t.Errorf("expected earlier expiry 2026-09-02, got %q", got.ExpiryDate)
	}
	if got.BuyDate != "2026-08-28" {
		t.Errorf("expected earlier buy date 2026-08-28, got %q", got.BuyDate)
	}
}

func TestAddItemMergeEmptyDateLoses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.AddItem(ctx, owner, "米", 1, "kg", "", "", common.AreaDryGoods); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := svc.AddItem(ctx, owner, "米", 2, "kg", "2027-01-01", "2026-08-30", common.AreaDryGoods); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lots, _ := svc.ListAll(ctx, owner)
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	if lots[0].ExpiryDate != "2027-01-01" {
		t.Errorf("empty expiry should yield to dated one, got %q", lots[0].ExpiryDate)
	}
}

func TestAddItemDifferentAreaNoMerge(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.AddItem(ctx, owner, "雞胸肉", 300, "g", "2026-09-01", "", common.AreaFridge)
	_ = svc.AddItem(ctx, owner, "雞胸肉", 300, "g", "2026-12-01", "", common.AreaFrozen)

	lots, _ := svc.ListAll(ctx, owner)
	if len(lots) != 2 {
		t.Fatalf("different areas must not merge, got %d lots", len(lots))
	}
}

func TestAddItemRejectsZeroQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.AddItem(context.Background(), storage.LocalOwnerID, "鹽", 0, "g", "", "", common.AreaSeasoning)
	if err == nil {
		t.Fatal("expected validation error for zero quantity")
	}
	if !common.IsValidationError(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestAddItemInvalidAreaFallsBack(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if err := svc.AddItem(ctx, owner, "零食", 2, "", "", "", "車庫"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	lots, _ := svc.ListAll(ctx, owner)
	if len(lots) != 1 || lots[0].Area != common.AreaGeneral {
		t.Errorf("unknown area should fall back to General, got %+v", lots)
	}
}

func TestAdjustQuantityDeletesAtZero(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.AddItem(ctx, owner, "蛋", 10, "piece", "2026-09-07", "", common.AreaFridge)
	lots, _ := svc.ListAll(ctx, owner)
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}
	id := lots[0].ID

	if err := svc.AdjustQuantity(ctx, owner, id, -4); err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	lots, _ = svc.ListAll(ctx, owner)
	if lots[0].Quantity != 6 {
		t.Errorf("expected 6 after deduction, got %d", lots[0].Quantity)
	}

	if err := svc.AdjustQuantity(ctx, owner, id, -6); err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	lots, _ = svc.ListAll(ctx, owner)
	if len(lots) != 0 {
		t.Errorf("lot should be deleted when quantity reaches zero, got %d lots", len(lots))
	}
}

func TestListByAreaSortsByExpiry(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.AddItem(ctx, owner, "優格", 1, "piece", "2026-09-10", "", common.AreaFridge)
	_ = svc.AddItem(ctx, owner, "豆腐", 1, "piece", "2026-09-01", "", common.AreaFridge)
	_ = svc.AddItem(ctx, owner, "醬油", 1, "piece", "", "", common.AreaFridge)

	lots, err := svc.ListByArea(ctx, owner, common.AreaFridge)
	if err != nil {
		t.Fatalf("ListByArea: %v", err)
	}
	if len(lots) != 3 {
		t.Fatalf("expected 3 lots, got %d", len(lots))
	}
	if lots[0].Name != "豆腐" || lots[1].Name != "優格" || lots[2].Name != "醬油" {
		t.Errorf("expected expiry-ascending order with empty last, got %s, %s, %s",
			lots[0].Name, lots[1].Name, lots[2].Name)
	}
}

func TestExpiringSoon(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_ = svc.AddItem(ctx, owner, "過期品", 1, "piece", "2020-01-01", "", common.AreaFridge)
	_ = svc.AddItem(ctx, owner, "長效品", 1, "piece", "2099-01-01", "", common.AreaDryGoods)
	_ = svc.AddItem(ctx, owner, "無效期", 1, "piece", "", "", common.AreaDryGoods)

	expiring, err := svc.ExpiringSoon(ctx, owner, 3)
	if err != nil {
		t.Fatalf("ExpiringSoon: %v", err)
	}
	if len(expiring) != 1 || expiring[0].Name != "過期品" {
		t.Errorf("expected only the expired lot, got %+v", expiring)
	}
}
