package calorie

import (
	"context"
	"path/filepath"
	"testing"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
	"home-assistant/internal/storage/local"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := local.New(filepath.Join(t.TempDir(), "snapshot.json"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(store.Close)
	return NewService(store)
}

func TestDailySummary(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	records := []common.CalorieRecord{
		{Date: "2026-08-30", MealType: "breakfast", FoodName: "吐司", Calories: 250},
		{Date: "2026-08-30", MealType: "breakfast", FoodName: "豆漿", Calories: 120},
		{Date: "2026-08-30", MealType: "dinner", FoodName: "咖哩飯", Calories: 650},
		{Date: "2026-08-29", MealType: "lunch", FoodName: "便當", Calories: 800},
	}
	for _, r := range records {
		if _, err := svc.AddRecord(ctx, owner, r); err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
	}

	summary, err := svc.Daily(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if summary.Total != 1020 {
		t.Errorf("expected total 1020, got %d", summary.Total)
	}
	if summary.Breakdown["breakfast"] != 370 || summary.Breakdown["dinner"] != 650 {
		t.Errorf("unexpected breakdown %v", summary.Breakdown)
	}
}

func TestWeeklyGapFill(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	_, _ = svc.AddRecord(ctx, owner, common.CalorieRecord{Date: "2026-08-28", MealType: "lunch", FoodName: "麵", Calories: 500})
	_, _ = svc.AddRecord(ctx, owner, common.CalorieRecord{Date: "2026-08-30", MealType: "dinner", FoodName: "飯", Calories: 700})
	// 超出七天窗口的紀錄不應出現
	_, _ = svc.AddRecord(ctx, owner, common.CalorieRecord{Date: "2026-08-20", MealType: "lunch", FoodName: "舊紀錄", Calories: 999})

	week, err := svc.Weekly(ctx, owner, "2026-08-30")
	if err != nil {
		t.Fatalf("Weekly: %v", err)
	}
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Date != "2026-08-24" || week[6].Date != "2026-08-30" {
		t.Errorf("unexpected window %s .. %s", week[0].Date, week[6].Date)
	}

	byDate := map[string]int{}
	for _, d := range week {
		byDate[d.Date] = d.Total
	}
	if byDate["2026-08-28"] != 500 || byDate["2026-08-30"] != 700 {
		t.Errorf("unexpected totals %v", byDate)
	}
	if byDate["2026-08-25"] != 0 {
		t.Errorf("days without records must be zero-filled, got %d", byDate["2026-08-25"])
	}
}

func TestAddRecordValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	owner := storage.LocalOwnerID

	if _, err := svc.AddRecord(ctx, owner, common.CalorieRecord{FoodName: "", Calories: 100}); err == nil {
		t.Error("expected error for empty food name")
	}
	if _, err := svc.AddRecord(ctx, owner, common.CalorieRecord{FoodName: "麵", Calories: -1}); err == nil {
		t.Error("expected error for negative calories")
	}

	// 省略日期時補今天
	id, err := svc.AddRecord(ctx, owner, common.CalorieRecord{FoodName: "麵", MealType: "lunch", Calories: 400})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero record id")
	}
}
