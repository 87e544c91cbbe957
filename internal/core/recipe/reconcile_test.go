package recipe

import (
	"testing"

	"home-assistant/internal/pkg/common"
)

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Egg", "egg", true},
		{"chicken breast", "Chicken", true},
		{"蛋", "雞蛋", true},
		{"Milk", "milk", true},
		{"beef", "pork", false},
		{"", "egg", false},
		{"egg", "", false},
		{"  Egg  ", "egg", true},
	}
	for _, tt := range tests {
		if got := NamesMatch(tt.a, tt.b); got != tt.want {
			t.Errorf("NamesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestReconcileClassifiesHaveAndNeed(t *testing.T) {
	inventory := []common.Lot{
		{ID: 1, Name: "Egg", Quantity: 6, Unit: "unit", Area: common.AreaFridge},
	}
	p := &Proposal{
		Ingredients: []Item{{Name: "egg", Quantity: 4, Unit: "unit"}},
	}

	need, have := Reconcile(p, inventory)
	if len(need) != 0 || len(have) != 1 {
		t.Fatalf("expected 0 need / 1 have, got %d / %d", len(need), len(have))
	}
	if have[0].StockQty != 6 || !have[0].InStock {
		t.Errorf("expected stock=6 in-stock, got %+v", have[0])
	}

	p.Ingredients[0].Quantity = 10
	need, have = Reconcile(p, inventory)
	if len(need) != 1 || len(have) != 0 {
		t.Fatalf("requiring 10 should classify as need, got need=%d have=%d", len(need), len(have))
	}
}

func TestReconcileSumsMatchingLots(t *testing.T) {
	inventory := []common.Lot{
		{ID: 1, Name: "雞蛋", Quantity: 3, Unit: "unit", Area: common.AreaFridge},
		{ID: 2, Name: "蛋", Quantity: 3, Unit: "unit", Area: common.AreaDryGoods},
		{ID: 3, Name: "牛奶", Quantity: 500, Unit: "ml", Area: common.AreaFridge},
	}
	p := &Proposal{Ingredients: []Item{{Name: "蛋", Quantity: 5}}}

	need, have := Reconcile(p, inventory)
	if len(need) != 0 || len(have) != 1 {
		t.Fatalf("expected have, got need=%v have=%v", need, have)
	}
	if have[0].StockQty != 6 {
		t.Errorf("expected summed stock 6, got %d", have[0].StockQty)
	}
}

func TestReconcileDeduplicatesFirstWins(t *testing.T) {
	p := &Proposal{
		Ingredients:  []Item{{Name: "蛋", Quantity: 2, Unit: "unit"}},
		ShoppingList: []Item{{Name: "蛋", Quantity: 12, Unit: "unit"}, {Name: "鹽", Quantity: 5, Unit: "g"}},
	}
	need, have := Reconcile(p, nil)
	total := len(need) + len(have)
	if total != 2 {
		t.Fatalf("expected 2 unique items after dedup, got %d", total)
	}
	// 首次出現者優先：需求量應為 2 而非 12
	for _, a := range append(need, have...) {
		if a.Name == "蛋" && a.RequiredQty != 2 {
			t.Errorf("first occurrence should win, got required %v", a.RequiredQty)
		}
	}
}

func TestReconcileMissingQtyDefaultsToOne(t *testing.T) {
	inventory := []common.Lot{{ID: 1, Name: "醬油", Quantity: 1, Unit: "unit"}}
	p := &Proposal{Ingredients: []Item{{Name: "醬油"}}}

	need, have := Reconcile(p, inventory)
	if len(need) != 0 || len(have) != 1 {
		t.Fatalf("missing qty should compare against 1, got need=%v have=%v", need, have)
	}
	if have[0].RequiredQty != 0 {
		t.Errorf("stored required qty must not be mutated, got %v", have[0].RequiredQty)
	}
}

func TestReconcileNeedComesFirst(t *testing.T) {
	inventory := []common.Lot{{ID: 1, Name: "蛋", Quantity: 10, Unit: "unit"}}
	p := &Proposal{
		Ingredients: []Item{
			{Name: "蛋", Quantity: 2, Unit: "unit"},
			{Name: "松露", Quantity: 1, Unit: "g"},
		},
	}
	need, have := Reconcile(p, inventory)
	if len(need) != 1 || need[0].Name != "松露" {
		t.Fatalf("expected 松露 in need partition, got %v", need)
	}
	if len(have) != 1 || have[0].Name != "蛋" {
		t.Fatalf("expected 蛋 in have partition, got %v", have)
	}
}

func TestParseProposalStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"recipes\":[{\"name\":\"蕃茄炒蛋\",\"calories\":320," +
		"\"ingredients\":[{\"name\":\"蛋\",\"quantity\":3,\"unit\":\"unit\"}]," +
		"\"steps\":[\"打蛋\",\"下鍋\"]}]}\n```"
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Name != "蕃茄炒蛋" || p.Calories != 320 {
		t.Errorf("unexpected proposal: %+v", p)
	}
	if len(p.Ingredients) != 1 || p.Ingredients[0].Name != "蛋" {
		t.Errorf("unexpected ingredients: %+v", p.Ingredients)
	}
}

func TestParseProposalTakesFirstRecipeOnly(t *testing.T) {
	raw := `{"recipes":[{"name":"早餐"},{"name":"午餐"},{"name":"晚餐"}]}`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Name != "早餐" {
		t.Errorf("expected first recipe only, got %q", p.Name)
	}
}

func TestParseProposalBareObject(t *testing.T) {
	raw := `{"name":"咖哩飯","intro":"","ingredients":[{"name":"洋蔥"}]}`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Name != "咖哩飯" {
		t.Errorf("unexpected name %q", p.Name)
	}
	if p.Intro != "無描述" {
		t.Errorf("empty intro should get default, got %q", p.Intro)
	}
	if p.Ingredients[0].Quantity != 1 {
		t.Errorf("missing quantity should default to 1, got %v", p.Ingredients[0].Quantity)
	}
}

func TestParseProposalTextQuantity(t *testing.T) {
	raw := `{"recipes":[{"name":"滷肉飯","ingredients":[` +
		`{"name":"五花肉","quantity":300,"unit":"g"},` +
		`{"name":"醬油","quantity":"適量","unit":"ml"},` +
		`{"name":"米","quantity":"300g","unit":""}]}]}`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if len(p.Ingredients) != 3 {
		t.Fatalf("expected 3 ingredients, got %+v", p.Ingredients)
	}
	if p.Ingredients[0].Quantity != 300 {
		t.Errorf("numeric quantity should pass through, got %v", p.Ingredients[0].Quantity)
	}
	// 文字數量視為 1，不可丟掉整道食譜
	if p.Ingredients[1].Quantity != 1 {
		t.Errorf("text quantity should default to 1, got %v", p.Ingredients[1].Quantity)
	}
	if p.Ingredients[2].Quantity != 300 {
		t.Errorf("embedded number should be extracted, got %v", p.Ingredients[2].Quantity)
	}
}

func TestParseProposalUnquotedKeys(t *testing.T) {
	raw := `{recipes:[{name:"蛋花湯",ingredients:[{name:"蛋",quantity:2,unit:"unit"}]}]}`
	p, err := ParseProposal(raw)
	if err != nil {
		t.Fatalf("ParseProposal: %v", err)
	}
	if p.Name != "蛋花湯" || p.Ingredients[0].Quantity != 2 {
		t.Errorf("unexpected proposal: %+v", p)
	}
}

func TestParseProposalGarbage(t *testing.T) {
	if _, err := ParseProposal("抱歉，我無法產生食譜。"); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}
