package units

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		qty      float64
		unit     string
		wantQty  int
		wantUnit Unit
	}{
		{1, "kg", 1000, Gram},
		{1, "KG", 1000, Gram},
		{2, "kilogram", 2000, Gram},
		{2.5, "l", 2500, Milliliter},
		{1, "liter", 1000, Milliliter},
		{500, "g", 500, Gram},
		{500, "gram", 500, Gram},
		{330, "ml", 330, Milliliter},
		{3, "box", 3, Piece},
		{3, "", 3, Piece},
		{1.5, "kg", 1500, Gram},
		{0.3, "kg", 300, Gram},
		{2.7, "", 2, Piece},
		{-5, "g", 0, Gram},
	}
	for _, tc := range cases {
		gotQty, gotUnit := Normalize(tc.qty, tc.unit)
		if gotQty != tc.wantQty || gotUnit != tc.wantUnit {
			t.Errorf("Normalize(%v, %q) = (%d, %s), want (%d, %s)",
				tc.qty, tc.unit, gotQty, gotUnit, tc.wantQty, tc.wantUnit)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	cases := []struct {
		qty  float64
		unit string
	}{
		{1, "kg"},
		{2.5, "l"},
		{300, "g"},
		{3, "box"},
		{0, ""},
	}
	for _, tc := range cases {
		qty1, unit1 := Normalize(tc.qty, tc.unit)
		qty2, unit2 := Normalize(float64(qty1), string(unit1))
		if qty1 != qty2 || unit1 != unit2 {
			t.Errorf("Normalize(%v, %q) not idempotent: first (%d, %s), second (%d, %s)",
				tc.qty, tc.unit, qty1, unit1, qty2, unit2)
		}
	}
}

func TestNormalizeString(t *testing.T) {
	cases := []struct {
		raw      string
		fallback string
		wantQty  int
		wantUnit Unit
	}{
		{"300g", "", 300, Gram},
		{"1.5kg", "", 1500, Gram},
		{"500ml", "", 500, Milliliter},
		{"2 l", "", 2000, Milliliter},
		{"3", "g", 3, Gram},
		{"3", "", 3, Piece},
		{"2盒", "", 2, Piece},
		{"", "", 1, Piece},
		{"適量", "", 1, Piece},
		{"", "ml", 1, Milliliter},
		{"100%", "", 100, Piece},
	}
	for _, tc := range cases {
		gotQty, gotUnit := NormalizeString(tc.raw, tc.fallback)
		if gotQty != tc.wantQty || gotUnit != tc.wantUnit {
			t.Errorf("NormalizeString(%q, %q) = (%d, %s), want (%d, %s)",
				tc.raw, tc.fallback, gotQty, gotUnit, tc.wantQty, tc.wantUnit)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	for _, u := range []string{"g", "ml", "unit"} {
		if !IsCanonical(u) {
			t.Errorf("IsCanonical(%q) = false, want true", u)
		}
	}
	for _, u := range []string{"kg", "box", ""} {
		if IsCanonical(u) {
			t.Errorf("IsCanonical(%q) = true, want false", u)
		}
	}
}
