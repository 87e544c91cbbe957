package recipe

import (
	"home-assistant/internal/pkg/common"
)

// Annotated 對照庫存後的食材狀態
type Annotated struct {
	Name         string  `json:"name"`
	RequiredQty  float64 `json:"required_qty"`
	RequiredUnit string  `json:"required_unit"`
	StockQty     int     `json:"stock_qty"`
	StockUnit    string  `json:"stock_unit,omitempty"`
	InStock      bool    `json:"in_stock"`
}

// Reconcile 將食譜的 ingredients 與 shopping_list 聯集後逐項對照庫存，
// 分成「已有」與「待買」兩組。比對採 NamesMatch 的寬鬆子字串規則，
// 庫存量為所有符合批次的數量加總；此階段不做單位換算，
// StockUnit 只取最後一個符合批次的單位供顯示用。
// 回傳順序：need 在前。
func Reconcile(p *Proposal, inventory []common.Lot) (need, have []Annotated) {
	// 聯集並依名稱去重，首次出現者優先
	seen := make(map[string]bool)
	var unique []Item
	for _, item := range append(append([]Item{}, p.Ingredients...), p.ShoppingList...) {
		if item.Name == "" || seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		unique = append(unique, item)
	}

	for _, item := range unique {
		required := item.Quantity
		if required <= 0 {
			required = 1
		}

		var (
			stock     int
			stockUnit string
		)
		for _, lot := range inventory {
			if NamesMatch(item.Name, lot.Name) {
				stock += lot.Quantity
				stockUnit = lot.Unit
			}
		}

		annotated := Annotated{
			Name:         item.Name,
			RequiredQty:  item.Quantity,
			RequiredUnit: item.Unit,
			StockQty:     stock,
			StockUnit:    stockUnit,
			InStock:      float64(stock) >= required,
		}
		if annotated.InStock {
			have = append(have, annotated)
		} else {
			need = append(need, annotated)
		}
	}
	return need, have
}
