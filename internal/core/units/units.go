package units

import (
	"regexp"
	"strconv"
	"strings"
)

// Unit 庫存的三種基準單位
type Unit string

const (
	Gram       Unit = "g"    // 質量（公克）
	Milliliter Unit = "ml"   // 體積（毫升）
	Piece      Unit = "unit" // 離散計數
)

// unitAlias 單位別名解析表：別名 → (倍率, 基準單位)
type unitAlias struct {
	scale float64
	base  Unit
}

var aliasTable = map[string]unitAlias{
	"kg":       {1000, Gram},
	"kilogram": {1000, Gram},
	"g":        {1, Gram},
	"gram":     {1, Gram},
	"l":        {1000, Milliliter},
	"liter":    {1000, Milliliter},
	"ml":       {1, Milliliter},
}

// quantityPattern 擷取開頭的數字與可選的單位後綴，例如 "300g"、"1.5 kg"
var quantityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-zA-Z%]+)?`)

// Normalize 將 (數量, 單位字串) 正規化成 (整數數量, 基準單位)。
// kg/l 換算成 g/ml（1000:1），小數無條件捨去；無法解析時數量預設 1。
// 純函數：手動輸入、AI 辨識與採買清單入庫共用同一條路徑。
func Normalize(rawQty float64, rawUnit string) (int, Unit) {
	qty := rawQty
	if qty < 0 {
		qty = 0
	}

	scale := 1.0
	base := Piece
	if alias, ok := aliasTable[strings.ToLower(strings.TrimSpace(rawUnit))]; ok {
		scale = alias.scale
		base = alias.base
	}

	final := int(qty * scale)
	if final < 0 {
		final = 0
	}
	return final, base
}

// NormalizeString 解析帶有內嵌單位的自由文字數量欄位（例如 "300g"、"1.5kg"），
// fallbackUnit 為文字中找不到單位時採用的結構化單位欄位。
// 完全無法解析時回傳 (1, Piece)。
func NormalizeString(rawQty string, fallbackUnit string) (int, Unit) {
	match := quantityPattern.FindStringSubmatch(rawQty)
	if match == nil {
		if fallbackUnit != "" {
			_, base := Normalize(1, fallbackUnit)
			return 1, base
		}
		return 1, Piece
	}

	qty, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 1, Piece
	}

	unit := match[2]
	if unit == "" {
		unit = fallbackUnit
	}
	return Normalize(qty, unit)
}

// IsCanonical 回報單位是否已是基準單位
func IsCanonical(u string) bool {
	switch Unit(u) {
	case Gram, Milliliter, Piece:
		return true
	}
	return false
}
