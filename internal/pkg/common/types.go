package common

import (
	"fmt"
	"strings"
	"time"
)

// 儲存區域，同時作為庫存合併鍵的一部分與顯示分類
const (
	AreaFrozen    = "Frozen"
	AreaFridge    = "Fridge"
	AreaDryGoods  = "Dry Goods"
	AreaSeasoning = "Seasoning"
	AreaGeneral   = "General"
)

// Areas 固定的五個儲存區域
var Areas = []string{AreaFrozen, AreaFridge, AreaDryGoods, AreaSeasoning, AreaGeneral}

// IsValidArea 檢查是否為已知儲存區域
func IsValidArea(area string) bool {
	for _, a := range Areas {
		if a == area {
			return true
		}
	}
	return false
}

// Lot 單一庫存批次：同名稱、同區域、同單位的一批食材。
// 日期以 YYYY-MM-DD 字串儲存，空字串代表未設定。
type Lot struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Unit       string `json:"unit"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	BuyDate    string `json:"buy_date,omitempty"`
	Area       string `json:"area"`
}

// FamilyMember 家庭成員健康檔案，作為 AI prompt 的唯讀輸入
type FamilyMember struct {
	ID        int64   `json:"id"`
	OwnerID   int64   `json:"owner_id"`
	Name      string  `json:"name"`
	Age       int     `json:"age"`
	Gender    string  `json:"gender"`
	Allergens string  `json:"allergens"`
	Genetic   string  `json:"genetic"`
	HeightCM  float64 `json:"height_cm"`
	WeightKG  float64 `json:"weight_kg"`
}

// BMI 由身高體重推導，不落地儲存
func (m FamilyMember) BMI() float64 {
	if m.HeightCM <= 0 {
		return 0
	}
	h := m.HeightCM / 100
	return m.WeightKG / (h * h)
}

// ShoppingItem 採買清單項目。Quantity 為寬鬆的自由文字（可能內嵌單位，
// 例如 "300g"），入庫時才正規化。
type ShoppingItem struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"owner_id"`
	ItemName  string `json:"item_name"`
	Quantity  string `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
	IsChecked bool   `json:"is_checked"`
}

// CalorieRecord 單筆熱量紀錄
type CalorieRecord struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	Date     string `json:"date"`
	MealType string `json:"meal_type"`
	FoodName string `json:"food_name"`
	Calories int    `json:"calories"`
	Note     string `json:"note,omitempty"`
}

// ChatMessage 聊天記錄
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// EarlierDate 回傳較早的 YYYY-MM-DD 日期；空字串視為「無限制」，
// 另一方非空則非空者勝出。ISO 日期可直接用字典序比較。
func EarlierDate(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if a < b {
		return a
	}
	return b
}

// FormatFamilyContext 將家庭成員格式化為 AI prompt 的上下文
func FormatFamilyContext(members []FamilyMember) string {
	if len(members) == 0 {
		return "（無家庭成員資料）"
	}
	var sb strings.Builder
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("- %s（%d歲，%s）", m.Name, m.Age, m.Gender))
		if m.Allergens != "" {
			sb.WriteString(fmt.Sprintf("，過敏原：%s", m.Allergens))
		}
		if m.Genetic != "" {
			sb.WriteString(fmt.Sprintf("，遺傳疾病：%s", m.Genetic))
		}
		if bmi := m.BMI(); bmi > 0 {
			sb.WriteString(fmt.Sprintf("，BMI %.1f", bmi))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatInventoryContext 將庫存格式化為 AI prompt 的上下文
func FormatInventoryContext(lots []Lot) string {
	if len(lots) == 0 {
		return "（庫存為空）"
	}
	var sb strings.Builder
	for _, lot := range lots {
		sb.WriteString(fmt.Sprintf("- %s %d%s [%s]", lot.Name, lot.Quantity, lot.Unit, lot.Area))
		if lot.ExpiryDate != "" {
			sb.WriteString(fmt.Sprintf("，效期 %s", lot.ExpiryDate))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatShoppingContext 將採買清單格式化為 AI prompt 的上下文
func FormatShoppingContext(items []ShoppingItem) string {
	if len(items) == 0 {
		return "（採買清單為空）"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("- %s %s%s", item.ItemName, item.Quantity, item.Unit))
		if item.IsChecked {
			sb.WriteString("（已購買）")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatEquipmentContext 將廚房設備格式化為 AI prompt 的上下文
func FormatEquipmentContext(equipment []string) string {
	if len(equipment) == 0 {
		return "（未登錄廚房設備）"
	}
	return strings.Join(equipment, "、")
}
