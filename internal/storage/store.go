package storage

import (
	"context"

	"home-assistant/internal/pkg/common"
)

// LocalOwnerID 本機單一租戶的固定擁有者編號
const LocalOwnerID int64 = 0

// LotUpdate 庫存批次的部分更新；nil 欄位不變更
type LotUpdate struct {
	Name       *string
	Quantity   *int
	Unit       *string
	ExpiryDate *string
	BuyDate    *string
	Area       *string
}

// ShoppingItemUpdate 採買清單項目的部分更新；nil 欄位不變更
type ShoppingItemUpdate struct {
	Name     *string
	Quantity *string
	Unit     *string
}

// Store 持久層契約。兩個實作（本機單租戶檔案、遠端 PostgreSQL 多租戶）
// 在 session 建立時由 factory 選定，核心邏輯只依賴此介面。
// 每個操作的第一個參數都是擁有者編號，由實作負責套用租戶範圍。
type Store interface {
	// Init 建立 schema（遠端）或載入快照（本機）
	Init(ctx context.Context) error
	Close()

	// --- 使用者 ---
	RegisterUser(ctx context.Context, username, password string) (int64, error)
	LoginUser(ctx context.Context, username, password string) (int64, error)

	// --- 庫存 ---
	// AddLot 依 (owner, name, area, unit) 合併入庫：已存在則數量相加、
	// 效期與購買日取較早者（空值視為無限制）；不存在則新增。
	AddLot(ctx context.Context, owner int64, name string, quantity int, unit, expiryDate, buyDate, area string) error
	// UpdateQuantity 套用數量差值；結果 <= 0 時整列刪除
	UpdateQuantity(ctx context.Context, owner, lotID int64, delta int) error
	GetLotsByArea(ctx context.Context, owner int64, area string) ([]common.Lot, error)
	GetAllLots(ctx context.Context, owner int64) ([]common.Lot, error)
	DeleteLot(ctx context.Context, owner, lotID int64) error
	UpdateLot(ctx context.Context, owner, lotID int64, fields LotUpdate) error

	// --- 家庭成員 ---
	AddFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error
	GetFamilyMembers(ctx context.Context, owner int64) ([]common.FamilyMember, error)
	UpdateFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error
	DeleteFamilyMember(ctx context.Context, owner, memberID int64) error

	// --- 設定 ---
	GetSetting(ctx context.Context, owner int64, key string) (string, error)
	SetSetting(ctx context.Context, owner int64, key, value string) error

	// --- 聊天記錄 ---
	AddChatMessage(ctx context.Context, owner int64, sender, message string) error
	// GetChatHistory date 為空字串時回傳全部
	GetChatHistory(ctx context.Context, owner int64, date string) ([]common.ChatMessage, error)
	GetChatDates(ctx context.Context, owner int64) ([]string, error)
	ClearChatHistory(ctx context.Context, owner int64) error

	// --- 每日食譜（不透明 JSON blob，依 owner+date 唯一）---
	SaveDailyRecipe(ctx context.Context, owner int64, date, content string) error
	GetDailyRecipe(ctx context.Context, owner int64, date string) (string, error)

	// --- 廚房設備 ---
	GetKitchenEquipment(ctx context.Context, owner int64) ([]string, error)
	UpdateKitchenEquipment(ctx context.Context, owner int64, equipment []string) error

	// --- 熱量紀錄 ---
	AddCalorieRecord(ctx context.Context, owner int64, r common.CalorieRecord) (int64, error)
	GetCalorieRecords(ctx context.Context, owner int64, date string) ([]common.CalorieRecord, error)
	DeleteCalorieRecord(ctx context.Context, owner, recordID int64) error
	GetDailyCalorieTotal(ctx context.Context, owner int64, date string) (int, error)
	// GetDailyCalorieBreakdown 回傳 meal_type → 熱量合計
	GetDailyCalorieBreakdown(ctx context.Context, owner int64, date string) (map[string]int, error)
	// GetWeeklyCalorieSummary 回傳 date → 熱量合計（endDate 往前 7 天內有紀錄的日期）
	GetWeeklyCalorieSummary(ctx context.Context, owner int64, endDate string) (map[string]int, error)

	// --- 採買清單 ---
	AddShoppingItem(ctx context.Context, owner int64, itemName, quantity, unit string) error
	GetShoppingList(ctx context.Context, owner int64) ([]common.ShoppingItem, error)
	UpdateShoppingItemStatus(ctx context.Context, owner, itemID int64, checked bool) error
	UpdateShoppingItem(ctx context.Context, owner, itemID int64, fields ShoppingItemUpdate) error
	DeleteShoppingItem(ctx context.Context, owner, itemID int64) error
	DeleteCheckedShoppingItems(ctx context.Context, owner int64) error
	ClearShoppingList(ctx context.Context, owner int64) error
}
