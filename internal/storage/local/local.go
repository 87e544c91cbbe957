package local

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
)

// Store 本機單租戶後端：所有資料保存在單一 JSON 快照檔。
// owner 參數一律忽略，等同固定的 storage.LocalOwnerID。
type Store struct {
	path string

	mu       sync.Mutex
	snapshot snapshot
}

type snapshot struct {
	NextID       int64                  `json:"next_id"`
	Lots         []common.Lot           `json:"lots"`
	Family       []common.FamilyMember  `json:"family"`
	Settings     map[string]string      `json:"settings"`
	Chat         []common.ChatMessage   `json:"chat"`
	DailyRecipes map[string]string      `json:"daily_recipes"`
	Equipment    []string               `json:"equipment"`
	Calories     []common.CalorieRecord `json:"calories"`
	Shopping     []common.ShoppingItem  `json:"shopping"`
}

// New 創建本機後端，path 為快照檔路徑（例如 "inventory.json"）
func New(path string) *Store {
	return &Store{path: path}
}

// Init 載入既有快照；檔案不存在時以空資料啟動
func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snapshot{
		NextID:       1,
		Settings:     map[string]string{},
		DailyRecipes: map[string]string{},
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read local store: %w", err)
	}
	// 嚴格解析：快照是自己寫出的格式，出現未知欄位代表檔案不對
	if err := common.DecodeJSONStrict(bytes.NewReader(data), &s.snapshot); err != nil {
		return fmt.Errorf("failed to parse local store: %w", err)
	}
	if s.snapshot.Settings == nil {
		s.snapshot.Settings = map[string]string{}
	}
	if s.snapshot.DailyRecipes == nil {
		s.snapshot.DailyRecipes = map[string]string{}
	}
	if s.snapshot.NextID < 1 {
		s.snapshot.NextID = 1
	}
	return nil
}

func (s *Store) Close() {}

// persist 將快照寫回檔案（呼叫端需持有鎖）
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.snapshot, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) nextID() int64 {
	id := s.snapshot.NextID
	s.snapshot.NextID++
	return id
}

// --- 使用者（本機為單租戶，不支援註冊/登入）---

func (s *Store) RegisterUser(ctx context.Context, username, password string) (int64, error) {
	return 0, fmt.Errorf("local store does not support user registration")
}

func (s *Store) LoginUser(ctx context.Context, username, password string) (int64, error) {
	return 0, fmt.Errorf("local store does not support user login")
}

// --- 庫存 ---

func (s *Store) AddLot(ctx context.Context, owner int64, name string, quantity int, unit, expiryDate, buyDate, area string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 合併鍵：name + area + unit（名稱在合併階段不做模糊比對）
	for i := range s.snapshot.Lots {
		lot := &s.snapshot.Lots[i]
		if lot.Name == name && lot.Area == area && lot.Unit == unit {
			lot.Quantity += quantity
			lot.ExpiryDate = common.EarlierDate(lot.ExpiryDate, expiryDate)
			lot.BuyDate = common.EarlierDate(lot.BuyDate, buyDate)
			return s.persist()
		}
	}

	s.snapshot.Lots = append(s.snapshot.Lots, common.Lot{
		ID:         s.nextID(),
		OwnerID:    storage.LocalOwnerID,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
		ExpiryDate: expiryDate,
		BuyDate:    buyDate,
		Area:       area,
	})
	return s.persist()
}

func (s *Store) UpdateQuantity(ctx context.Context, owner, lotID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Lots {
		if s.snapshot.Lots[i].ID != lotID {
			continue
		}
		newQty := s.snapshot.Lots[i].Quantity + delta
		if newQty <= 0 {
			// 數量歸零即整列刪除，不保留 <= 0 的庫存
			s.snapshot.Lots = append(s.snapshot.Lots[:i], s.snapshot.Lots[i+1:]...)
		} else {
			s.snapshot.Lots[i].Quantity = newQty
		}
		return s.persist()
	}
	return nil
}

func (s *Store) GetLotsByArea(ctx context.Context, owner int64, area string) ([]common.Lot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var lots []common.Lot
	for _, lot := range s.snapshot.Lots {
		if lot.Area == area {
			lots = append(lots, lot)
		}
	}
	// 效期近的排前面，空效期排最後
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i].ExpiryDate, lots[j].ExpiryDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
	return lots, nil
}

func (s *Store) GetAllLots(ctx context.Context, owner int64) ([]common.Lot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lots := make([]common.Lot, len(s.snapshot.Lots))
	copy(lots, s.snapshot.Lots)
	return lots, nil
}

func (s *Store) DeleteLot(ctx context.Context, owner, lotID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Lots {
		if s.snapshot.Lots[i].ID == lotID {
			s.snapshot.Lots = append(s.snapshot.Lots[:i], s.snapshot.Lots[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *Store) UpdateLot(ctx context.Context, owner, lotID int64, fields storage.LotUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Lots {
		if s.snapshot.Lots[i].ID != lotID {
			continue
		}
		lot := &s.snapshot.Lots[i]
		if fields.Name != nil {
			lot.Name = *fields.Name
		}
		if fields.Quantity != nil {
			lot.Quantity = *fields.Quantity
		}
		if fields.Unit != nil {
			lot.Unit = *fields.Unit
		}
		if fields.ExpiryDate != nil {
			lot.ExpiryDate = *fields.ExpiryDate
		}
		if fields.BuyDate != nil {
			lot.BuyDate = *fields.BuyDate
		}
		if fields.Area != nil {
			lot.Area = *fields.Area
		}
		return s.persist()
	}
	return nil
}

// --- 家庭成員 ---

func (s *Store) AddFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = s.nextID()
	m.OwnerID = storage.LocalOwnerID
	s.snapshot.Family = append(s.snapshot.Family, m)
	return s.persist()
}

func (s *Store) GetFamilyMembers(ctx context.Context, owner int64) ([]common.FamilyMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]common.FamilyMember, len(s.snapshot.Family))
	copy(members, s.snapshot.Family)
	return members, nil
}

func (s *Store) UpdateFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Family {
		if s.snapshot.Family[i].ID == m.ID {
			m.OwnerID = storage.LocalOwnerID
			s.snapshot.Family[i] = m
			return s.persist()
		}
	}
	return nil
}

func (s *Store) DeleteFamilyMember(ctx context.Context, owner, memberID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Family {
		if s.snapshot.Family[i].ID == memberID {
			s.snapshot.Family = append(s.snapshot.Family[:i], s.snapshot.Family[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// --- 設定 ---

func (s *Store) GetSetting(ctx context.Context, owner int64, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Settings[key], nil
}

func (s *Store) SetSetting(ctx context.Context, owner int64, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Settings[key] = value
	return s.persist()
}

// --- 聊天記錄 ---

func (s *Store) AddChatMessage(ctx context.Context, owner int64, sender, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Chat = append(s.snapshot.Chat, common.ChatMessage{
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now(),
	})
	return s.persist()
}

func (s *Store) GetChatHistory(ctx context.Context, owner int64, date string) ([]common.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var history []common.ChatMessage
	for _, msg := range s.snapshot.Chat {
		if date == "" || msg.Timestamp.Format("2006-01-02") == date {
			history = append(history, msg)
		}
	}
	return history, nil
}

func (s *Store) GetChatDates(ctx context.Context, owner int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	var dates []string
	for _, msg := range s.snapshot.Chat {
		d := msg.Timestamp.Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	// 新的日期排前面
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

func (s *Store) ClearChatHistory(ctx context.Context, owner int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Chat = nil
	return s.persist()
}

// --- 每日食譜 ---

func (s *Store) SaveDailyRecipe(ctx context.Context, owner int64, date, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.DailyRecipes[date] = content
	return s.persist()
}

func (s *Store) GetDailyRecipe(ctx context.Context, owner int64, date string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.DailyRecipes[date], nil
}

// --- 廚房設備 ---

func (s *Store) GetKitchenEquipment(ctx context.Context, owner int64) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	equipment := make([]string, len(s.snapshot.Equipment))
	copy(equipment, s.snapshot.Equipment)
	return equipment, nil
}

func (s *Store) UpdateKitchenEquipment(ctx context.Context, owner int64, equipment []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Equipment = append([]string(nil), equipment...)
	return s.persist()
}

// --- 熱量紀錄 ---

func (s *Store) AddCalorieRecord(ctx context.Context, owner int64, r common.CalorieRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID()
	r.OwnerID = storage.LocalOwnerID
	s.snapshot.Calories = append(s.snapshot.Calories, r)
	if err := s.persist(); err != nil {
		return 0, err
	}
	return r.ID, nil
}

func (s *Store) GetCalorieRecords(ctx context.Context, owner int64, date string) ([]common.CalorieRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []common.CalorieRecord
	for _, r := range s.snapshot.Calories {
		if r.Date == date {
			records = append(records, r)
		}
	}
	return records, nil
}

func (s *Store) DeleteCalorieRecord(ctx context.Context, owner, recordID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Calories {
		if s.snapshot.Calories[i].ID == recordID {
			s.snapshot.Calories = append(s.snapshot.Calories[:i], s.snapshot.Calories[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *Store) GetDailyCalorieTotal(ctx context.Context, owner int64, date string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, r := range s.snapshot.Calories {
		if r.Date == date {
			total += r.Calories
		}
	}
	return total, nil
}

func (s *Store) GetDailyCalorieBreakdown(ctx context.Context, owner int64, date string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	breakdown := map[string]int{}
	for _, r := range s.snapshot.Calories {
		if r.Date == date {
			breakdown[r.MealType] += r.Calories
		}
	}
	return breakdown, nil
}

func (s *Store) GetWeeklyCalorieSummary(ctx context.Context, owner int64, endDate string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	start := end.AddDate(0, 0, -6).Format("2006-01-02")

	summary := map[string]int{}
	for _, r := range s.snapshot.Calories {
		if r.Date >= start && r.Date <= endDate {
			summary[r.Date] += r.Calories
		}
	}
	return summary, nil
}

// --- 採買清單 ---

func (s *Store) AddShoppingItem(ctx context.Context, owner int64, itemName, quantity, unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Shopping = append(s.snapshot.Shopping, common.ShoppingItem{
		ID:       s.nextID(),
		OwnerID:  storage.LocalOwnerID,
		ItemName: itemName,
		Quantity: quantity,
		Unit:     unit,
	})
	return s.persist()
}

func (s *Store) GetShoppingList(ctx context.Context, owner int64) ([]common.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 新加入的排前面
	items := make([]common.ShoppingItem, len(s.snapshot.Shopping))
	copy(items, s.snapshot.Shopping)
	sort.SliceStable(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (s *Store) UpdateShoppingItemStatus(ctx context.Context, owner, itemID int64, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Shopping {
		if s.snapshot.Shopping[i].ID == itemID {
			s.snapshot.Shopping[i].IsChecked = checked
			return s.persist()
		}
	}
	return nil
}

func (s *Store) UpdateShoppingItem(ctx context.Context, owner, itemID int64, fields storage.ShoppingItemUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Shopping {
		if s.snapshot.Shopping[i].ID != itemID {
			continue
		}
		item := &s.snapshot.Shopping[i]
		if fields.Name != nil {
			item.ItemName = *fields.Name
		}
		if fields.Quantity != nil {
			item.Quantity = *fields.Quantity
		}
		if fields.Unit != nil {
			item.Unit = *fields.Unit
		}
		return s.persist()
	}
	return nil
}

func (s *Store) DeleteShoppingItem(ctx context.Context, owner, itemID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.snapshot.Shopping {
		if s.snapshot.Shopping[i].ID == itemID {
			s.snapshot.Shopping = append(s.snapshot.Shopping[:i], s.snapshot.Shopping[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

func (s *Store) DeleteCheckedShoppingItems(ctx context.Context, owner int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var remaining []common.ShoppingItem
	for _, item := range s.snapshot.Shopping {
		if !item.IsChecked {
			remaining = append(remaining, item)
		}
	}
	s.snapshot.Shopping = remaining
	return s.persist()
}

func (s *Store) ClearShoppingList(ctx context.Context, owner int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Shopping = nil
	return s.persist()
}

var _ storage.Store = (*Store)(nil)
