package shopping

import (
	"context"
	"time"

	"home-assistant/internal/core/units"
	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"go.uber.org/zap"
)

// 購入品項的預設效期天數
const defaultExpiryDays = 7

// Classifier 品項分區分類器（由 AI 助理實作）
type Classifier interface {
	EstimateCategory(ctx context.Context, itemName string) (string, error)
}

// Service 採買清單邏輯，含勾選品項入庫
type Service struct {
	store      storage.Store
	classifier Classifier
}

func NewService(store storage.Store, classifier Classifier) *Service {
	return &Service{store: store, classifier: classifier}
}

func (s *Service) Add(ctx context.Context, owner int64, itemName, quantity, unit string) error {
	if itemName == "" {
		return common.NewValidationError("品項名稱不可為空")
	}
	return s.store.AddShoppingItem(ctx, owner, itemName, quantity, unit)
}

func (s *Service) List(ctx context.Context, owner int64) ([]common.ShoppingItem, error) {
	return s.store.GetShoppingList(ctx, owner)
}

func (s *Service) SetChecked(ctx context.Context, owner, itemID int64, checked bool) error {
	return s.store.UpdateShoppingItemStatus(ctx, owner, itemID, checked)
}

func (s *Service) Update(ctx context.Context, owner, itemID int64, fields storage.ShoppingItemUpdate) error {
	return s.store.UpdateShoppingItem(ctx, owner, itemID, fields)
}

func (s *Service) Delete(ctx context.Context, owner, itemID int64) error {
	return s.store.DeleteShoppingItem(ctx, owner, itemID)
}

func (s *Service) Clear(ctx context.Context, owner int64) error {
	return s.store.ClearShoppingList(ctx, owner)
}

func (s *Service) DeleteChecked(ctx context.Context, owner int64) error {
	return s.store.DeleteCheckedShoppingItems(ctx, owner)
}

// PromoteCheckedItems 把已勾選的採買項目轉入庫存：解析自由文字的
// 數量欄位、正規化單位、用 AI 分類存放區域，再以今日為購買日、
// 七天後為預設效期入庫，最後從清單移除。單一品項失敗只跳過該項，
// 不中斷整批。回傳成功入庫的筆數。
func (s *Service) PromoteCheckedItems(ctx context.Context, owner int64) (int, error) {
	items, err := s.store.GetShoppingList(ctx, owner)
	if err != nil {
		return 0, err
	}

	today := time.Now().Format("2006-01-02")
	expiry := time.Now().AddDate(0, 0, defaultExpiryDays).Format("2006-01-02")

	promoted := 0
	for _, item := range items {
		if !item.IsChecked {
			continue
		}

		qty, unit := units.NormalizeString(item.Quantity, item.Unit)
		// 庫存列存在期間數量必須為正，0 的品項留在清單上
		if qty <= 0 {
			common.LogWarn("數量為零，品項保留在清單",
				zap.String("品項", item.ItemName),
				zap.String("數量", item.Quantity),
			)
			continue
		}

		area, err := s.classifier.EstimateCategory(ctx, item.ItemName)
		if err != nil {
			common.LogWarn("分類失敗，品項保留在清單",
				zap.String("品項", item.ItemName),
				zap.Error(err),
			)
			continue
		}
		if !common.IsValidArea(area) {
			area = common.AreaGeneral
		}

		if err := s.store.AddLot(ctx, owner, item.ItemName, qty, string(unit), expiry, today, area); err != nil {
			common.LogWarn("入庫失敗，品項保留在清單",
				zap.String("品項", item.ItemName),
				zap.Error(err),
			)
			continue
		}

		if err := s.store.DeleteShoppingItem(ctx, owner, item.ID); err != nil {
			common.LogWarn("清單移除失敗",
				zap.String("品項", item.ItemName),
				zap.Error(err),
			)
		}
		promoted++
	}

	common.LogInfo("採買清單入庫完成", zap.Int("入庫筆數", promoted))
	return promoted, nil
}
