package inventory

import (
	"context"
	"time"

	"home-assistant/internal/core/units"
	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"go.uber.org/zap"
)

// Service 庫存邏輯：入庫前先做單位正規化，合併與刪除語意由持久層保證
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

// AddItem 正規化數量與單位後入庫。同 (名稱, 區域, 單位) 的批次由
// 持久層合併：數量相加、效期與購買日取較早者。
func (s *Service) AddItem(ctx context.Context, owner int64, name string, quantity float64, unit, expiryDate, buyDate, area string) error {
	if !common.IsValidArea(area) {
		area = common.AreaGeneral
	}
	qty, canonical := units.Normalize(quantity, unit)
	if qty <= 0 {
		return common.NewValidationError("數量必須大於零")
	}
	err := s.store.AddLot(ctx, owner, name, qty, string(canonical), expiryDate, buyDate, area)
	if err != nil {
		common.LogError("入庫失敗", zap.String("名稱", name), zap.Error(err))
		return err
	}
	common.LogInfo("入庫",
		zap.String("名稱", name),
		zap.Int("數量", qty),
		zap.String("單位", string(canonical)),
		zap.String("區域", area),
	)
	return nil
}

// AdjustQuantity 套用數量差值；結果歸零或為負時該批次整列刪除
func (s *Service) AdjustQuantity(ctx context.Context, owner, lotID int64, delta int) error {
	return s.store.UpdateQuantity(ctx, owner, lotID, delta)
}

func (s *Service) ListByArea(ctx context.Context, owner int64, area string) ([]common.Lot, error) {
	return s.store.GetLotsByArea(ctx, owner, area)
}

func (s *Service) ListAll(ctx context.Context, owner int64) ([]common.Lot, error) {
	return s.store.GetAllLots(ctx, owner)
}

func (s *Service) Delete(ctx context.Context, owner, lotID int64) error {
	return s.store.DeleteLot(ctx, owner, lotID)
}

func (s *Service) Update(ctx context.Context, owner, lotID int64, fields storage.LotUpdate) error {
	return s.store.UpdateLot(ctx, owner, lotID, fields)
}

// ExpiringSoon 回傳 days 天內到期（含已過期）的批次；無效期的批次不列入
func (s *Service) ExpiringSoon(ctx context.Context, owner int64, days int) ([]common.Lot, error) {
	lots, err := s.store.GetAllLots(ctx, owner)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, days).Format("2006-01-02")
	var expiring []common.Lot
	for _, lot := range lots {
		if lot.ExpiryDate != "" && lot.ExpiryDate <= cutoff {
			expiring = append(expiring, lot)
		}
	}
	return expiring, nil
}
