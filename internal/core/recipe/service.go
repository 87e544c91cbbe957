package recipe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"go.uber.org/zap"
)

// Generator 每日食譜產生器（由 AI 助理實作）
type Generator interface {
	GenerateDailyRecipe(ctx context.Context, family []common.FamilyMember, equipment []string, inventory []common.Lot) (*Proposal, error)
	GenerateRecipeImage(ctx context.Context, keywords string) (string, error)
}

// Service 每日食譜：產生、以不透明 JSON blob 依 (owner, date) 落地、
// 對照庫存標注、烹煮扣帳。
type Service struct {
	store     storage.Store
	generator Generator
}

func NewService(store storage.Store, generator Generator) *Service {
	return &Service{store: store, generator: generator}
}

// Daily 取得當日食譜；尚未產生時呼叫 AI 產生並落地。
// 配圖下載是盡力而為，失敗不影響食譜本身。
func (s *Service) Daily(ctx context.Context, owner int64, date string) (*Proposal, error) {
	if blob, err := s.store.GetDailyRecipe(ctx, owner, date); err == nil && blob != "" {
		var p Proposal
		if err := common.ParseJSON(blob, &p); err == nil {
			return &p, nil
		}
		common.LogWarn("已儲存的每日食譜無法解析，重新產生",
			zap.Int64("owner", owner),
			zap.String("date", date),
		)
	}

	family, err := s.store.GetFamilyMembers(ctx, owner)
	if err != nil {
		return nil, err
	}
	equipment, err := s.store.GetKitchenEquipment(ctx, owner)
	if err != nil {
		return nil, err
	}
	inventory, err := s.store.GetAllLots(ctx, owner)
	if err != nil {
		return nil, err
	}

	proposal, err := s.generator.GenerateDailyRecipe(ctx, family, equipment, inventory)
	if err != nil {
		return nil, fmt.Errorf("failed to generate daily recipe: %w", err)
	}

	if proposal.ImageKeywords != "" {
		if path, err := s.generator.GenerateRecipeImage(ctx, proposal.ImageKeywords); err == nil {
			proposal.ImageURL = path
		} else {
			common.LogWarn("食譜配圖下載失敗",
				zap.String("keywords", proposal.ImageKeywords),
				zap.Error(err),
			)
		}
	}

	if blob, err := common.ToJSON(proposal); err == nil {
		if err := s.store.SaveDailyRecipe(ctx, owner, date, blob); err != nil {
			common.LogError("每日食譜儲存失敗",
				zap.Int64("owner", owner),
				zap.String("date", date),
				zap.Error(err),
			)
		}
	}
	return proposal, nil
}

// ReconcileDaily 把當日食譜對照庫存，分成待買與已有兩組
func (s *Service) ReconcileDaily(ctx context.Context, owner int64, date string) (need, have []Annotated, err error) {
	proposal, err := s.Daily(ctx, owner, date)
	if err != nil {
		return nil, nil, err
	}
	inventory, err := s.store.GetAllLots(ctx, owner)
	if err != nil {
		return nil, nil, err
	}
	need, have = Reconcile(proposal, inventory)
	return need, have, nil
}

// ExportNeeds 把當日食譜對照庫存後的待買食材加入採買清單，
// 已在清單上的品項（名稱不分大小寫）略過，回傳實際加入的筆數。
func (s *Service) ExportNeeds(ctx context.Context, owner int64, date string) (int, error) {
	need, _, err := s.ReconcileDaily(ctx, owner, date)
	if err != nil {
		return 0, err
	}

	existing, err := s.store.GetShoppingList(ctx, owner)
	if err != nil {
		return 0, err
	}
	listed := make(map[string]bool, len(existing))
	for _, item := range existing {
		listed[strings.ToLower(strings.TrimSpace(item.ItemName))] = true
	}

	added := 0
	for _, item := range need {
		key := strings.ToLower(strings.TrimSpace(item.Name))
		if key == "" || listed[key] {
			continue
		}
		qty := strconv.FormatFloat(item.RequiredQty, 'f', -1, 64)
		if err := s.store.AddShoppingItem(ctx, owner, item.Name, qty, item.RequiredUnit); err != nil {
			common.LogWarn("待買食材加入採買清單失敗",
				zap.String("item", item.Name),
				zap.Error(err),
			)
			continue
		}
		listed[key] = true
		added++
	}
	return added, nil
}

// Cook 以當日食譜對庫存扣帳
func (s *Service) Cook(ctx context.Context, owner int64, date string) (*ConsumptionResult, error) {
	proposal, err := s.Daily(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	return ApplyConsumption(ctx, s.store, owner, proposal)
}
