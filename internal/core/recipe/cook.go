package recipe

import (
	"context"
	"strings"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"go.uber.org/zap"
)

// ConsumptionResult 烹煮扣帳結果。部分成功是預期情況，
// 呼叫端應把 Unresolved 呈現給使用者而非視為失敗。
type ConsumptionResult struct {
	DeductedCount int      `json:"deducted_count"`
	Unresolved    []string `json:"unresolved"`
}

// ApplyConsumption 依食譜的 ingredients（不含 shopping_list）對庫存扣帳。
// 名稱用寬鬆子字串比對，但單位必須完全相等，避免把克扣成毫升。
// 每項食材只扣第一個符合的批次；扣到零以下時由持久層整列刪除。
// 非交易式：逐項套用，不回滾。
func ApplyConsumption(ctx context.Context, store storage.Store, owner int64, p *Proposal) (*ConsumptionResult, error) {
	lots, err := store.GetAllLots(ctx, owner)
	if err != nil {
		return nil, err
	}

	result := &ConsumptionResult{}
	for _, ing := range p.Ingredients {
		name := strings.ToLower(strings.TrimSpace(ing.Name))
		unit := strings.ToLower(strings.TrimSpace(ing.Unit))
		if name == "" {
			continue
		}

		matched := false
		for _, lot := range lots {
			lotUnit := strings.ToLower(strings.TrimSpace(lot.Unit))
			if !NamesMatch(name, lot.Name) || lotUnit != unit {
				continue
			}
			qty := int(ing.Quantity)
			if qty <= 0 {
				qty = 1
			}
			if err := store.UpdateQuantity(ctx, owner, lot.ID, -qty); err != nil {
				common.LogError("扣帳失敗",
					zap.String("食材", ing.Name),
					zap.Int64("批次", lot.ID),
					zap.Error(err),
				)
				break
			}
			result.DeductedCount++
			matched = true
			break
		}
		if !matched {
			result.Unresolved = append(result.Unresolved, ing.Name)
		}
	}

	common.LogInfo("烹煮扣帳完成",
		zap.Int("扣帳筆數", result.DeductedCount),
		zap.Int("未解析筆數", len(result.Unresolved)),
	)
	return result, nil
}
