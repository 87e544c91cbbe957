package chat

import (
	"context"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"go.uber.org/zap"
)

// Responder 聊天回覆器（由 AI 助理實作）
type Responder interface {
	Chat(ctx context.Context, message string, family []common.FamilyMember, inventory []common.Lot, equipment []string) (string, error)
}

// Service 聊天：帶入家庭、庫存與設備上下文呼叫 AI，並保存對話記錄
type Service struct {
	store     storage.Store
	responder Responder
}

func NewService(store storage.Store, responder Responder) *Service {
	return &Service{store: store, responder: responder}
}

// Send 送出使用者訊息並取得回覆。使用者訊息先落地；AI 失敗時
// 回覆不落地，錯誤交給呼叫端呈現「請再試一次」。
func (s *Service) Send(ctx context.Context, owner int64, message string) (string, error) {
	if message == "" {
		return "", common.NewValidationError("訊息不可為空")
	}

	family, err := s.store.GetFamilyMembers(ctx, owner)
	if err != nil {
		return "", err
	}
	inventory, err := s.store.GetAllLots(ctx, owner)
	if err != nil {
		return "", err
	}
	equipment, err := s.store.GetKitchenEquipment(ctx, owner)
	if err != nil {
		return "", err
	}

	if err := s.store.AddChatMessage(ctx, owner, "user", message); err != nil {
		return "", err
	}

	reply, err := s.responder.Chat(ctx, message, family, inventory, equipment)
	if err != nil {
		common.LogError("聊天回覆失敗", zap.Error(err))
		return "", err
	}

	if err := s.store.AddChatMessage(ctx, owner, "assistant", reply); err != nil {
		common.LogWarn("回覆落地失敗", zap.Error(err))
	}
	return reply, nil
}

// History date 為空字串時回傳全部
func (s *Service) History(ctx context.Context, owner int64, date string) ([]common.ChatMessage, error) {
	return s.store.GetChatHistory(ctx, owner, date)
}

func (s *Service) Dates(ctx context.Context, owner int64) ([]string, error) {
	return s.store.GetChatDates(ctx, owner)
}

func (s *Service) Clear(ctx context.Context, owner int64) error {
	return s.store.ClearChatHistory(ctx, owner)
}
