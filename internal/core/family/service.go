package family

import (
	"context"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
)

// Service 家庭成員管理。成員資料是 AI prompt 的唯讀輸入，
// BMI 由身高體重推導，不落地儲存。
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Add(ctx context.Context, owner int64, m common.FamilyMember) error {
	if m.Name == "" {
		return common.NewValidationError("成員姓名不可為空")
	}
	if m.Age < 0 {
		return common.NewValidationError("年齡不可為負")
	}
	return s.store.AddFamilyMember(ctx, owner, m)
}

func (s *Service) List(ctx context.Context, owner int64) ([]common.FamilyMember, error) {
	return s.store.GetFamilyMembers(ctx, owner)
}

func (s *Service) Update(ctx context.Context, owner int64, m common.FamilyMember) error {
	if m.Name == "" {
		return common.NewValidationError("成員姓名不可為空")
	}
	return s.store.UpdateFamilyMember(ctx, owner, m)
}

func (s *Service) Delete(ctx context.Context, owner, memberID int64) error {
	return s.store.DeleteFamilyMember(ctx, owner, memberID)
}
