package calorie

import (
	"context"
	"time"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
)

// DailySummary 單日熱量彙總
type DailySummary struct {
	Date      string         `json:"date"`
	Total     int            `json:"total"`
	Breakdown map[string]int `json:"breakdown"`
}

// Service 熱量紀錄管理
type Service struct {
	store storage.Store
}

func NewService(store storage.Store) *Service {
	return &Service{store: store}
}

func (s *Service) AddRecord(ctx context.Context, owner int64, r common.CalorieRecord) (int64, error) {
	if r.FoodName == "" {
		return 0, common.NewValidationError("食物名稱不可為空")
	}
	if r.Calories < 0 {
		return 0, common.NewValidationError("熱量不可為負")
	}
	if r.Date == "" {
		r.Date = time.Now().Format("2006-01-02")
	}
	return s.store.AddCalorieRecord(ctx, owner, r)
}

func (s *Service) Records(ctx context.Context, owner int64, date string) ([]common.CalorieRecord, error) {
	return s.store.GetCalorieRecords(ctx, owner, date)
}

func (s *Service) DeleteRecord(ctx context.Context, owner, recordID int64) error {
	return s.store.DeleteCalorieRecord(ctx, owner, recordID)
}

// Daily 回傳單日合計與各餐別的分項
func (s *Service) Daily(ctx context.Context, owner int64, date string) (*DailySummary, error) {
	total, err := s.store.GetDailyCalorieTotal(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.store.GetDailyCalorieBreakdown(ctx, owner, date)
	if err != nil {
		return nil, err
	}
	return &DailySummary{Date: date, Total: total, Breakdown: breakdown}, nil
}

// Weekly 回傳以 endDate 結尾往前七天、每天一筆的合計；
// 沒有紀錄的日期補 0，順序固定由舊到新。
func (s *Service) Weekly(ctx context.Context, owner int64, endDate string) ([]DailySummary, error) {
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, common.NewValidationError("日期格式錯誤")
	}

	totals, err := s.store.GetWeeklyCalorieSummary(ctx, owner, endDate)
	if err != nil {
		return nil, err
	}

	week := make([]DailySummary, 0, 7)
	for i := 6; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format("2006-01-02")
		week = append(week, DailySummary{Date: date, Total: totals[date]})
	}
	return week, nil
}
