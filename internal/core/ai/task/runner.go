// Package task 提供 AI 呼叫的非同步編排：每次呼叫啟動一個新的
// goroutine 執行阻塞操作，完成後把結果交回呼叫端提供的回呼，
// 成功或失敗都恰好一次。操作內的 panic 與 error 一律以 nil 結果
// 回報，不會打到呼叫端。
package task

import (
	"context"

	"home-assistant/internal/pkg/common"

	"go.uber.org/zap"
)

// Operation 阻塞的外部操作
type Operation[T any] func(ctx context.Context) (T, error)

// Callback 結果回呼。操作失敗時收到零值與 ok=false。
type Callback[T any] func(result T, ok bool)

// Run 在背景執行 op，完成後以回呼交付結果。沒有佇列、沒有共用
// worker pool：每次呼叫各起一個 goroutine。已啟動的操作無法取消，
// 回呼必定送達一次，呼叫端要自行防範過時回呼。
func Run[T any](ctx context.Context, name string, op Operation[T], cb Callback[T]) {
	go func() {
		var (
			result T
			ok     bool
		)
		defer func() {
			if r := recover(); r != nil {
				common.LogError("背景操作 panic",
					zap.String("操作", name),
					zap.Any("panic", r),
				)
				var zero T
				cb(zero, false)
				return
			}
			cb(result, ok)
		}()

		value, err := op(ctx)
		if err != nil {
			common.LogError("背景操作失敗",
				zap.String("操作", name),
				zap.Error(err),
			)
			return
		}
		result = value
		ok = true
	}()
}

// RunChained 把兩個相依的操作組成單一背景操作（例如影像辨識後
// 接熱量估算）。兩個獨立的 Run 之間沒有順序保證，需要順序的
// 呼叫端應該用這個而不是連發兩次 Run。
func RunChained[A, B any](ctx context.Context, name string, first Operation[A], then func(ctx context.Context, a A) (B, error), cb Callback[B]) {
	Run(ctx, name, func(ctx context.Context) (B, error) {
		a, err := first(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return then(ctx, a)
	}, cb)
}
