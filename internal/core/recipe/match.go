package recipe

import "strings"

// NamesMatch 判斷兩個食材名稱是否指同一樣東西。AI 的用詞和庫存的
// 命名常有包含關係（例如「雞蛋」與「蛋」、"Milk" 與 "milk"），
// 因此採雙向、不分大小寫的子字串比對。
func NamesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
