package recipe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"home-assistant/internal/pkg/common"
)

// Item 食譜中的一項食材需求。AI 回應的 quantity 欄位不一定是數字
// （常見「適量」「少許」這類文字），解析時寬鬆處理，無法辨識的
// 數量視為 1，不會因單一欄位壞掉丟棄整道食譜。
type Item struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string          `json:"name"`
		Quantity json.RawMessage `json:"quantity"`
		Unit     string          `json:"unit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	i.Name = raw.Name
	i.Unit = raw.Unit
	i.Quantity = coerceQuantity(raw.Quantity)
	return nil
}

var leadingNumberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// coerceQuantity 數字直接採用；字串先整段解析，再退而取開頭的數字
// （例如 "300g"）；兩者都不是就回傳 1
func coerceQuantity(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 1
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if qty, err := strconv.ParseFloat(s, 64); err == nil {
			return qty
		}
		if match := leadingNumberPattern.FindString(s); match != "" {
			if qty, err := strconv.ParseFloat(match, 64); err == nil {
				return qty
			}
		}
	}
	return 1
}

// Proposal AI 產生的單日食譜提案
type Proposal struct {
	Name          string   `json:"name"`
	Calories      int      `json:"calories"`
	Intro         string   `json:"intro"`
	Ingredients   []Item   `json:"ingredients"`
	ShoppingList  []Item   `json:"shopping_list"`
	Steps         []string `json:"steps"`
	ImageKeywords string   `json:"image_keywords"`
	ImageURL      string   `json:"image_url,omitempty"`
}

type proposalEnvelope struct {
	Recipes []Proposal `json:"recipes"`
}

// ParseProposal 從 AI 回應解析食譜提案。回應可能被 markdown code fence
// 包住，也可能一次回傳多道食譜，只取第一道。
func ParseProposal(raw string) (*Proposal, error) {
	content := common.StripCodeFence(raw)
	if p, err := parseContent(content); err == nil {
		return p, nil
	}
	// AI 偶爾輸出未加引號的鍵，補上引號後再試一次
	return parseContent(common.QuoteJSONKeys(content))
}

func parseContent(content string) (*Proposal, error) {
	var envelope proposalEnvelope
	if err := common.ParseJSON(content, &envelope); err == nil && len(envelope.Recipes) > 0 {
		p := envelope.Recipes[0]
		return fillDefaults(&p), nil
	}

	var p Proposal
	if err := common.ParseJSON(content, &p); err != nil {
		return nil, fmt.Errorf("failed to parse recipe response: %w", err)
	}
	if p.Name == "" && len(p.Ingredients) == 0 {
		return nil, fmt.Errorf("recipe response missing required fields")
	}
	return fillDefaults(&p), nil
}

// 檢查並補充空值
func fillDefaults(p *Proposal) *Proposal {
	if p.Name == "" {
		p.Name = "未知菜名"
	}
	if p.Intro == "" {
		p.Intro = "無描述"
	}
	for i := range p.Ingredients {
		if p.Ingredients[i].Quantity <= 0 {
			p.Ingredients[i].Quantity = 1
		}
	}
	for i := range p.ShoppingList {
		if p.ShoppingList[i].Quantity <= 0 {
			p.ShoppingList[i].Quantity = 1
		}
	}
	return p
}
