package ai

// Response AI 響應
type Response struct {
	Content  string `json:"content"`
	CacheHit bool   `json:"cache_hit"`
	Usage    Usage  `json:"usage"`
}

// Usage 使用量
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
