// internal/chat/gemini/config.go
package gemini

import "time"

type Config struct {
	BaseURL         string
	APIKey          string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
	SafetyThreshold string
}
