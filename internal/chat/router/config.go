// internal/chat/router/config.go
package router

import "time"

type Config struct {
	// MaxRecommendations caps every recommendation payload, cars and parts.
	MaxRecommendations int
	// Timeout bounds one full pipeline pass, completion call included.
	Timeout time.Duration
}
