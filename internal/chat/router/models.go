// internal/chat/router/models.go
package router

import (
	"context"

	"torqueup-chat/internal/models"
)

// Input carries one chat turn through the pipeline. Inventory is the
// pre-fetched approved car listing used for both prompt grounding and
// recommendation filtering.
type Input struct {
	Message   string
	History   []models.Turn
	Inventory []models.Car
}

// Output is the assistant reply with an optional recommendation payload.
type Output struct {
	Response       string                 `json:"response"`
	Recommendation *models.Recommendation `json:"recommendations,omitempty"`
}

// CompletionClient produces the raw assistant reply for a prompt.
type CompletionClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PartsLookup searches the approved parts catalog by title substring.
type PartsLookup interface {
	SearchByTitle(ctx context.Context, substring string, limit int) ([]models.Part, error)
}

// ProfileLookup resolves seller ids to display usernames.
type ProfileLookup interface {
	Usernames(ctx context.Context, ids []string) (map[string]string, error)
}
