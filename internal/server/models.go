// internal/server/models.go
package server

import "torqueup-chat/internal/models"

type chatContext struct {
	PreviousMessages []models.Turn `json:"previousMessages"`
}

// chatRequest is the POST /chat body. Cars is the caller's current approved
// inventory snapshot; Context carries the prior conversation turns.
type chatRequest struct {
	Message string       `json:"message"`
	Cars    []models.Car `json:"cars"`
	Context *chatContext `json:"context"`
}

func (r *chatRequest) history() []models.Turn {
	if r.Context == nil {
		return nil
	}
	return r.Context.PreviousMessages
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
