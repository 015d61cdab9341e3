// internal/models/chat.go
package models

// Turn is one prior message of the conversation, caller-supplied and
// read-only for the lifetime of a request.
type Turn struct {
	Text   string `json:"text"`
	IsUser bool   `json:"isUser"`
}

// Recommendation type discriminators.
const (
	RecommendationCars  = "cars"
	RecommendationParts = "parts"
)

// Recommendation is the structured payload attached to a chat reply to
// drive UI recommendation cards. Items holds []Car or []Part depending
// on Type.
type Recommendation struct {
	Type  string      `json:"type"`
	Items interface{} `json:"items"`
	Title string      `json:"title"`
}
