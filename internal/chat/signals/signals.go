// internal/chat/signals/signals.go
package signals

import (
	"strings"

	"torqueup-chat/internal/models"
	"torqueup-chat/pkg/brands"
)

// Derive re-scans the concatenation of all prior user turns plus the
// current message and classifies brand, budget, usage and size signals.
// The derivation is stateless and idempotent: the same history and
// message always produce the same Signals.
//
// Budget, usage and size are each first-textual-match-wins: at most one
// bracket/category applies even when the conversation mentions several.
// This mirrors the interview flow where a later answer is expected to
// add a new dimension, not revise an old one.
func Derive(history []models.Turn, message string) Signals {
	text := userText(history, message)

	return Signals{
		Brands: mentionedBrands(text),
		Budget: deriveBudget(text),
		Usage:  deriveUsage(text),
		Size:   deriveSize(text),
	}
}

// userText lowercases and joins the user side of the conversation. The
// assistant's own replies never contribute signals.
func userText(history []models.Turn, message string) string {
	parts := make([]string, 0, len(history)+1)
	for _, turn := range history {
		if turn.IsUser {
			parts = append(parts, strings.ToLower(turn.Text))
		}
	}
	parts = append(parts, strings.ToLower(message))
	return strings.Join(parts, " ")
}

func mentionedBrands(text string) []string {
	var found []string
	for _, b := range brands.Known {
		if strings.Contains(text, b) {
			found = append(found, b)
		}
	}
	return found
}

func deriveBudget(text string) Budget {
	switch {
	case strings.Contains(text, "under 1,000,000"),
		strings.Contains(text, "budget a"),
		strings.Contains(text, "cheap"):
		return BudgetEconomy
	case strings.Contains(text, "1,000,000") && strings.Contains(text, "2,000,000"):
		return BudgetLowMid
	case strings.Contains(text, "2,000,000") && strings.Contains(text, "3,000,000"):
		return BudgetMidHigh
	case strings.Contains(text, "above 3,000,000"),
		strings.Contains(text, "expensive"),
		strings.Contains(text, "luxury"):
		return BudgetPremium
	default:
		return BudgetUnknown
	}
}

func deriveUsage(text string) Usage {
	switch {
	case strings.Contains(text, "city"), strings.Contains(text, "commut"):
		return UsageCity
	case strings.Contains(text, "family"), strings.Contains(text, "trip"):
		return UsageFamily
	case strings.Contains(text, "adventure"), strings.Contains(text, "off-road"):
		return UsageAdventure
	case strings.Contains(text, "business"), strings.Contains(text, "professional"):
		return UsageBusiness
	default:
		return UsageUnknown
	}
}

func deriveSize(text string) Size {
	switch {
	case strings.Contains(text, "compact"):
		return SizeCompact
	case strings.Contains(text, "large"), strings.Contains(text, "suv"):
		return SizeLarge
	default:
		return SizeUnknown
	}
}
