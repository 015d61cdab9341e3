// internal/chat/signals/signals_test.go
package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"torqueup-chat/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func userTurn(text string) models.Turn {
	return models.Turn{Text: text, IsUser: true}
}

func assistantTurn(text string) models.Turn {
	return models.Turn{Text: text, IsUser: false}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestDerive_Brands(t *testing.T) {
	tests := []struct {
		name     string
		history  []models.Turn
		message  string
		expected []string
	}{
		{
			name:     "single brand in current message",
			message:  "do you have any Toyota?",
			expected: []string{"toyota"},
		},
		{
			name: "brand from an earlier user turn",
			history: []models.Turn{
				userTurn("I like Honda cars"),
				assistantTurn("Great choice! What's your budget?"),
			},
			message:  "something affordable",
			expected: []string{"honda"},
		},
		{
			name:     "multiple brands in enumeration order",
			message:  "maybe a Mazda, or a BMW",
			expected: []string{"bmw", "mazda"},
		},
		{
			name:     "no brand mentioned",
			message:  "I need a family car",
			expected: nil,
		},
		{
			name: "assistant mentions never count",
			history: []models.Turn{
				assistantTurn("Have you considered Ford?"),
			},
			message:  "not sure yet",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Derive(tt.history, tt.message)
			assert.Equal(t, tt.expected, sig.Brands)
			assert.Equal(t, len(tt.expected) > 0, sig.BrandMentioned())
		})
	}
}

func TestDerive_Budget(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Budget
	}{
		{"under one million", "something under 1,000,000", BudgetEconomy},
		{"cheap keyword", "a cheap runabout", BudgetEconomy},
		{"one to two million", "between 1,000,000 and 2,000,000", BudgetLowMid},
		{"two to three million", "between 2,000,000 and 3,000,000", BudgetMidHigh},
		{"above three million", "above 3,000,000 is fine", BudgetPremium},
		{"luxury keyword", "I want a luxury car", BudgetPremium},
		{"no budget hints", "just looking around", BudgetUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Derive(nil, tt.message)
			assert.Equal(t, tt.expected, sig.Budget)
		})
	}
}

func TestDerive_UsageAndSize(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		expectedUse  Usage
		expectedSize Size
	}{
		{"city commuting", "mostly city commuting", UsageCity, SizeUnknown},
		{"family trips", "family trips on weekends", UsageFamily, SizeUnknown},
		{"off-road adventure", "off-road adventure driving", UsageAdventure, SizeUnknown},
		{"business use", "business meetings mostly", UsageBusiness, SizeUnknown},
		{"compact size", "a compact one please", UsageUnknown, SizeCompact},
		{"large suv", "a large SUV", UsageUnknown, SizeLarge},
		{"nothing derivable", "hello there", UsageUnknown, SizeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Derive(nil, tt.message)
			assert.Equal(t, tt.expectedUse, sig.Usage)
			assert.Equal(t, tt.expectedSize, sig.Size)
		})
	}
}

func TestDerive_FirstMatchWins(t *testing.T) {
	// "city" appears before "family" in the predicate order, so a message
	// carrying both classifies as city.
	sig := Derive(nil, "city driving with the family")
	assert.Equal(t, UsageCity, sig.Usage)

	// "cheap" hits the economy bracket before the premium keywords are
	// considered.
	sig = Derive(nil, "a cheap luxury look")
	assert.Equal(t, BudgetEconomy, sig.Budget)
}

func TestDerive_AccumulatesAcrossTurns(t *testing.T) {
	history := []models.Turn{
		userTurn("I drive in the city"),
		assistantTurn("What's your budget range?"),
		userTurn("under 1,000,000"),
	}

	sig := Derive(history, "compact please")

	assert.Equal(t, UsageCity, sig.Usage)
	assert.Equal(t, BudgetEconomy, sig.Budget)
	assert.Equal(t, SizeCompact, sig.Size)
}

func TestDerive_Idempotent(t *testing.T) {
	history := []models.Turn{userTurn("Toyota for family trips")}

	first := Derive(history, "under 1,000,000")
	second := Derive(history, "under 1,000,000")

	assert.Equal(t, first, second)
}

func TestBudget_Matches(t *testing.T) {
	tests := []struct {
		name     string
		budget   Budget
		price    float64
		expected bool
	}{
		{"economy below bound", BudgetEconomy, 14999, true},
		{"economy at bound", BudgetEconomy, 15000, false},
		{"low-mid lower bound inclusive", BudgetLowMid, 15000, true},
		{"low-mid upper bound exclusive", BudgetLowMid, 25000, false},
		{"mid-high in range", BudgetMidHigh, 30000, true},
		{"premium at bound", BudgetPremium, 35000, true},
		{"premium below bound", BudgetPremium, 34999, false},
		{"unknown matches everything", BudgetUnknown, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.budget.Matches(tt.price))
		})
	}
}
