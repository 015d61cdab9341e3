// internal/chat/signals/models.go
package signals

// Budget is one of the four interview price brackets. Bracket bounds are
// the numeric thresholds the inventory prices are stored in, not the
// currency amounts quoted in the interview script.
type Budget int

const (
	BudgetUnknown Budget = iota
	BudgetEconomy        // under the first threshold
	BudgetLowMid
	BudgetMidHigh
	BudgetPremium // above the last threshold
)

const (
	priceLow  = 15000
	priceMid  = 25000
	priceHigh = 35000
)

// Matches reports whether price falls inside the bracket. BudgetUnknown
// matches everything.
func (b Budget) Matches(price float64) bool {
	switch b {
	case BudgetEconomy:
		return price < priceLow
	case BudgetLowMid:
		return price >= priceLow && price < priceMid
	case BudgetMidHigh:
		return price >= priceMid && price < priceHigh
	case BudgetPremium:
		return price >= priceHigh
	default:
		return true
	}
}

// Usage is the primary-need answer of the interview script.
type Usage int

const (
	UsageUnknown Usage = iota
	UsageCity
	UsageFamily
	UsageAdventure
	UsageBusiness
)

// Size is the size-preference answer of the interview script.
type Size int

const (
	SizeUnknown Size = iota
	SizeCompact
	SizeLarge
)

// Signals is the classification derived from the whole conversation.
// Brands holds every known make mentioned anywhere in the user text, in
// the fixed enumeration order of pkg/brands, NOT in mention order.
type Signals struct {
	Brands []string
	Budget Budget
	Usage  Usage
	Size   Size
}

// BrandMentioned reports whether any known brand appears in the user text.
func (s Signals) BrandMentioned() bool {
	return len(s.Brands) > 0
}
