// internal/chat/filter/filter.go
package filter

import (
	"strings"

	"torqueup-chat/internal/chat/signals"
	"torqueup-chat/internal/models"
)

// Result is the outcome of one filter pass over the inventory snapshot.
// FellBack means every signal-derived filter eliminated all candidates
// and Cars holds an unfiltered slice instead; UnavailableBrand names the
// brand the apology sentence should mention, "" when no brand was asked
// for.
type Result struct {
	Cars             []models.Car
	FellBack         bool
	UnavailableBrand string
}

// Apply runs the filter pipeline: brand, budget, usage, size — in that
// order, each stage narrowing the candidate list of the previous one, so
// the stages compose as a logical AND in application order.
//
// A cars recommendation is never empty while the inventory has entries:
// when the pipeline eliminates everything, the first max inventory items
// are returned as a fallback.
func Apply(inventory []models.Car, sig signals.Signals, max int) Result {
	cars := make([]models.Car, len(inventory))
	copy(cars, inventory)

	cars, brandMatched := applyBrand(cars, sig)
	cars = applyBudget(cars, sig.Budget)
	cars = applyUsage(cars, sig.Usage)
	cars = applySize(cars, sig.Size)

	if len(cars) == 0 {
		res := Result{FellBack: true}
		if sig.BrandMentioned() && !brandMatched {
			// First brand in enumeration order, same order the scan uses.
			res.UnavailableBrand = sig.Brands[0]
		}
		res.Cars = capped(inventory, max)
		return res
	}

	return Result{Cars: capped(cars, max)}
}

// applyBrand restricts candidates to the first mentioned brand that
// matches at least one car. A mentioned brand with zero matches is
// skipped, and when every mentioned brand comes up empty the candidate
// set is emptied so the caller falls back with an apology.
func applyBrand(cars []models.Car, sig signals.Signals) ([]models.Car, bool) {
	if !sig.BrandMentioned() {
		return cars, false
	}

	for _, brand := range sig.Brands {
		var matched []models.Car
		for _, car := range cars {
			carMake := strings.ToLower(car.Make)
			if strings.Contains(carMake, brand) || carMake == brand {
				matched = append(matched, car)
			}
		}
		if len(matched) > 0 {
			return matched, true
		}
	}

	return nil, false
}

func applyBudget(cars []models.Car, budget signals.Budget) []models.Car {
	if budget == signals.BudgetUnknown {
		return cars
	}
	var out []models.Car
	for _, car := range cars {
		if budget.Matches(car.Price) {
			out = append(out, car)
		}
	}
	return out
}

func applyUsage(cars []models.Car, usage signals.Usage) []models.Car {
	if usage == signals.UsageUnknown {
		return cars
	}
	var out []models.Car
	for _, car := range cars {
		if matchesUsage(car, usage) {
			out = append(out, car)
		}
	}
	return out
}

func matchesUsage(car models.Car, usage signals.Usage) bool {
	body := strings.ToLower(car.BodyStyle)
	switch usage {
	case signals.UsageCity:
		return strings.Contains(body, "sedan") ||
			strings.Contains(body, "hatch") ||
			strings.Contains(strings.ToLower(car.FuelConsumption), "efficient")
	case signals.UsageFamily:
		return car.SeatingCapacity >= 5 ||
			strings.Contains(body, "suv") ||
			strings.Contains(body, "sedan")
	case signals.UsageAdventure:
		drivetrain := strings.ToLower(car.Drivetrain)
		return strings.Contains(body, "suv") ||
			strings.Contains(drivetrain, "awd") ||
			strings.Contains(drivetrain, "4wd")
	case signals.UsageBusiness:
		return strings.Contains(body, "sedan") ||
			strings.Contains(strings.ToLower(car.Category), "luxury")
	default:
		return true
	}
}

func applySize(cars []models.Car, size signals.Size) []models.Car {
	if size == signals.SizeUnknown {
		return cars
	}
	var out []models.Car
	for _, car := range cars {
		if matchesSize(car, size) {
			out = append(out, car)
		}
	}
	return out
}

func matchesSize(car models.Car, size signals.Size) bool {
	body := strings.ToLower(car.BodyStyle)
	switch size {
	case signals.SizeCompact:
		return strings.Contains(body, "hatch") || strings.Contains(body, "compact")
	case signals.SizeLarge:
		return strings.Contains(body, "suv") || car.SeatingCapacity >= 7
	default:
		return true
	}
}

func capped(cars []models.Car, max int) []models.Car {
	if max > 0 && len(cars) > max {
		return cars[:max]
	}
	return cars
}
