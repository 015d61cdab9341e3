// pkg/brands/brands.go
package brands

import "strings"

// Known is the fixed, ordered enumeration of car makes the signal scan
// recognizes. Order matters: the first brand found anywhere in the user
// text wins, so reordering this list changes filtering results.
var Known = []string{
	"volkswagen", "toyota", "honda", "bmw", "mercedes", "audi", "ford",
	"chevrolet", "nissan", "hyundai", "kia", "mazda", "subaru", "lexus",
	"infiniti", "acura", "volvo", "jaguar", "land rover", "porsche",
	"ferrari", "lamborghini", "bentley", "rolls royce", "maserati",
	"alfa romeo", "fiat", "jeep", "dodge", "chrysler", "cadillac",
	"lincoln", "buick", "gmc", "ram", "tesla", "peugeot", "citroen",
	"renault", "dacia", "skoda", "seat",
}

// FirstMentioned returns the first known brand (in enumeration order)
// that appears as a substring of text, or "" when none does. Text is
// expected to be lowercased by the caller.
func FirstMentioned(text string) string {
	for _, b := range Known {
		if strings.Contains(text, b) {
			return b
		}
	}
	return ""
}

// Display capitalizes the first letter of a brand for user-facing text.
func Display(brand string) string {
	if brand == "" {
		return ""
	}
	return strings.ToUpper(brand[:1]) + brand[1:]
}
