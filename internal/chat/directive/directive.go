// internal/chat/directive/directive.go
package directive

import (
	"regexp"
	"strings"
)

// CarsMarker is the literal token the completion model is instructed to
// embed when it wants car recommendation cards attached to its reply.
const CarsMarker = "[RECOMMEND_CARS]"

var partsMarkerRe = regexp.MustCompile(`\[RECOMMEND_PARTS:([^\]]+)\]`)

// Directives is what was found in one completion reply. PartType is the
// raw parameter of the parts marker, "" when no parts marker was present.
type Directives struct {
	Cars     bool
	Parts    bool
	PartType string
}

// Parse extracts recommendation directives from raw model output and
// returns the cleaned visible text. Markers are always stripped, even
// when the caller later fails to resolve them into a payload: the raw
// token must never reach the user.
func Parse(raw string) (string, Directives) {
	text := raw
	var d Directives

	if strings.Contains(text, CarsMarker) {
		d.Cars = true
		text = strings.Replace(text, CarsMarker, "", 1)
		text = strings.TrimSpace(text)
	}

	if m := partsMarkerRe.FindStringSubmatch(text); m != nil {
		d.Parts = true
		d.PartType = m[1]
		text = strings.Replace(text, m[0], "", 1)
		text = strings.TrimSpace(text)
	}

	return text, d
}
