// README: Cheap heuristic deciding whether a reply should go through the parser.
package itinerary

import "strings"

const (
	// DayMarker introduces every day section. Parse splits on it.
	DayMarker = "**Dia "
	// HeaderMarker is the table header cell the generator always emits.
	HeaderMarker = "| " + headerPeriod + " |"

	headerPeriod    = "Período"

	dayPrefix       = "Dia "
	emphasis        = "**"
	cellDelimiter   = "|"
	separatorPrefix = "|---"
)

// LooksLikeItinerary reports whether text contains both the day marker and the
// table header marker. False positives and negatives are accepted; Parse has
// the final word.
func LooksLikeItinerary(text string) bool {
	return strings.Contains(text, DayMarker) && strings.Contains(text, HeaderMarker)
}
