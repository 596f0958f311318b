// README: Markdown itinerary parser (day sections + pipe tables).
package itinerary

import (
	"fmt"
	"log"
	"strings"
)

// Parse turns generator output into an Itinerary. The boolean is false when no
// day section could be found or the input tripped an unexpected condition; the
// caller should then render text as-is. Parse never panics and keeps no state.
func Parse(text string) (it *Itinerary, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("itinerary: parse failed: %v", r)
			it, ok = nil, false
		}
	}()

	days, err := parseDays(text)
	if err != nil {
		log.Printf("itinerary: parse failed: %v", err)
		return nil, false
	}
	return &Itinerary{Days: days}, true
}

func parseDays(text string) ([]Day, error) {
	blocks := strings.Split(text, DayMarker)[1:]
	if len(blocks) == 0 {
		return nil, fmt.Errorf("no days found in itinerary")
	}

	days := make([]Day, 0, len(blocks))
	for _, block := range blocks {
		days = append(days, parseDay(block))
	}
	return days, nil
}

func parseDay(block string) Day {
	lines := strings.Split(strings.TrimSpace(block), "\n")

	title := strings.ReplaceAll(strings.TrimSpace(lines[0]), emphasis, "")
	day := Day{
		Title:      dayPrefix + strings.TrimSpace(title),
		Activities: []Activity{},
	}

	// Line 1 is usually the table header (or a blank line before it).
	for _, row := range lines[min(2, len(lines)):] {
		if isSeparator(row) || strings.TrimSpace(row) == "" {
			continue
		}
		if a, ok := parseRow(row); ok {
			day.Activities = append(day.Activities, a)
		}
	}
	return day
}

// parseRow accepts a row only when the period, activity and details cells are
// all present and non-empty. Header rows are rejected as well.
func parseRow(row string) (Activity, bool) {
	cells := strings.Split(row, cellDelimiter)
	if len(cells) <= 3 {
		return Activity{}, false
	}
	for i := range cells[:4] {
		cells[i] = strings.TrimSpace(cells[i])
	}
	a := Activity{Period: cells[1], Activity: cells[2], Details: cells[3]}
	if a.Period == "" || a.Activity == "" || a.Details == "" {
		return Activity{}, false
	}
	if a.Period == headerPeriod {
		return Activity{}, false
	}
	return a, true
}

func isSeparator(row string) bool {
	return strings.HasPrefix(strings.TrimLeft(row, " \t"), separatorPrefix)
}
