// README: Structured itinerary produced from the generator's markdown tables.
package itinerary

// Itinerary is one generated travel plan. Days keep the order they had in the text.
type Itinerary struct {
	Days []Day `json:"days"`
}

// Day is a single "**Dia N: ...**" section.
type Day struct {
	Title      string     `json:"day_title"`
	Activities []Activity `json:"activities"`
}

// Activity is one accepted table row.
type Activity struct {
	Period   string `json:"period"`
	Activity string `json:"activity"`
	Details  string `json:"details"`
}

// ActivityCount returns the number of activities across all days.
func (it *Itinerary) ActivityCount() int {
	n := 0
	for _, d := range it.Days {
		n += len(d.Activities)
	}
	return n
}
