// README: Markdown rendering of a parsed itinerary for terminal and plain-text views.
package itinerary

import (
	"fmt"
	"strings"
)

// MainTitle heads every rendered itinerary.
const MainTitle = "Seu Roteiro de Viagem Personalizado ✈️"

// Markdown renders the itinerary back into a normalized markdown document: one
// heading per day followed by its activities. Days without activities keep
// their heading.
func Markdown(it *Itinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", MainTitle)
	for _, d := range it.Days {
		fmt.Fprintf(&b, "\n## %s\n\n", d.Title)
		if len(d.Activities) == 0 {
			b.WriteString("_Sem atividades._\n")
			continue
		}
		for _, a := range d.Activities {
			fmt.Fprintf(&b, "- **%s** · %s\n  %s\n", a.Period, a.Activity, a.Details)
		}
	}
	return b.String()
}
