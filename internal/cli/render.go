package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"roteiro/internal/itinerary"
)

// writeItinerary prints it as markdown, styled for the terminal unless plain is set.
func writeItinerary(w io.Writer, it *itinerary.Itinerary, plain bool) error {
	md := itinerary.Markdown(it)
	if plain {
		_, err := io.WriteString(w, md)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
