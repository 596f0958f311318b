package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"roteiro/internal/itinerary"
)

// errNotItinerary is reported when the input has no day sections.
var errNotItinerary = errors.New("input is not an itinerary")

func newParseCmd() *cobra.Command {
	var (
		asJSON bool
		plain  bool
	)
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an itinerary and print its structure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			it, ok := itinerary.Parse(text)
			if !ok {
				return errNotItinerary
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(it)
			}
			if err := writeItinerary(cmd.OutOrStdout(), it, plain); err != nil {
				return fmt.Errorf("render: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the itinerary as JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "print markdown without terminal styling")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file]",
		Short: "Report whether text looks like an itinerary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), itinerary.LooksLikeItinerary(text))
			return err
		},
	}
}
