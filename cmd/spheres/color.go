package main

import (
	"fmt"

	"robot-viewer/internal/collision"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <link>...",
		Short: "Print the overlay color of each link",
		Long: `Color prints the color the viewer gives each link: hex, then hue, saturation and lightness.
On a color terminal a swatch follows each line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := termenv.NewOutput(cmd.OutOrStdout())
			for _, link := range args {
				hex := collision.ColorForLink(link).Hex()
				h, s, l := collision.HSLForLink(link)
				line := fmt.Sprintf("%s  %s  %.4f %.2f %.2f", link, hex, h, s, l)
				if out.Profile != termenv.Ascii {
					line += "  " + out.String("    ").Background(out.Color(hex)).String()
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
