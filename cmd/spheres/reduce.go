package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"robot-viewer/internal/spheres"

	"github.com/spf13/cobra"
)

func newReduceCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "reduce <file>",
		Short: "Print the finest valid sphere set per link",
		Long: `Reduce loads a JSON or YAML sphere hierarchy and keeps, for every link entry, the valid subdivision
with the most spheres. Without --json it prints one line per link with the chosen sphere count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := spheres.Load(args[0])
			if err != nil {
				return err
			}
			sets := spheres.Reduce(h)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(sets)
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LINK\tSPHERES")
			for _, set := range sets {
				fmt.Fprintf(w, "%s\t%d\n", set.Link, len(set.Spheres))
			}
			fmt.Fprintf(w, "total\t%d\n", spheres.Count(sets))
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the reduced sets as JSON")
	return cmd
}
