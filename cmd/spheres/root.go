package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spheres",
		Short: "Inspect collision sphere hierarchies",
		Long: `spheres reads the sphere hierarchy files the robot viewer draws as a collision overlay.
It shows which sphere set the viewer picks for each link and which color each link gets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newReduceCmd(), newColorCmd())
	return root
}
