package main

import (
	"github.com/rapidmidiex/xentui"
	"github.com/spf13/cobra"
)

var exportPath string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	return xentui.Run(cfg, exportPath)
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.PersistentFlags().StringVarP(&exportPath, "out", "o", "chord.mid", "File written when a chord is exported")
}
