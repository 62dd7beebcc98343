package main

import (
	"fmt"
	"strconv"

	"github.com/rapidmidiex/xentui/format"
	"github.com/spf13/cobra"
)

var hzCmd = &cobra.Command{
	Use:   "hz <frequency>...",
	Short: "Write frequencies with an SI prefix",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := formatter()
		return eachFloat(cmd, args, f.Hertz)
	},
}

var expCmd = &cobra.Command{
	Use:   "exp <number>...",
	Short: "Write numbers in fixed or scientific notation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := formatter()
		return eachFloat(cmd, args, f.Exponential)
	},
}

func formatter() format.Formatter {
	f := format.Default
	f.FractionDigits = cfg.Format.FractionDigits
	return f
}

func eachFloat(cmd *cobra.Command, args []string, render func(float64) string) error {
	for _, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number: %w", arg, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), render(x))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(hzCmd, expCmd)
}
