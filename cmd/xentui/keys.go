package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/rapidmidiex/xentui/vpiano"
	"github.com/spf13/cobra"
)

var (
	keysJSON     bool
	gapWhiteKeys int
	gapOffset    int
	gapDivisions int
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Colour the keys of a keyboard",
}

var keysAutoCmd = &cobra.Command{
	Use:   "auto <divisions>",
	Short: "Colour an equal division by its nearest 12-tone pitch classes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("divisions: %w", err)
		}
		return printColors(cmd, keycolors.Auto(n))
	},
}

var keysGapCmd = &cobra.Command{
	Use:   "gap [generator]",
	Short: "Colour the keys of a generated scale",
	Long: `Colour the keys of the scale stacked from a generator given in octaves,
ex: "7/12" or "0.585", or in interval notation, ex: "7\12" or "700.".
A generator that is a step of an equal division colours that division unless
--divisions is given. Without a generator the fifth of --divisions is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k := cfg.Keyboard
		k.Layout = config.LayoutGap
		if cmd.Flags().Changed("white") {
			k.WhiteKeys = gapWhiteKeys
		}
		if cmd.Flags().Changed("offset") {
			k.Offset = gapOffset
		}
		if cmd.Flags().Changed("divisions") {
			k.Divisions = gapDivisions
			k.Generator = ""
		}
		p := chord.New(cfg.ChordConfig())

		if len(args) == 1 && !cmd.Flags().Changed("divisions") {
			g, err := config.ParseGenerator(args[0], p)
			if err != nil {
				return err
			}
			colors, err := keycolors.Gap(g, k.WhiteKeys, k.Offset)
			if err != nil {
				return err
			}
			return printColors(cmd, colors)
		}
		if len(args) == 1 {
			k.Generator = args[0]
		}

		colors, err := k.Colors(p)
		if err != nil {
			return err
		}
		return printColors(cmd, colors)
	},
}

func printColors(cmd *cobra.Command, colors keycolors.Colors) error {
	w := cmd.OutOrStdout()
	if keysJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(colors)
	}

	fmt.Fprintln(w, colors.String())
	for _, k := range vpiano.MakeKeyboard(colors) {
		binding := "-"
		if k.KeyBinding != "" {
			binding = k.KeyBinding
		}
		color := keycolors.White
		if k.IsAccidental {
			color = keycolors.Black
		}
		fmt.Fprintf(w, "\t%-6s %-5s %s\n", k.Name, color, binding)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysAutoCmd, keysGapCmd)
	keysCmd.PersistentFlags().BoolVar(&keysJSON, "json", false, "Output in JSON format")
	keysGapCmd.Flags().IntVar(&gapWhiteKeys, "white", 7, "Number of white keys")
	keysGapCmd.Flags().IntVar(&gapOffset, "offset", 1, "Generator steps below the first key")
	keysGapCmd.Flags().IntVar(&gapDivisions, "divisions", 12, "Equal division whose fifth is the default generator")
}
