package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/midi"
	"github.com/spf13/cobra"
)

var midiNoRoot bool

var midiCmd = &cobra.Command{
	Use:   "midi <chord>",
	Short: "Write a chord to a standard MIDI file",
	Long: `Write a chord to a standard MIDI file, one channel per tone. Each tone is
tuned with pitch bend, so the file plays back in tune on any General MIDI synth.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chord.New(cfg.ChordConfig()).Parse(strings.Join(args, " "))
		if err != nil {
			return err
		}

		o := midi.DefaultOptions()
		o.BaseFrequency = cfg.Tuning.BaseFrequency
		o.BendRange = cfg.Tuning.BendRange
		o.IncludeRoot = !midiNoRoot

		f, err := os.Create(exportPath)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := midi.WriteChord(f, c, o); err != nil {
			return fmt.Errorf("write %s: %w", exportPath, err)
		}
		slog.Info("chord written", "path", exportPath, "tones", len(c))
		return f.Close()
	},
}

func init() {
	rootCmd.AddCommand(midiCmd)
	midiCmd.Flags().BoolVar(&midiNoRoot, "no-root", false, "Leave out the root tone")
}
