package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/format"
	"github.com/spf13/cobra"
)

var (
	parseJSON bool
	parseGlob string
)

type parsedChord struct {
	Source string      `json:"source,omitempty"`
	Line   int         `json:"line,omitempty"`
	Text   string      `json:"text"`
	Chord  chord.Chord `json:"intervals,omitempty"`
	Error  string      `json:"error,omitempty"`
}

var parseCmd = &cobra.Command{
	Use:   "parse [chord]",
	Short: "Parse a chord and print its intervals",
	Long: `Parse a chord such as "3/2 701.955 7\12 [-1 1>" and print each interval.
With --glob every matching file is read, one chord per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := chord.New(cfg.ChordConfig())

		var results []parsedChord
		if parseGlob != "" {
			files, err := doublestar.FilepathGlob(parseGlob)
			if err != nil {
				return fmt.Errorf("glob %q: %w", parseGlob, err)
			}
			slog.Debug("parsing files", "pattern", parseGlob, "count", len(files))
			for _, name := range files {
				r, err := parseFile(p, name)
				if err != nil {
					return err
				}
				results = append(results, r...)
			}
		} else {
			results = append(results, parseText(p, strings.Join(args, " ")))
		}

		return printChords(cmd.OutOrStdout(), results)
	},
}

func parseFile(p *chord.Parser, name string) ([]parsedChord, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var results []parsedChord
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		r := parseText(p, sc.Text())
		r.Source, r.Line = name, line
		results = append(results, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return results, nil
}

func parseText(p *chord.Parser, text string) parsedChord {
	r := parsedChord{Text: text}
	c, err := p.Parse(text)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Chord = c
	return r
}

func printChords(w io.Writer, results []parsedChord) error {
	if parseJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	var failed int
	for _, r := range results {
		if r.Source != "" {
			fmt.Fprintf(w, "%s:%d: ", r.Source, r.Line)
		}
		if r.Error != "" {
			failed++
			fmt.Fprintf(w, "error: %s\n", r.Error)
			continue
		}
		fmt.Fprintln(w, r.Chord.String())
		for _, iv := range r.Chord {
			fmt.Fprintf(w, "\t%-17s %-16s %sc\n",
				iv.Type, iv.String(), format.FormatExponential(iv.TotalCents(), cfg.Format.FractionDigits))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d chords failed to parse", failed, len(results))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Output in JSON format")
	parseCmd.Flags().StringVar(&parseGlob, "glob", "", "Read chords from files matching this pattern, ex: 'chords/**/*.txt'")
}
