// Package cli implements the describe command line tool.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/yanqian/part-describer/internal/domain/description"
)

// Clipboard receives the last generated description when --copy is set.
type Clipboard func(text string) error

type options struct {
	batch bool
	copy  bool
}

type row struct {
	input string
	desc  string
}

// NewCommand builds the describe command. Input comes from the arguments or,
// when there are none, one description per line of in.
func NewCommand(in io.Reader, out io.Writer, clipboard Clipboard, logger *slog.Logger) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "describe [text...]",
		Short: "Normalize free text into a standard fastener description",
		Long: "describe turns loosely formatted text such as \"aluminum blind rivet with 1/4 diameter\"\n" +
			"into the canonical comma separated form \"RIVET, ALUMINUM, BLIND, 1/4 DIAMETER\".",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows []row
			if len(args) > 0 {
				rows = describeAll([]string{strings.Join(args, " ")})
			} else {
				lines, err := readLines(in)
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				rows = describeAll(lines)
			}
			logger.Debug("descriptions generated", "count", len(rows))

			if opts.batch {
				writeTable(out, rows)
			} else {
				for _, r := range rows {
					fmt.Fprintln(out, r.desc)
				}
			}

			if opts.copy && len(rows) > 0 {
				last := rows[len(rows)-1].desc
				if err := clipboard(last); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				logger.Debug("description copied to clipboard", "description", last)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.batch, "batch", "b", false, "print each input next to its description")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "copy the last description to the clipboard")
	return cmd
}

// describeAll drops inputs that produce no description.
func describeAll(inputs []string) []row {
	rows := make([]row, 0, len(inputs))
	for _, input := range inputs {
		out := description.Normalize(input)
		if len(out) == 0 {
			continue
		}
		rows = append(rows, row{input: strings.TrimSpace(input), desc: out[0]})
	}
	return rows
}

// readLines reads every line of r regardless of its length.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return lines, err
		}
	}
}

// writeTable aligns descriptions by display width so wide runes line up.
func writeTable(w io.Writer, rows []row) {
	width := 0
	for _, r := range rows {
		if n := runewidth.StringWidth(r.input); n > width {
			width = n
		}
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s  =>  %s\n", runewidth.FillRight(r.input, width), r.desc)
	}
}
