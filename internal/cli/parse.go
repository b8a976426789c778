// internal/cli/parse.go
package benchchart

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/benchdata"
	"github.com/mwiater/benchchart/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	okLabel    = color.New(color.FgGreen).SprintFunc()
	warnLabel  = color.New(color.FgYellow).SprintFunc()
	titleLabel = color.New(color.Bold).SprintFunc()
)

// parseCmd implements 'parse', which prints the parsed records without drawing.
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse the data file and print the records as JSON",
	Long: `Parse every package in the data file and print the parsed records as
indented JSON, followed by a one-line summary per package. With --debug the
records are also dumped with pp.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd.OutOrStdout(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(out io.Writer, cfg *appconfig.Config) error {
	doc, err := benchdata.Load(cfg.DataFile())
	if err != nil {
		return err
	}
	parsed, err := pipeline.Parse(doc)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		return fmt.Errorf("encode parsed records: %w", err)
	}
	fmt.Fprintln(out, string(encoded))

	if cfg.Debug {
		pp.Fprintln(out, parsed)
	}

	fmt.Fprintln(out, titleLabel("Summary:"))
	for _, summary := range summarize(parsed) {
		fmt.Fprintln(out, summary)
	}
	return nil
}

// summarize describes each package in one line.
func summarize(parsed pipeline.Parsed) []string {
	var lines []string
	for _, pkg := range parsed.Rust {
		supported := 0
		for _, res := range pkg.Results {
			if res.Supported() {
				supported++
			}
		}
		status := okLabel("ok")
		if supported < len(pkg.Results) {
			status = warnLabel(fmt.Sprintf("%d unavailable", len(pkg.Results)-supported))
		}
		lines = append(lines, fmt.Sprintf("  rust %-20s %d benches (%s)", pkg.Name, len(pkg.Results), status))
	}
	for _, pkg := range parsed.Cpp {
		lines = append(lines, fmt.Sprintf("  cpp  %-20s %d sync cases, %d async policies (%s)",
			pkg.Name, len(pkg.Sync), len(pkg.Async.Benches), okLabel("ok")))
	}
	return lines
}
