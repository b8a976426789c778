package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Data File:        %s\n", cfg.DataFile())
	fmt.Fprintf(out, "  Export:           %v\n", cfg.Export)
	fmt.Fprintf(out, "  Output Directory: %s\n", cfg.ResolvedOutputDir())
	fmt.Fprintf(out, "  Format:           %s\n", cfg.ExportFormat())
	if cfg.HTMLReport != "" {
		fmt.Fprintf(out, "  HTML Report:      %s\n", cfg.HTMLReport)
	}
	fmt.Fprintf(out, "  Highlight:        %s\n", cfg.HighlightName())
	if cfg.RustSyncBench != "" || cfg.RustAsyncBench != "" {
		fmt.Fprintf(out, "  Rust Benches:     %s / %s\n", cfg.RustSyncBench, cfg.RustAsyncBench)
	}
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
}
