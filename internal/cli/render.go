// internal/cli/render.go
package benchchart

import (
	"fmt"
	"io"

	"github.com/mwiater/benchchart/internal/appconfig"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/pipeline"
	"github.com/mwiater/benchchart/internal/report"
	"github.com/mwiater/benchchart/internal/tui"
	"go.uber.org/zap"
)

// displayFigures shows the figures interactively. Tests replace it.
var displayFigures = tui.Run

func pipelineOptions(cfg *appconfig.Config) pipeline.Options {
	return pipeline.Options{
		Highlight:      cfg.HighlightName(),
		RustSyncBench:  cfg.RustSyncBench,
		RustAsyncBench: cfg.RustAsyncBench,
	}
}

// runRender builds the four figures and either exports or displays them.
func runRender(out io.Writer, cfg *appconfig.Config) error {
	figs, err := pipeline.Run(cfg.DataFile(), pipelineOptions(cfg))
	if err != nil {
		return err
	}

	if cfg.HTMLReport != "" {
		if err := report.WriteReport(cfg.HTMLReport, figs, cfg.DataFile()); err != nil {
			return err
		}
		fmt.Fprintf(out, "HTML report written to %s\n", cfg.HTMLReport)
	}

	if !cfg.Export {
		return displayFigures(figs)
	}

	paths, err := chart.ExportAll(figs, cfg.ResolvedOutputDir(), cfg.ExportFormat())
	if err != nil {
		return err
	}
	for _, path := range paths {
		logging.Logger().Debug("exported chart", zap.String("path", path))
		fmt.Fprintf(out, "Exported %s\n", path)
	}
	return nil
}
