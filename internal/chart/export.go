package chart

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path returns where the figure is written inside dir.
func (f Figure) Path(dir, format string) string {
	return filepath.Join(dir, f.Name+"."+format)
}

// Save writes the figure to path in the given format.
func (f Figure) Save(path, format string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("unable to close %s: %w", path, cerr)
		}
	}()
	if err := f.WriteTo(file, format); err != nil {
		return fmt.Errorf("unable to render %s: %w", path, err)
	}
	return nil
}

// ExportAll writes every figure into dir and returns the written paths in order.
func ExportAll(figs []Figure, dir, format string) ([]string, error) {
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create output directory %s: %w", dir, err)
		}
	}
	paths := make([]string, 0, len(figs))
	for _, fig := range figs {
		path := fig.Path(dir, format)
		if err := fig.Save(path, format); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
