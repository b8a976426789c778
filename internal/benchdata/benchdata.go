// internal/benchdata/benchdata.go
// Package benchdata loads the document holding raw benchmark output for every
// compared package.
package benchdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Document is the decoded data file.
type Document struct {
	Rust []RustPackage `json:"rust"`
	Cpp  []CppPackage  `json:"cpp"`
}

// RustPackage holds libtest bench output for one Rust logging crate.
type RustPackage struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Features []string `json:"features,omitempty"`
	Raw      string   `json:"raw"`
}

// Label returns the multi-line axis label for the package.
func (p RustPackage) Label() string { return Label(p.Name, p.Version, p.Features) }

// CppPackage holds sync and async harness output for one package compared
// against C++ spdlog.
type CppPackage struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Features []string `json:"features,omitempty"`
	RawSync  string   `json:"raw_sync"`
	RawAsync string   `json:"raw_async"`
}

// Label returns the multi-line axis label for the package.
func (p CppPackage) Label() string { return Label(p.Name, p.Version, p.Features) }

// Label formats "name\nversion" with an optional "\n(feature, ...)" line.
func Label(name, version string, features []string) string {
	label := name + "\n" + version
	if len(features) > 0 {
		label += "\n(" + strings.Join(features, ", ") + ")"
	}
	return label
}

// FormatFromPath picks the document format from the file extension,
// defaulting to TOML.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Load reads, validates and decodes the data file at path.
func Load(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("unable to read data file %s: %w", path, err)
	}
	doc, err := Decode(raw, FormatFromPath(path))
	if err != nil {
		return Document{}, fmt.Errorf("unable to load data file %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses raw in the given format, validates it against the document
// schema and converts it into a Document.
func Decode(raw []byte, format string) (Document, error) {
	var data any
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(raw, &data); err != nil {
			return Document{}, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return Document{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(raw, &data); err != nil {
			return Document{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("unsupported data format %q", format)
	}
	if data == nil {
		data = map[string]any{}
	}

	normalized, err := json.Marshal(data)
	if err != nil {
		return Document{}, fmt.Errorf("unable to normalize document: %w", err)
	}
	if err := Validate(normalized); err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return Document{}, fmt.Errorf("unable to decode document: %w", err)
	}
	return doc, nil
}
