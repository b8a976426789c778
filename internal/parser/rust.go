// internal/parser/rust.go
package parser

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// test bench_1_file ... bench:         216 ns/iter (+/- 6)
	rustPrefixRegex      = regexp.MustCompile(`test bench_\d+_`)
	rustMeasurementRegex = regexp.MustCompile(`^(\S+)\s+(\S+)\s+\(\+/-\s*(\S+)\)$`)
)

const (
	rustUnavailable = "unavailable"
	rustBenchPrefix = "bench:"
	// asyncFileBench keeps its suffix so it does not collide with "file".
	asyncFileBench = "file_async"
)

// ParseRust parses libtest bench output. Every non-blank line must be a
// `name ... result` pair; the first deviation aborts the parse.
func ParseRust(raw string) ([]RustResult, error) {
	var results []RustResult
	scanner := bufio.NewScanner(strings.NewReader(rustPrefixRegex.ReplaceAllString(raw, "")))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		res, err := parseRustLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan rust output: %w", err)
	}
	return results, nil
}

func parseRustLine(line string) (RustResult, error) {
	parts := strings.Split(line, "...")
	if len(parts) != 2 {
		return RustResult{}, fmt.Errorf("%w: expected `name ... result`, got %q", ErrMalformed, line)
	}
	name := strings.TrimSpace(parts[0])
	result := strings.TrimSpace(parts[1])
	if name == "" {
		return RustResult{}, fmt.Errorf("%w: missing bench name in %q", ErrMalformed, line)
	}

	isAsync := strings.HasSuffix(name, "_async")
	if name != asyncFileBench {
		name = strings.TrimSuffix(name, "_async")
	}

	res := RustResult{Bench: name, Async: isAsync}
	switch {
	case result == rustUnavailable:
		return res, nil
	case strings.HasPrefix(result, rustBenchPrefix):
		m, err := parseRustMeasurement(strings.TrimPrefix(result, rustBenchPrefix))
		if err != nil {
			return RustResult{}, err
		}
		res.Value = &m
		return res, nil
	default:
		return RustResult{}, fmt.Errorf("%w: %q", ErrUnexpectedResult, result)
	}
}

func parseRustMeasurement(text string) (Measurement, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	matches := rustMeasurementRegex.FindStringSubmatch(text)
	if matches == nil {
		return Measurement{}, fmt.Errorf("%w: measurement %q", ErrMalformed, text)
	}
	if matches[2] != RustUnit {
		return Measurement{}, fmt.Errorf("%w: %q", ErrUnexpectedUnit, matches[2])
	}
	median, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: median %q", ErrMalformed, matches[1])
	}
	deviation, err := strconv.ParseFloat(matches[3], 64)
	if err != nil {
		return Measurement{}, fmt.Errorf("%w: deviation %q", ErrMalformed, matches[3])
	}
	return Measurement{Unit: matches[2], Median: median, Deviation: deviation}, nil
}
