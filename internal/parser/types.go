// internal/parser/types.go
package parser

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// RustUnit is the only unit the Rust benchmark runner is expected to report.
	RustUnit = "ns/iter"
	// CppUnit is the throughput unit printed by the C++ harness.
	CppUnit = "logs/sec"
)

var (
	// ErrUnexpectedUnit is returned when a Rust measurement is not in RustUnit.
	ErrUnexpectedUnit = errors.New("unexpected unit")
	// ErrUnexpectedResult is returned when a Rust result is neither a measurement nor "unavailable".
	ErrUnexpectedResult = errors.New("unexpected bench result")
	// ErrMalformed is returned when a line does not match its expected template.
	ErrMalformed = errors.New("malformed benchmark output")
)

// Measurement is one timed data point from the Rust runner.
type Measurement struct {
	Unit      string  `json:"unit"`
	Median    float64 `json:"median"`
	Deviation float64 `json:"deviation"`
}

// RustResult is a single `test bench_N_<name> ... <result>` line.
// A nil Value means the package does not support the benchmark.
type RustResult struct {
	Bench string       `json:"bench"`
	Async bool         `json:"is_async"`
	Value *Measurement `json:"value"`
}

// Supported reports whether the benchmark produced a measurement.
func (r RustResult) Supported() bool { return r.Value != nil }

// SyncBench is one sink line of a multi threaded C++ case.
type SyncBench struct {
	Bench   string  `json:"bench"`
	Elapsed float64 `json:"elapsed"`
	Logs    int64   `json:"logs"`
}

// SyncCase is one `Multi threaded: N threads, M messages` section.
type SyncCase struct {
	Threads  int64       `json:"threads"`
	Messages int64       `json:"messages"`
	Benches  []SyncBench `json:"benches"`
}

// AsyncBench is the averaged throughput of one queue overflow policy.
type AsyncBench struct {
	Bench string `json:"bench"`
	Logs  int64  `json:"logs"`
}

// AsyncResult is the parsed output of the C++ async harness. The header values
// are kept verbatim because they are only ever displayed.
type AsyncResult struct {
	Messages    string       `json:"messages"`
	Threads     string       `json:"threads"`
	Queue       string       `json:"queue"`
	QueueMemory string       `json:"queue_memory"`
	Benches     []AsyncBench `json:"benches"`
}

// QueueSize returns the total queue memory, the part of QueueMemory after " = ".
func (r AsyncResult) QueueSize() (string, error) {
	_, size, ok := strings.Cut(r.QueueMemory, " = ")
	if !ok {
		return "", fmt.Errorf("%w: queue memory %q has no total", ErrMalformed, r.QueueMemory)
	}
	return strings.TrimSpace(size), nil
}
