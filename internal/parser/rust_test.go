package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rustOutput = `
test bench_1_file                   ... bench:         216 ns/iter (+/- 6)
test bench_2_file_async             ... bench:       1,198.58 ns/iter (+/- 1.96)
test bench_3_rotating_file_size     ... bench:         222 ns/iter (+/- 12)
test bench_4_rotating_file_size_async ... unavailable
test bench_5_level_off              ... bench:           2 ns/iter (+/- 0)
`

func TestParseRust(t *testing.T) {
	results, err := ParseRust(rustOutput)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, RustResult{Bench: "file", Value: &Measurement{Unit: RustUnit, Median: 216, Deviation: 6}}, results[0])
	assert.Equal(t, RustResult{Bench: "file_async", Async: true, Value: &Measurement{Unit: RustUnit, Median: 1198.58, Deviation: 1.96}}, results[1])
	assert.Equal(t, "rotating_file_size", results[2].Bench)
	assert.False(t, results[2].Async)

	assert.Equal(t, "rotating_file_size", results[3].Bench)
	assert.True(t, results[3].Async)
	assert.False(t, results[3].Supported())
	assert.Nil(t, results[3].Value)

	assert.Equal(t, "level_off", results[4].Bench)
	assert.InDelta(t, 2.0, results[4].Value.Median, 1e-9)
}

func TestParseRustEmpty(t *testing.T) {
	results, err := ParseRust("\n  \n")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParseRustErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"unexpected unit", "test bench_1_file ... bench: 216 ms/iter (+/- 6)", ErrUnexpectedUnit},
		{"unexpected result", "test bench_1_file ... ignored", ErrUnexpectedResult},
		{"missing separator", "test bench_1_file bench: 216 ns/iter (+/- 6)", ErrMalformed},
		{"missing name", "test bench_1_ ... bench: 216 ns/iter (+/- 6)", ErrMalformed},
		{"missing deviation", "test bench_1_file ... bench: 216 ns/iter", ErrMalformed},
		{"non numeric median", "test bench_1_file ... bench: fast ns/iter (+/- 6)", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ParseRust(tt.raw)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, results)
		})
	}
}

func TestParseRustReportsLine(t *testing.T) {
	raw := "test bench_1_file ... bench: 1 ns/iter (+/- 0)\ntest bench_2_x ... oops"
	_, err := ParseRust(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), `"oops"`)
}
