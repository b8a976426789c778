// internal/parser/cpp.go
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	cppInfoPrefix     = "[info] "
	cppInfoBlank      = "[info]"
	cppSectionRule    = "*****"
	cppSyncCaseMarker = "[info] Multi threaded: "
	// The async header ends with a dashed rule followed by a blank info line
	// and the first starred rule of the policy sections.
	cppAsyncHeaderEnd    = "-\n[info]\n[info] *"
	cppAsyncPolicyMarker = "Queue Overflow Policy: "
)

var (
	// 4 threads, 250,000 messages
	cppCaseRegex = regexp.MustCompile(`^(.+) threads, (.+) messages$`)
	// basic_mt                       Elapsed: 0.13 secs        1,913,186/sec
	cppSyncBenchRegex = regexp.MustCompile(`^(.+?)\s+Elapsed: (\S+) secs\s+(\S+)/sec$`)
	// Elapsed: 1.55 secs	 645,108/sec
	cppAsyncIterRegex = regexp.MustCompile(`Elapsed: (\S+) secs\s+(\S+)/sec`)
)

// asyncHeaderKeys are the configuration lines printed before the policy sections.
var asyncHeaderKeys = []string{"Messages", "Threads", "Queue", "Queue memory"}

// ParseCppSync parses the multi threaded sections of the C++ sync harness.
// Anything before the first section is ignored.
func ParseCppSync(raw string) ([]SyncCase, error) {
	sections := strings.Split(raw, cppSyncCaseMarker)[1:]
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no %q sections", ErrMalformed, strings.TrimSpace(cppSyncCaseMarker))
	}

	cases := make([]SyncCase, 0, len(sections))
	for i, section := range sections {
		c, err := parseSyncCase(section)
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", i+1, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func parseSyncCase(section string) (SyncCase, error) {
	lines := cppLines(section)
	if len(lines) == 0 {
		return SyncCase{}, fmt.Errorf("%w: empty case", ErrMalformed)
	}

	header := cppCaseRegex.FindStringSubmatch(lines[0])
	if header == nil {
		return SyncCase{}, fmt.Errorf("%w: case header %q", ErrMalformed, lines[0])
	}
	threads, err := parseCount(header[1])
	if err != nil {
		return SyncCase{}, err
	}
	messages, err := parseCount(header[2])
	if err != nil {
		return SyncCase{}, err
	}

	c := SyncCase{Threads: threads, Messages: messages}
	for _, line := range lines[1:] {
		m := cppSyncBenchRegex.FindStringSubmatch(line)
		if m == nil {
			return SyncCase{}, fmt.Errorf("%w: bench line %q", ErrMalformed, line)
		}
		elapsed, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return SyncCase{}, fmt.Errorf("%w: elapsed %q", ErrMalformed, m[2])
		}
		logs, err := parseCount(m[3])
		if err != nil {
			return SyncCase{}, err
		}
		c.Benches = append(c.Benches, SyncBench{
			Bench:   strings.TrimSpace(m[1]),
			Elapsed: elapsed,
			Logs:    logs,
		})
	}
	return c, nil
}

// ParseCppAsync parses the output of the C++ async harness: a configuration
// header followed by one section per queue overflow policy, each holding
// several timed iterations that are averaged.
func ParseCppAsync(raw string) (AsyncResult, error) {
	parts := strings.Split(raw, cppAsyncHeaderEnd)
	if len(parts) != 2 {
		return AsyncResult{}, fmt.Errorf("%w: expected one header separator, found %d", ErrMalformed, len(parts)-1)
	}

	header, err := parseAsyncHeader(parts[0])
	if err != nil {
		return AsyncResult{}, err
	}
	res := AsyncResult{
		Messages:    header["Messages"],
		Threads:     header["Threads"],
		Queue:       header["Queue"],
		QueueMemory: header["Queue memory"],
	}

	sections := strings.Split(parts[1], cppAsyncPolicyMarker)[1:]
	if len(sections) == 0 {
		return AsyncResult{}, fmt.Errorf("%w: no %q sections", ErrMalformed, strings.TrimSpace(cppAsyncPolicyMarker))
	}
	for _, section := range sections {
		bench, err := parseAsyncPolicy(section)
		if err != nil {
			return AsyncResult{}, err
		}
		res.Benches = append(res.Benches, bench)
	}
	return res, nil
}

func parseAsyncHeader(text string) (map[string]string, error) {
	values := make(map[string]string, len(asyncHeaderKeys))
	for _, line := range cppLines(text) {
		if strings.Trim(line, "-") == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: header line %q", ErrMalformed, line)
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	for _, key := range asyncHeaderKeys {
		if _, ok := values[key]; !ok {
			return nil, fmt.Errorf("%w: header is missing %q", ErrMalformed, key)
		}
	}
	return values, nil
}

func parseAsyncPolicy(section string) (AsyncBench, error) {
	lines := cppLines(section)
	if len(lines) == 0 {
		return AsyncBench{}, fmt.Errorf("%w: empty policy section", ErrMalformed)
	}
	name := lines[0]
	if len(lines) == 1 {
		return AsyncBench{}, fmt.Errorf("%w: policy %q has no iterations", ErrMalformed, name)
	}

	var sum int64
	for _, line := range lines[1:] {
		m := cppAsyncIterRegex.FindStringSubmatch(line)
		if m == nil {
			return AsyncBench{}, fmt.Errorf("%w: policy %q iteration %q", ErrMalformed, name, line)
		}
		logs, err := parseCount(m[2])
		if err != nil {
			return AsyncBench{}, err
		}
		sum += logs
	}
	iterations := len(lines) - 1
	return AsyncBench{Bench: name, Logs: int64(float64(sum) / float64(iterations))}, nil
}

// cppLines strips info prefixes and returns the meaningful lines of a block,
// dropping starred rules and blank info lines.
func cppLines(block string) []string {
	block = strings.ReplaceAll(block, cppInfoPrefix, "")
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line == cppInfoBlank || strings.Contains(line, cppSectionRule) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseCount parses an integer printed with thousands separators.
func parseCount(text string) (int64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	n, err := strconv.ParseInt(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: count %q", ErrMalformed, text)
	}
	return n, nil
}
