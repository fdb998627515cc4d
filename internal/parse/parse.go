// Package parse extracts precedence edges from instruction lines of the
// form "Step A must be finished before step B can begin.". It is the
// only layer that knows the text format; the scheduler core consumes
// already-validated edge pairs.
package parse

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/tannerv/schedsim/internal/scheduler"
)

// ErrMalformedEdge is returned when a non-blank input line does not
// match the instruction grammar. Parsing stops at the first bad line;
// there is no partial recovery.
var ErrMalformedEdge = errors.New("malformed edge line")

var edgeRe = regexp.MustCompile(`^Step ([A-Z]) must be finished before step ([A-Z]) can begin\.$`)

// Edges reads instruction lines from r and returns the extracted edges.
// Blank lines are skipped; any other non-matching line is fatal.
func Edges(r io.Reader) ([]scheduler.Edge, error) {
	var edges []scheduler.Edge

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		m := edgeRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrMalformedEdge, line)
		}
		edges = append(edges, scheduler.Edge{Source: m[1], Target: m[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return edges, nil
}

// EdgesFromString is a convenience wrapper over Edges for in-memory input.
func EdgesFromString(s string) ([]scheduler.Edge, error) {
	return Edges(strings.NewReader(s))
}
