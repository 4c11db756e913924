// Package seq has test helpers for asserting on the order of lines in
// results and logs.
package seq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertContainsSequence(t *testing.T, lines []string, seq ...string) {
	t.Helper()
	assert.NoError(t, ContainsSequence(lines, seq...))
}

func AssertStringContainsSequence(t *testing.T, str string, seq ...string) {
	t.Helper()
	assert.NoError(t, ContainsSequence(strings.Split(str, "\n"), seq...))
}

func AssertContainsRun(t *testing.T, lines []string, run ...string) {
	t.Helper()
	assert.NoError(t, ContainsRun(lines, run...))
}

// ContainsSequence reports an error unless every item of seq appears in
// lines, in order, possibly with other lines in between.
func ContainsSequence(lines []string, seq ...string) error {
	i := 0
	for seqIndex, expect := range seq {
		for ; i < len(lines) && lines[i] != expect; i++ {
		}
		if i == len(lines) {
			return mismatch("Not found in sequence.", seqIndex, seq, lines)
		}
		i++
	}
	return nil
}

// ContainsRun reports an error unless run appears in lines contiguously,
// with nothing in between.
func ContainsRun(lines []string, run ...string) error {
	if IndexOfRun(lines, run...) == -1 {
		return mismatch("Run not found.", 0, run, lines)
	}
	return nil
}

// IndexOfRun returns the index of the first contiguous occurrence of run in
// lines, or -1.
func IndexOfRun(lines []string, run ...string) int {
outer:
	for start := 0; start+len(run) <= len(lines); start++ {
		for j, expect := range run {
			if lines[start+j] != expect {
				continue outer
			}
		}
		return start
	}
	return -1
}

func mismatch(headline string, index int, seq, lines []string) error {
	return fmt.Errorf(strings.Join([]string{
		headline,
		"Item %d: '%s'",
		"",
		"Expected:",
		"%s",
		"",
		"Actual:",
		"%s",
	}, "\n"),
		index+1, seq[index],
		strings.Join(seq, "\n"),
		strings.Join(lines, "\n"),
	)
}
