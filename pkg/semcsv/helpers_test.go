package semcsv_test

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

// seqOf adapts realized vector rows to the stage input sequence.
func seqOf(rows [][]string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// seqThenError yields the given rows and then one error.
func seqThenError(rows [][]string, err error) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
		yield(nil, err)
	}
}

// seqErrorBetween yields the before rows, one error, then the after rows,
// for asserting that a stage stops at the error.
func seqErrorBetween(before [][]string, err error, after [][]string) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for _, row := range before {
			if !yield(row, nil) {
				return
			}
		}
		if !yield(nil, err) {
			return
		}
		for _, row := range after {
			if !yield(row, nil) {
				return
			}
		}
	}
}

// drainPastErrors keeps consuming after errors, returning every value and
// the number of errors seen. A well-behaved stage never produces a value
// after its first error.
func drainPastErrors[T any](seq iter.Seq2[T, error]) ([]T, int) {
	var out []T
	errs := 0
	for v, err := range seq {
		if err != nil {
			errs++
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

// collect drains a sequence, failing the test on any error.
func collect[T any](t *testing.T, seq iter.Seq2[T, error]) []T {
	t.Helper()
	var out []T
	for v, err := range seq {
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

// collectErr drains a sequence and returns the first error, with the
// values seen before it.
func collectErr[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}
