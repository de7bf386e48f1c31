package semcsv_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metasoarous/cljsv/pkg/semcsv"
)

func TestRemoveCommentsDefault(t *testing.T) {
	rows := [][]string{
		{"#c"},
		{"a", "b"},
		{},
	}

	got := collect(t, semcsv.RemoveComments(semcsv.DefaultCommentOptions(), seqOf(rows)))
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestRemoveCommentsPreservesOrder(t *testing.T) {
	rows := [][]string{
		{"one"},
		{"# skipped"},
		{""},
		{"two"},
		{"three"},
	}

	got := collect(t, semcsv.RemoveComments(semcsv.DefaultCommentOptions(), seqOf(rows)))
	assert.Equal(t, [][]string{{"one"}, {"two"}, {"three"}}, got)
}

func TestRemoveCommentsChar(t *testing.T) {
	rows := [][]string{
		{";note"},
		{"#kept, char takes precedence"},
		{"data"},
	}

	got := collect(t, semcsv.RemoveComments(semcsv.CommentOptions{Char: ';'}, seqOf(rows)))
	assert.Equal(t, [][]string{{"#kept, char takes precedence"}, {"data"}}, got)
}

func TestRemoveCommentsPattern(t *testing.T) {
	rows := [][]string{
		{"// slashes"},
		{"data"},
	}

	opts := semcsv.CommentOptions{Pattern: regexp.MustCompile(`^//`)}
	got := collect(t, semcsv.RemoveComments(opts, seqOf(rows)))
	assert.Equal(t, [][]string{{"data"}}, got)
}

func TestRemoveCommentsPassesErrors(t *testing.T) {
	boom := errors.New("boom")
	seq := semcsv.RemoveComments(semcsv.DefaultCommentOptions(), seqThenError([][]string{{"a"}}, boom))

	got, err := collectErr(seq)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, [][]string{{"a"}}, got)
}

func TestRemoveCommentsErrorEndsSequence(t *testing.T) {
	boom := errors.New("boom")
	src := seqErrorBetween([][]string{{"a"}}, boom, [][]string{{"late"}})

	got, errs := drainPastErrors(semcsv.RemoveComments(semcsv.DefaultCommentOptions(), src))
	assert.Equal(t, [][]string{{"a"}}, got)
	assert.Equal(t, 1, errs)
}
