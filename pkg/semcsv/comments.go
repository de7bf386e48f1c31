// Package semcsv provides comment and blank row filtering.
package semcsv

import (
	"iter"
	"regexp"
)

// defaultCommentPattern matches rows whose first cell starts with '#'.
var defaultCommentPattern = regexp.MustCompile(`^#`)

// CommentOptions configures comment row detection.
type CommentOptions struct {
	// Pattern matches comment rows against their first cell.
	// Default: ^#
	Pattern *regexp.Regexp

	// Char, if not 0, marks comment rows by their first cell's leading
	// character and takes precedence over Pattern.
	Char byte
}

// DefaultCommentOptions returns the default comment configuration.
func DefaultCommentOptions() CommentOptions {
	return CommentOptions{
		Pattern: defaultCommentPattern,
	}
}

// isComment reports whether a first cell marks a comment row.
func (o CommentOptions) isComment(cell string) bool {
	if o.Char != 0 {
		return len(cell) > 0 && cell[0] == o.Char
	}
	pattern := o.Pattern
	if pattern == nil {
		pattern = defaultCommentPattern
	}
	return pattern.MatchString(cell)
}

// RemoveComments drops rows that are blank or whose first cell matches the
// comment predicate, preserving the relative order of the rest. A row with
// no cells or an empty first cell counts as blank.
//
// The filter inspects positional cell 0, so it must run before Mappify;
// once rows are in mapping form the first position is meaningless.
//
// The result is a lazy, one-pass, forward-only sequence. A source error is
// yielded once and ends the sequence.
func RemoveComments(opts CommentOptions, rows iter.Seq2[[]string, error]) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			if len(row) == 0 || row[0] == "" {
				continue
			}
			if opts.isComment(row[0]) {
				continue
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}
