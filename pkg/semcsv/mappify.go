// Package semcsv provides header association: mappify and its inverse.
package semcsv

import (
	"iter"
	"strings"
)

// MappifyOptions configures the vector-to-mapping direction of header
// association.
type MappifyOptions struct {
	// Header supplies the column keys explicitly. When nil, the first row
	// of the input is consumed as the header and excluded from the output.
	Header []string

	// Keyify converts header entries to canonical key form (trimmed, one
	// leading ':' marker stripped, case preserved).
	// Default: true (via DefaultMappifyOptions).
	Keyify bool
}

// DefaultMappifyOptions returns the default mappify configuration.
func DefaultMappifyOptions() MappifyOptions {
	return MappifyOptions{
		Keyify: true,
	}
}

// Keyify converts a header entry to canonical key form: surrounding space
// trimmed and one leading ':' marker stripped. Case is preserved.
func Keyify(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, ":")
	return name
}

// Mappify converts vector rows into mapping rows by zipping header keys
// with cell values position-wise.
//
// Arity mismatches degrade silently: a row shorter than the header leaves
// the trailing keys absent from the record (not nil-filled), and a row
// longer than the header drops the extra cells. Round-tripping through
// Vectorize is therefore only an identity when arities match.
//
// The result is a lazy, one-pass, forward-only sequence; the header is
// derived once, before row-by-row processing, and never mutated. A source
// error is yielded once and ends the sequence.
func Mappify(opts MappifyOptions, rows iter.Seq2[[]string, error]) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		header := prepareHeader(opts.Header, opts.Keyify)
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			if header == nil {
				header = prepareHeader(row, opts.Keyify)
				continue
			}
			if !yield(zipRecord(header, row), nil) {
				return
			}
		}
	}
}

// prepareHeader copies and optionally keyifies a header row.
// Returns nil for a nil header so the first data row can be consumed.
func prepareHeader(header []string, keyify bool) []string {
	if header == nil {
		return nil
	}
	out := make([]string, len(header))
	for i, h := range header {
		if keyify {
			out[i] = Keyify(h)
		} else {
			out[i] = h
		}
	}
	return out
}

// zipRecord builds one mapping row from header keys and cell values.
func zipRecord(header, row []string) *Record {
	rec := NewRecord()
	n := len(header)
	if len(row) < n {
		n = len(row)
	}
	for i := 0; i < n; i++ {
		rec.Set(header[i], row[i])
	}
	return rec
}
