// Package semcsv provides the mapping-to-vector direction of header
// association.
package semcsv

import "iter"

// VectorizeOptions configures the mapping-to-vector direction of header
// association.
type VectorizeOptions struct {
	// Header is the ordered key sequence to emit. When nil, the keys of the
	// first record, in that record's insertion order, are used.
	Header []string

	// PrependHeader emits a formatted header row as the first item of the
	// output. Default: true (via DefaultVectorizeOptions).
	PrependHeader bool

	// FormatHeader renders one header key for the emitted header row.
	// Default: identity.
	FormatHeader func(key string) string
}

// DefaultVectorizeOptions returns the default vectorize configuration.
func DefaultVectorizeOptions() VectorizeOptions {
	return VectorizeOptions{
		PrependHeader: true,
	}
}

// Vectorize converts mapping rows into vector rows by looking up each
// header key in the record. Missing keys yield empty cells, not errors;
// record keys outside the header are dropped. Cell values are serialized
// to strings.
//
// The header is derived once, from the options or the first record, and
// held read-only for the rest of the sequence. The result is lazy,
// one-pass and forward-only. A source error is yielded once and ends the
// sequence.
func Vectorize(opts VectorizeOptions, rows iter.Seq2[*Record, error]) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		header := opts.Header
		emittedHeader := false
		for rec, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			if header == nil {
				header = rec.Keys()
			}
			if !emittedHeader {
				emittedHeader = true
				if opts.PrependHeader {
					if !yield(formatHeaderRow(header, opts.FormatHeader), nil) {
						return
					}
				}
			}
			if !yield(unzipRecord(header, rec), nil) {
				return
			}
		}
	}
}

// formatHeaderRow renders the header row, applying the configured
// formatter to each key.
func formatHeaderRow(header []string, format func(string) string) []string {
	out := make([]string, len(header))
	for i, key := range header {
		if format != nil {
			out[i] = format(key)
		} else {
			out[i] = key
		}
	}
	return out
}

// unzipRecord builds one vector row by looking up each header key.
func unzipRecord(header []string, rec *Record) []string {
	out := make([]string, len(header))
	for i, key := range header {
		if v, ok := rec.Get(key); ok {
			out[i] = formatCell(v)
		}
	}
	return out
}
