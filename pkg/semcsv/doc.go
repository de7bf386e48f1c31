// Package semcsv provides composable transformations between raw CSV rows
// and semantically meaningful records.
//
// Generic CSV parsers produce sequences of string slices. Application code
// wants named, typed, filtered records. This package bridges the two with a
// small set of row-processing stages that compose into one pass over the
// data:
//
//   - comment filtering (Comment rows and blank rows are dropped)
//   - header association (Mappify / Vectorize, in both directions)
//   - per-column type casting with configurable error recovery
//   - batched, bounded-memory output writing
//
// # Sequences
//
// Stages consume and produce iter.Seq2 sequences carrying a row and an
// error. Sequences are lazy, one-pass, and forward-only: no stage buffers
// the input, and abandoning a sequence early (breaking out of the range
// loop) is always safe. The only exception is the batch writer, whose
// already-issued sink appends are permanent.
//
// # Rows
//
// A row is either positional (Vector, an ordered slice of cells) or mapping
// form (*Record, an insertion-ordered mapping from column key to value).
// Mappify converts the former to the latter using a header; Vectorize is its
// inverse.
//
// # Typical read path
//
//	opts := semcsv.DefaultOptions()
//	opts.Cast = semcsv.ByName(map[string]semcsv.Caster{
//		"age": semcsv.IntCaster{},
//	})
//	rows, err := semcsv.ReadFile("people.csv", opts)
//
// # Typical write path
//
//	err := semcsv.WriteFile("out.csv", semcsv.DefaultBatchOptions(),
//		semcsv.RecordRows(records))
//
// Grammar-level concerns (quoting, delimiters, escaping) are delegated to
// the swiftcsv reader and writer; this package never parses CSV text
// itself.
package semcsv
