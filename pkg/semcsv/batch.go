// Package semcsv provides the batched writing pipeline.
package semcsv

import (
	"io"
	"iter"
	"os"
)

// DefaultBatchSize is the number of rows flushed to the sink per append.
const DefaultBatchSize = 20

// BatchOptions configures the batched writer.
// Start from DefaultBatchOptions.
type BatchOptions struct {
	// BatchSize is the maximum rows per sink append. Values below 1 fall
	// back to DefaultBatchSize.
	BatchSize int

	// Cast selects casters applied to each row before serialization,
	// typically stringifiers for typed columns. The zero spec skips
	// casting; every cell is stringified regardless.
	Cast CastSpec

	// CastOptions adjusts how Cast is applied.
	CastOptions CastOptions

	// Header is the ordered key sequence for vectorizing mapping rows, and
	// the header row to prepend. When nil, mapping rows derive it from the
	// first record's keys; positional rows have no header to prepend.
	Header []string

	// PrependHeader emits the header row before the first data row.
	// Default: true. The header is never re-emitted on later batches.
	PrependHeader bool

	// FormatHeader renders one header key for the emitted header row.
	// Default: identity.
	FormatHeader func(key string) string

	// Writer is the serialization configuration passed through to the
	// sink collaborator unchanged.
	Writer WriterOptions
}

// DefaultBatchOptions returns the default batch writer configuration.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		BatchSize:     DefaultBatchSize,
		PrependHeader: true,
		Writer:        DefaultWriterOptions(),
	}
}

// Batch partitions a sequence into ordered groups of at most size items;
// the final group may be shorter and an empty input produces no groups.
// Values below 1 fall back to DefaultBatchSize. An error from the source
// aborts grouping: pending items are dropped and the error is yielded.
func Batch[T any](size int, seq iter.Seq2[T, error]) iter.Seq2[[]T, error] {
	if size < 1 {
		size = DefaultBatchSize
	}
	return func(yield func([]T, error) bool) {
		batch := make([]T, 0, size)
		for v, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			batch = append(batch, v)
			if len(batch) == size {
				if !yield(batch, nil) {
					return
				}
				batch = make([]T, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch, nil)
		}
	}
}

// WriteRows serializes a row sequence to the sink in batches. Rows must be
// uniformly mapping form or uniformly positional form.
//
// Per row: mapping rows are cast and vectorized using the configured
// header (derived from the first record when absent); positional rows are
// cast in place. Every cell is then stringified, a final defensive cast,
// since the sink accepts only text. The header row, when prepended, counts
// toward the first batch like any other row and is never re-emitted.
//
// A sink failure aborts the remaining batches with a *WriteError; batches
// already appended stay on the sink. A cast or source error aborts with
// that error before the offending batch is appended.
func WriteRows(sink RowSink, opts BatchOptions, rows iter.Seq2[Row, error]) error {
	batchIdx := 0
	for batch, err := range Batch(opts.BatchSize, serializeRows(opts, rows)) {
		if err != nil {
			return err
		}
		if err := sink.Append(batch); err != nil {
			return &WriteError{Batch: batchIdx, Err: err}
		}
		batchIdx++
	}
	return nil
}

// WriteTo is WriteRows with a swiftcsv-backed sink writing to w. Invalid
// writer options fail before anything is written.
func WriteTo(w io.Writer, opts BatchOptions, rows iter.Seq2[Row, error]) error {
	if err := opts.Writer.Validate(); err != nil {
		return err
	}
	return WriteRows(NewWriterSink(w, opts.Writer), opts, rows)
}

// WriteFile creates path and writes the row sequence to it in batches. The
// file is closed on every exit path. A create failure surfaces as a
// *ResourceError. On a mid-write failure the file keeps whatever batches
// were already flushed; the caller should treat it as garbage.
func WriteFile(path string, opts BatchOptions, rows iter.Seq2[Row, error]) error {
	f, err := os.Create(path)
	if err != nil {
		return &ResourceError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()
	return WriteTo(f, opts, rows)
}

// serializeRows turns the row sequence into the string-row sequence handed
// to the partitioner: cast, vectorize, stringify, optional header first.
func serializeRows(opts BatchOptions, rows iter.Seq2[Row, error]) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		header := opts.Header
		started := false
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			var cells []string
			switch r := row.(type) {
			case *Record:
				rec := r
				if !opts.Cast.IsZero() {
					rec, err = opts.Cast.CastRecord(rec, opts.CastOptions)
					if err != nil {
						yield(nil, err)
						return
					}
				}
				if header == nil {
					header = rec.Keys()
				}
				cells = unzipRecord(header, rec)
			case Vector:
				vec := r
				if !opts.Cast.IsZero() {
					vec, err = opts.Cast.CastVector(vec, opts.CastOptions)
					if err != nil {
						yield(nil, err)
						return
					}
				}
				cells = stringifyVector(vec)
			}
			if !started {
				started = true
				if opts.PrependHeader && header != nil {
					if !yield(formatHeaderRow(header, opts.FormatHeader), nil) {
						return
					}
				}
			}
			if !yield(cells, nil) {
				return
			}
		}
	}
}

// stringifyVector serializes every cell of a positional row.
func stringifyVector(v Vector) []string {
	out := make([]string, len(v))
	for i, cell := range v {
		out[i] = formatCell(cell)
	}
	return out
}

// RecordRows adapts realized mapping rows to the writer's input sequence.
func RecordRows(recs []*Record) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, rec := range recs {
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// VectorRows adapts realized string rows to the writer's input sequence.
func VectorRows(rows [][]string) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for _, row := range rows {
			if !yield(VectorOf(row), nil) {
				return
			}
		}
	}
}
