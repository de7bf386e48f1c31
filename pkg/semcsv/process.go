// Package semcsv provides the composed row-processing pipeline.
package semcsv

import (
	"io"
	"iter"
	"os"
)

// Options configures one pass of the read pipeline. Stages run in fixed
// order: comment filter, then header association, then casting. A stage
// whose flag is off, or whose required input is absent (an empty Cast),
// is skipped entirely.
//
// Start from DefaultOptions; the zero value disables every stage.
type Options struct {
	// RemoveComments drops blank and comment rows before header
	// association. Default: true.
	RemoveComments bool

	// Comment configures comment row detection.
	Comment CommentOptions

	// Mappify converts vector rows to mapping rows. Default: true.
	Mappify bool

	// Keyify converts header entries to canonical key form during mappify.
	// Default: true.
	Keyify bool

	// Header supplies explicit column keys for mappify. When nil, the
	// first row is consumed as the header.
	Header []string

	// Cast selects the casters to apply per column. The zero spec skips
	// the casting stage.
	Cast CastSpec

	// CastOnly restricts casting of mapping rows to these keys.
	CastOnly []string

	// CastOnlyIndex restricts casting of positional rows to these indices.
	CastOnlyIndex []int

	// OnCastError recovers failed casts per column; nil propagates the
	// first *CastError.
	OnCastError ErrorHandler

	// Reader configures the parse collaborator for ReadAll and ReadFile.
	Reader ReaderOptions
}

// DefaultOptions returns the default pipeline configuration: comments
// removed, rows mappified with keyified headers, no casting.
func DefaultOptions() Options {
	return Options{
		RemoveComments: true,
		Comment:        DefaultCommentOptions(),
		Mappify:        true,
		Keyify:         true,
		Reader:         DefaultReaderOptions(),
	}
}

// Process composes the configured stages into one lazy pass over the input
// rows. With Mappify on, the output rows are *Record; with it off they are
// Vector. The sequence is one-pass and forward-only; a cast or source
// error is yielded once and ends the sequence.
func Process(opts Options, rows iter.Seq2[[]string, error]) iter.Seq2[Row, error] {
	if opts.RemoveComments {
		rows = RemoveComments(opts.Comment, rows)
	}
	castOpts := CastOptions{
		Only:      opts.CastOnly,
		OnlyIndex: opts.CastOnlyIndex,
		OnError:   opts.OnCastError,
	}
	if opts.Mappify {
		return processRecords(opts, castOpts, rows)
	}
	return processVectors(opts, castOpts, rows)
}

func processRecords(opts Options, castOpts CastOptions, rows iter.Seq2[[]string, error]) iter.Seq2[Row, error] {
	recs := Mappify(MappifyOptions{Header: opts.Header, Keyify: opts.Keyify}, rows)
	return func(yield func(Row, error) bool) {
		for rec, err := range recs {
			if err != nil {
				yield(nil, err)
				return
			}
			if !opts.Cast.IsZero() {
				rec, err = opts.Cast.CastRecord(rec, castOpts)
				if err != nil {
					yield(nil, err)
					return
				}
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func processVectors(opts Options, castOpts CastOptions, rows iter.Seq2[[]string, error]) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		for row, err := range rows {
			if err != nil {
				yield(nil, err)
				return
			}
			vec := VectorOf(row)
			if !opts.Cast.IsZero() {
				vec, err = opts.Cast.CastVector(vec, castOpts)
				if err != nil {
					yield(nil, err)
					return
				}
			}
			if !yield(vec, nil) {
				return
			}
		}
	}
}

// ReadAll parses CSV text from r and runs it through the configured
// pipeline, returning the fully realized rows. The first error aborts and
// is returned.
func ReadAll(r io.Reader, opts Options) ([]Row, error) {
	var out []Row
	for row, err := range Process(opts, ParseSeq(r, opts.Reader)) {
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

// ReadFile opens path, parses and processes its contents, and returns the
// fully realized rows. The file is closed on every exit path; results are
// realized because the file must close before the caller continues. An
// open failure surfaces as a *ResourceError.
func ReadFile(path string, opts Options) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ResourceError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()
	return ReadAll(f, opts)
}
