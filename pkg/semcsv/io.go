// Package semcsv adapts the external CSV grammar collaborators.
package semcsv

import (
	"errors"
	"io"
	"iter"

	"github.com/oleg578/swiftcsv"
)

// ReaderOptions configures the parse collaborator. Fields pass through to
// swiftcsv.Reader unchanged.
type ReaderOptions struct {
	// Comma is the field delimiter. Default: ','
	Comma byte

	// Quote is the quote character. Default: '"'
	Quote byte

	// FieldsPerRecord, when positive, requires each record to contain
	// exactly this many fields; a mismatch is a parse error. Zero lets
	// ragged rows through, so comment lines and short rows reach the
	// downstream stages and their documented arity handling.
	FieldsPerRecord int
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Comma: ',',
		Quote: '"',
	}
}

// Validate checks if the reader options are valid.
func (o ReaderOptions) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	if o.Quote == '\n' || o.Quote == '\r' {
		return &OptionsError{Field: "Quote", Message: "invalid quote character"}
	}
	if o.Quote != 0 && o.Quote == o.Comma {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	return nil
}

// WriterOptions configures the serialize collaborator. Fields pass through
// to swiftcsv.Writer unchanged and are otherwise opaque to the batch
// writer.
type WriterOptions struct {
	// Comma is the field delimiter. Default: ','
	Comma byte

	// Quote is the quote character. Default: '"'
	Quote byte

	// UseCRLF terminates records with \r\n instead of \n.
	UseCRLF bool

	// AlwaysQuote forces quoting for all fields, including empty ones.
	AlwaysQuote bool
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Comma: ',',
		Quote: '"',
	}
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if !validDelim(o.Comma) {
		return &OptionsError{Field: "Comma", Message: "invalid delimiter"}
	}
	if o.Quote != 0 && o.Quote == o.Comma {
		return &OptionsError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	return nil
}

// validDelim reports whether b is a valid field delimiter. Zero is valid:
// it means "use the default".
func validDelim(b byte) bool {
	return b != '"' && b != '\r' && b != '\n'
}

// ParseSeq parses CSV text from r into a lazy sequence of vector rows.
// Rows are produced one at a time; abandoning the sequence early stops
// parsing. With FieldsPerRecord zero, rows of uneven width are yielded
// as-is. Invalid options or a parse error are yielded once and end the
// sequence.
func ParseSeq(r io.Reader, opts ReaderOptions) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		if err := opts.Validate(); err != nil {
			yield(nil, err)
			return
		}
		rd := swiftcsv.NewReader(r)
		if opts.Comma != 0 {
			rd.Comma = opts.Comma
		}
		if opts.Quote != 0 {
			rd.Quote = opts.Quote
		}
		rd.FieldsPerRecord = opts.FieldsPerRecord
		for {
			row, err := rd.Read()
			if err == io.EOF {
				return
			}
			if err != nil {
				// The reader hands the record back alongside a field
				// count mismatch. Unless the caller asked for a fixed
				// width, ragged rows pass through to the filtering and
				// association stages.
				if opts.FieldsPerRecord == 0 && errors.Is(err, swiftcsv.ErrorFieldCount) {
					if !yield(row, nil) {
						return
					}
					continue
				}
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// RowSink is the serialize-and-append collaborator contract of the batch
// writer. Append serializes one batch of string rows to the underlying
// sink; successive calls append sequentially.
type RowSink interface {
	Append(rows [][]string) error
}

// writerSink adapts swiftcsv.Writer to the RowSink contract. The writer is
// created once, so output state threads across batches.
type writerSink struct {
	w *swiftcsv.Writer
}

// NewWriterSink returns a RowSink that serializes rows to w using the
// swiftcsv writer configured by opts.
func NewWriterSink(w io.Writer, opts WriterOptions) RowSink {
	sw := swiftcsv.NewWriter(w)
	if opts.Comma != 0 {
		sw.Comma = opts.Comma
	}
	if opts.Quote != 0 {
		sw.Quote = opts.Quote
	}
	sw.UseCRLF = opts.UseCRLF
	sw.AlwaysQuote = opts.AlwaysQuote
	return &writerSink{w: sw}
}

// Append implements RowSink. Each batch is flushed so that output written
// before a later failure is on the sink, not in a buffer.
func (s *writerSink) Append(rows [][]string) error {
	if err := s.w.WriteAll(rows); err != nil {
		return err
	}
	return s.w.Flush()
}
