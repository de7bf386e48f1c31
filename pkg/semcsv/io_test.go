package semcsv_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metasoarous/cljsv/pkg/semcsv"
)

func TestParseSeq(t *testing.T) {
	input := "a,b\n1,\"x, y\"\n"

	got := collect(t, semcsv.ParseSeq(strings.NewReader(input), semcsv.DefaultReaderOptions()))
	assert.Equal(t, [][]string{
		{"a", "b"},
		{"1", "x, y"},
	}, got)
}

func TestParseSeqCustomDelimiter(t *testing.T) {
	opts := semcsv.DefaultReaderOptions()
	opts.Comma = ';'

	got := collect(t, semcsv.ParseSeq(strings.NewReader("a;b\n1;2\n"), opts))
	assert.Equal(t, [][]string{
		{"a", "b"},
		{"1", "2"},
	}, got)
}

func TestParseSeqRaggedRows(t *testing.T) {
	input := "name,age,member\n# roster snapshot\nAlice,30,yes\n"

	got := collect(t, semcsv.ParseSeq(strings.NewReader(input), semcsv.DefaultReaderOptions()))
	assert.Equal(t, [][]string{
		{"name", "age", "member"},
		{"# roster snapshot"},
		{"Alice", "30", "yes"},
	}, got)
}

func TestParseSeqFixedWidthEnforced(t *testing.T) {
	opts := semcsv.DefaultReaderOptions()
	opts.FieldsPerRecord = 2

	got, err := collectErr(semcsv.ParseSeq(strings.NewReader("a,b\n1\n"), opts))
	require.Error(t, err)
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestParseSeqEmptyInput(t *testing.T) {
	got := collect(t, semcsv.ParseSeq(strings.NewReader(""), semcsv.DefaultReaderOptions()))
	assert.Empty(t, got)
}

func TestParseSeqEarlyBreak(t *testing.T) {
	input := "1\n2\n3\n"
	var got [][]string
	for row, err := range semcsv.ParseSeq(strings.NewReader(input), semcsv.DefaultReaderOptions()) {
		require.NoError(t, err)
		got = append(got, row)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, [][]string{{"1"}, {"2"}}, got)
}

func TestReaderOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    semcsv.ReaderOptions
		field   string
		wantErr bool
	}{
		{name: "defaults", opts: semcsv.DefaultReaderOptions()},
		{name: "tab delimiter", opts: semcsv.ReaderOptions{Comma: '\t', Quote: '"'}},
		{name: "zero values mean defaults", opts: semcsv.ReaderOptions{}},
		{name: "newline delimiter", opts: semcsv.ReaderOptions{Comma: '\n'}, field: "Comma", wantErr: true},
		{name: "quote as delimiter", opts: semcsv.ReaderOptions{Comma: '"'}, field: "Comma", wantErr: true},
		{name: "newline quote", opts: semcsv.ReaderOptions{Comma: ',', Quote: '\n'}, field: "Quote", wantErr: true},
		{name: "quote equals delimiter", opts: semcsv.ReaderOptions{Comma: ';', Quote: ';'}, field: "Quote", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var optsErr *semcsv.OptionsError
			require.True(t, errors.As(err, &optsErr))
			assert.Equal(t, tt.field, optsErr.Field)
		})
	}
}

func TestWriterOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    semcsv.WriterOptions
		wantErr bool
	}{
		{name: "defaults", opts: semcsv.DefaultWriterOptions()},
		{name: "crlf and force quote", opts: semcsv.WriterOptions{Comma: ',', Quote: '"', UseCRLF: true, AlwaysQuote: true}},
		{name: "zero values mean defaults", opts: semcsv.WriterOptions{}},
		{name: "newline delimiter", opts: semcsv.WriterOptions{Comma: '\n'}, wantErr: true},
		{name: "quote equals delimiter", opts: semcsv.WriterOptions{Comma: '|', Quote: '|'}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriterSinkAppendsSequentially(t *testing.T) {
	var sb strings.Builder
	sink := semcsv.NewWriterSink(&sb, semcsv.DefaultWriterOptions())

	require.NoError(t, sink.Append([][]string{{"a", "b"}}))
	require.NoError(t, sink.Append([][]string{{"1", "2"}, {"3", "4"}}))

	assert.Equal(t, "a,b\n1,2\n3,4\n", sb.String())
}

func TestWriterSinkAlwaysQuote(t *testing.T) {
	var sb strings.Builder
	opts := semcsv.DefaultWriterOptions()
	opts.AlwaysQuote = true
	sink := semcsv.NewWriterSink(&sb, opts)

	require.NoError(t, sink.Append([][]string{{"a", ""}}))
	assert.Equal(t, "\"a\",\"\"\n", sb.String())
}
