// Package semcsv provides struct mapping for vector rows.
package semcsv

import (
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
)

// Structify converts vector rows into struct values of type T, matching
// header keys to struct fields.
//
// Matching rules per field:
//   - `csv:"name"` tag name, case-insensitive
//   - otherwise the field name, case-insensitive
//   - `csv:"-"` and unexported fields are never set
//
// Columns with no matching field are ignored; fields with no matching
// column keep their zero value. Supported field types: string, ints,
// uints, floats, bool, and pointers to those (an empty cell leaves a nil
// pointer). An empty cell leaves any field at its zero value.
//
// Header handling follows Mappify: opts.Header when set, otherwise the
// first row is consumed. A value that fails to parse surfaces as a
// *CastError and ends the sequence.
func Structify[T any](opts MappifyOptions, rows iter.Seq2[[]string, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		t := reflect.TypeOf(zero)
		if t == nil || t.Kind() != reflect.Struct {
			yield(zero, fmt.Errorf("semcsv: Structify expects a struct type parameter, got %v", t))
			return
		}
		fields := structFieldIndex(t)
		header := prepareHeader(opts.Header, opts.Keyify)
		var bound []int
		for row, err := range rows {
			if err != nil {
				yield(zero, err)
				return
			}
			if header == nil {
				header = prepareHeader(row, opts.Keyify)
				continue
			}
			if bound == nil {
				bound = bindColumns(header, fields)
			}
			sv := reflect.New(t).Elem()
			n := min(len(row), len(header))
			for i := 0; i < n; i++ {
				fi := bound[i]
				if fi < 0 {
					continue
				}
				if err := setField(sv.Field(fi), row[i]); err != nil {
					yield(zero, &CastError{Column: header[i], Value: row[i], Err: err})
					return
				}
			}
			if !yield(sv.Interface().(T), nil) {
				return
			}
		}
	}
}

// structFieldIndex maps lowercased column names to field indices, tag
// names taking precedence over field names.
func structFieldIndex(t reflect.Type) map[string]int {
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("csv")
		if tag == "-" {
			continue
		}
		name := f.Name
		if tag != "" {
			if comma := strings.IndexByte(tag, ','); comma >= 0 {
				tag = tag[:comma]
			}
			if tag != "" {
				name = tag
			}
		}
		key := strings.ToLower(name)
		if _, taken := fields[key]; !taken {
			fields[key] = i
		}
	}
	return fields
}

// bindColumns resolves each header position to a field index, -1 for
// unmatched columns.
func bindColumns(header []string, fields map[string]int) []int {
	bound := make([]int, len(header))
	for i, key := range header {
		if fi, ok := fields[strings.ToLower(key)]; ok {
			bound[i] = fi
		} else {
			bound[i] = -1
		}
	}
	return bound
}

// setField parses value into a struct field. Empty values leave the field
// at its zero value.
func setField(field reflect.Value, value string) error {
	if value == "" {
		return nil
	}
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return setField(field.Elem(), value)
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid unsigned integer %q", value)
		}
		field.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("invalid float %q", value)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(value)))
		if err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
