// Package semcsv provides per-column casting of rows.
package semcsv

import (
	"sort"
	"strconv"
)

// ErrorHandler is invoked when a caster fails on a column value. Its result
// replaces the failed cast. When no handler is configured the failure
// surfaces as a *CastError instead.
type ErrorHandler func(column string, value any) any

// CastSpec describes which caster applies to which column. Build one with
// Uniform, ByName or ByIndex. The zero value casts nothing.
type CastSpec struct {
	uniform Caster
	byName  map[string]Caster
	byIndex map[int]Caster
}

// Uniform returns a spec that applies one caster to every selected column.
func Uniform(c Caster) CastSpec {
	return CastSpec{uniform: c}
}

// ByName returns a spec that applies a distinct caster per column name.
// Only the named columns are cast.
func ByName(casters map[string]Caster) CastSpec {
	return CastSpec{byName: casters}
}

// ByIndex returns a spec that applies a distinct caster per column index.
// Only the indexed columns are cast. Indices are zero-based.
func ByIndex(casters map[int]Caster) CastSpec {
	return CastSpec{byIndex: casters}
}

// IsZero reports whether the spec selects no caster at all.
func (s CastSpec) IsZero() bool {
	return s.uniform == nil && len(s.byName) == 0 && len(s.byIndex) == 0
}

// CastOptions adjusts how a CastSpec is applied to a row.
type CastOptions struct {
	// Only restricts casting of mapping-form rows to exactly these column
	// keys. nil means no restriction; an empty non-nil slice selects no
	// columns.
	Only []string

	// OnlyIndex restricts casting of positional rows to exactly these
	// indices. nil means no restriction; an empty non-nil slice selects no
	// columns.
	OnlyIndex []int

	// OnError recovers failed casts per column. When nil, the first
	// failure aborts the row with a *CastError.
	OnError ErrorHandler
}

// Apply casts the selected columns of row, leaving all others untouched.
// The row form is resolved once: *Record rows cast by column name, Vector
// rows by index. Returns a new row; the input is never mutated.
func (s CastSpec) Apply(row Row, opts CastOptions) (Row, error) {
	switch r := row.(type) {
	case *Record:
		return s.CastRecord(r, opts)
	case Vector:
		return s.CastVector(r, opts)
	default:
		// Row has exactly two implementations.
		return row, nil
	}
}

// CastRecord casts the selected columns of a mapping-form row.
//
// Column selection, first rule that applies:
//  1. opts.Only is set: exactly those keys.
//  2. the spec is per-name: its keys, sorted for determinism.
//  3. otherwise: the record's own keys in order.
//
// Keys selected but absent from the record are skipped, never invented.
func (s CastSpec) CastRecord(rec *Record, opts CastOptions) (*Record, error) {
	cols := opts.Only
	if cols == nil {
		if len(s.byName) > 0 {
			cols = make([]string, 0, len(s.byName))
			for k := range s.byName {
				cols = append(cols, k)
			}
			sort.Strings(cols)
		} else {
			cols = rec.Keys()
		}
	}

	out := rec.Clone()
	for _, col := range cols {
		caster := s.casterForName(col)
		if caster == nil {
			continue
		}
		val, ok := out.Get(col)
		if !ok {
			continue
		}
		cast, err := castValue(caster, col, val, opts.OnError)
		if err != nil {
			return nil, err
		}
		out.Set(col, cast)
	}
	return out, nil
}

// CastVector casts the selected columns of a positional row.
//
// Column selection, first rule that applies:
//  1. opts.OnlyIndex is set: exactly those indices.
//  2. the spec is per-index: its indices, sorted for determinism.
//  3. otherwise: every index 0..len-1.
//
// Indices beyond the row's length are skipped.
func (s CastSpec) CastVector(row Vector, opts CastOptions) (Vector, error) {
	idxs := opts.OnlyIndex
	if idxs == nil {
		if len(s.byIndex) > 0 {
			idxs = make([]int, 0, len(s.byIndex))
			for i := range s.byIndex {
				idxs = append(idxs, i)
			}
			sort.Ints(idxs)
		} else {
			idxs = make([]int, len(row))
			for i := range row {
				idxs[i] = i
			}
		}
	}

	out := row.Clone()
	for _, i := range idxs {
		if i < 0 || i >= len(out) {
			continue
		}
		caster := s.casterForIndex(i)
		if caster == nil {
			continue
		}
		cast, err := castValue(caster, strconv.Itoa(i), out[i], opts.OnError)
		if err != nil {
			return nil, err
		}
		out[i] = cast
	}
	return out, nil
}

// castValue is the value caster: one caster, one column, one value. A
// configured handler substitutes for a failed cast; otherwise the failure
// propagates as a *CastError.
func castValue(caster Caster, column string, value any, onError ErrorHandler) (any, error) {
	cast, err := caster.Cast(value)
	if err == nil {
		return cast, nil
	}
	if onError != nil {
		return onError(column, value), nil
	}
	return nil, &CastError{Column: column, Value: value, Err: err}
}

func (s CastSpec) casterForName(col string) Caster {
	if c, ok := s.byName[col]; ok {
		return c
	}
	return s.uniform
}

func (s CastSpec) casterForIndex(i int) Caster {
	if c, ok := s.byIndex[i]; ok {
		return c
	}
	return s.uniform
}
