package semcsv

// Row is one CSV record in either positional or mapping form.
//
// Exactly two types implement Row: Vector (positional) and *Record
// (mapping). Stages that accept a Row resolve the form once with a type
// switch rather than per cell.
type Row interface {
	isRow()
}

// Vector is a row in positional form: an ordered slice of cells where the
// position is the column identity. Cells start life as strings from the
// parser and may become typed values after casting.
type Vector []any

func (Vector) isRow() {}

// VectorOf builds a Vector from string cells, as produced by the parser
// collaborator.
func VectorOf(cells []string) Vector {
	v := make(Vector, len(cells))
	for i, c := range cells {
		v[i] = c
	}
	return v
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Record is a row in mapping form: column keys associated with cell values,
// preserving the order in which keys were set. Keys are unique; setting an
// existing key replaces its value in place.
type Record struct {
	keys   []string
	values map[string]any
}

func (*Record) isRow() {}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{
		keys:   make([]string, 0, 8),
		values: make(map[string]any, 8),
	}
}

// Set associates key with value, appending the key if it is new.
// Returns the Record for method chaining.
func (r *Record) Set(key string, value any) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

// Get returns the value for key.
// Returns (nil, false) if the key is not present.
func (r *Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present in the record.
func (r *Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the record's column keys in insertion order.
// The returned slice is a copy.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of columns in the record.
func (r *Record) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy of the record.
func (r *Record) Clone() *Record {
	out := &Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]any, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		out.values[k] = v
	}
	return out
}
