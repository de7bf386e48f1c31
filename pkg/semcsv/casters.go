// Package semcsv provides type casters for CSV column values.
package semcsv

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caster is the interface for column value casters.
// Casters transform cell values into typed Go values. Input is any rather
// than string: values that are already typed coerce without string parsing,
// so a caster can run on rows that were partially cast upstream.
type Caster interface {
	// Cast transforms a cell value into the target type.
	// Returns the cast value and any error encountered.
	Cast(value any) (any, error)
}

// CasterFunc is a function adapter for the Caster interface.
type CasterFunc func(any) (any, error)

// Cast implements Caster.
func (f CasterFunc) Cast(value any) (any, error) {
	return f(value)
}

// IdentityCaster returns every value unchanged.
type IdentityCaster struct{}

// Cast implements Caster for IdentityCaster.
func (IdentityCaster) Cast(value any) (any, error) {
	return value, nil
}

// IntCaster casts cell values to int.
//
// Decimal strings such as "35.54" truncate toward zero. Blank strings
// return NilFill when it is set and fail otherwise. Numeric input coerces
// without parsing.
type IntCaster struct {
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// Cast implements Caster for IntCaster.
func (c IntCaster) Cast(value any) (any, error) {
	n, fromFill, err := castInt64(value, c.NilFill)
	if err != nil {
		return nil, err
	}
	if fromFill {
		return n, nil
	}
	return int(n.(int64)), nil
}

// LongCaster casts cell values to int64 with the same rules as IntCaster.
type LongCaster struct {
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// Cast implements Caster for LongCaster.
func (c LongCaster) Cast(value any) (any, error) {
	n, _, err := castInt64(value, c.NilFill)
	return n, err
}

// castInt64 holds the shared integer casting rules. A parsed or coerced
// result is an int64; a substituted nil fill is returned verbatim and
// reported via fromFill so callers do not narrow it.
func castInt64(value, nilFill any) (result any, fromFill bool, err error) {
	switch v := value.(type) {
	case nil:
		if nilFill != nil {
			return nilFill, true, nil
		}
		return nil, false, fmt.Errorf("cannot cast nil to integer")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if nilFill != nil {
				return nilFill, true, nil
			}
			return nil, false, fmt.Errorf("cannot cast blank string to integer")
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, false, nil
		}
		// Decimal strings truncate toward zero.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, fmt.Errorf("cannot cast %q to integer", v)
		}
		return int64(f), false, nil
	case int:
		return int64(v), false, nil
	case int32:
		return int64(v), false, nil
	case int64:
		return v, false, nil
	case float32:
		return int64(v), false, nil
	case float64:
		return int64(v), false, nil
	default:
		return nil, false, fmt.Errorf("cannot cast %T to integer", value)
	}
}

// FloatCaster casts cell values to float64.
// Blank strings return NilFill when it is set and fail otherwise. Numeric
// input coerces without parsing.
type FloatCaster struct {
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// DoubleCaster is FloatCaster; both target float64.
type DoubleCaster = FloatCaster

// Cast implements Caster for FloatCaster.
func (c FloatCaster) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		if c.NilFill != nil {
			return c.NilFill, nil
		}
		return nil, fmt.Errorf("cannot cast nil to float")
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if c.NilFill != nil {
				return c.NilFill, nil
			}
			return nil, fmt.Errorf("cannot cast blank string to float")
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to float", v)
		}
		return f, nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to float", value)
	}
}

// BoolCaster casts cell values to bool.
//
// Recognizes true/yes/t/y/on/1 and false/no/f/n/off/0, case-insensitive and
// trimmed. A blank string returns NilFill, which may be nil. Numeric input
// casts to true when nonzero.
type BoolCaster struct {
	// NilFill is returned for blank input.
	NilFill any
}

// Cast implements Caster for BoolCaster.
func (c BoolCaster) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return c.NilFill, nil
	case bool:
		return v, nil
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		if s == "" {
			return c.NilFill, nil
		}
		switch s {
		case "true", "yes", "t", "y", "on", "1":
			return true, nil
		case "false", "no", "f", "n", "off", "0":
			return false, nil
		}
		return nil, fmt.Errorf("cannot cast %q to bool", v)
	case int:
		return v != 0, nil
	case int32:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case float32:
		return v != 0, nil
	case float64:
		return v != 0, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to bool", value)
	}
}

// StringCaster casts any cell value to its string form. It never fails:
// nil becomes the empty string and non-string values format the way the
// batch writer serializes them. This is the writer's defensive final cast,
// exported for direct use.
type StringCaster struct{}

// Cast implements Caster for StringCaster.
func (StringCaster) Cast(value any) (any, error) {
	return formatCell(value), nil
}

// DecimalCaster casts cell values to decimal.Decimal for columns where
// binary floating point is not acceptable.
type DecimalCaster struct {
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// Cast implements Caster for DecimalCaster.
func (c DecimalCaster) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		if c.NilFill != nil {
			return c.NilFill, nil
		}
		return nil, fmt.Errorf("cannot cast nil to decimal")
	case decimal.Decimal:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if c.NilFill != nil {
				return c.NilFill, nil
			}
			return nil, fmt.Errorf("cannot cast blank string to decimal")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to decimal", v)
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	default:
		return nil, fmt.Errorf("cannot cast %T to decimal", value)
	}
}

// UUIDCaster casts cell values to uuid.UUID for identifier columns.
type UUIDCaster struct {
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// Cast implements Caster for UUIDCaster.
func (c UUIDCaster) Cast(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		if c.NilFill != nil {
			return c.NilFill, nil
		}
		return nil, fmt.Errorf("cannot cast nil to uuid")
	case uuid.UUID:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if c.NilFill != nil {
				return c.NilFill, nil
			}
			return nil, fmt.Errorf("cannot cast blank string to uuid")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to uuid", v)
		}
		return id, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to uuid", value)
	}
}

// DateCaster casts cell values to time.Time.
type DateCaster struct {
	// Format is the date format string (default: "2006-01-02").
	Format string
	// Location is the timezone for parsing (default: UTC).
	Location *time.Location
	// NilFill is returned for blank input. When nil, blank input is a cast
	// failure.
	NilFill any
}

// Cast implements Caster for DateCaster.
func (c DateCaster) Cast(value any) (any, error) {
	format := c.Format
	if format == "" {
		format = "2006-01-02"
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	switch v := value.(type) {
	case nil:
		if c.NilFill != nil {
			return c.NilFill, nil
		}
		return nil, fmt.Errorf("cannot cast nil to date")
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			if c.NilFill != nil {
				return c.NilFill, nil
			}
			return nil, fmt.Errorf("cannot cast blank string to date")
		}
		t, err := time.ParseInLocation(format, s, loc)
		if err != nil {
			return nil, fmt.Errorf("cannot cast %q to date: %v", v, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("cannot cast %T to date", value)
	}
}

// formatCell serializes a cell value to its string form for output.
func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Registry manages named casters.
type Registry struct {
	casters map[string]Caster
}

// NewRegistry creates a caster registry with the built-in casters
// registered under int, long, float, double, bool, string, decimal, uuid
// and date.
func NewRegistry() *Registry {
	r := &Registry{
		casters: make(map[string]Caster),
	}
	r.Register("int", IntCaster{})
	r.Register("long", LongCaster{})
	r.Register("float", FloatCaster{})
	r.Register("double", DoubleCaster{})
	r.Register("bool", BoolCaster{})
	r.Register("string", StringCaster{})
	r.Register("decimal", DecimalCaster{})
	r.Register("uuid", UUIDCaster{})
	r.Register("date", DateCaster{})
	return r
}

// Register adds a caster to the registry.
func (r *Registry) Register(name string, c Caster) {
	r.casters[name] = c
}

// Get retrieves a caster by name.
func (r *Registry) Get(name string) (Caster, bool) {
	c, ok := r.casters[name]
	return c, ok
}
