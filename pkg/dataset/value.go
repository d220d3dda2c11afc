package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Value is a single cell: nil (null), string, int64, float64 or bool.
// Values entering a Dataset are normalised with Normalize.
type Value = any

// Normalize converts a Go scalar into one of the canonical Value kinds.
// Wider integer and float kinds collapse into int64 and float64, byte
// slices become strings and times are rendered in RFC 3339. Anything else
// is rendered with fmt.
func Normalize(v any) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return t
	case bool:
		return t
	case int64:
		return t
	case float64:
		if math.IsNaN(t) {
			return nil
		}
		return t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return normalizeUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return normalizeUint(t)
	case float32:
		return Normalize(float64(t))
	case []byte:
		return string(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func normalizeUint(u uint64) Value {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return float64(u)
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool {
	return v == nil
}

// Float returns the numeric value of v. Numeric strings are parsed.
func Float(v Value) (float64, bool) {
	switch t := v.(type) {
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Equal compares two values. Null equals null and nothing else; int64 and
// float64 compare numerically; other kinds must match in type and value.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case int64:
			return x == float64(y)
		case float64:
			return x == y
		}
		return false
	case string:
		y, ok := b.(string)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return a == b
	}
}

// String returns the canonical string representation of v. Null renders
// as the empty string.
func String(v Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat renders f with the shortest digits that round-trip. Whole
// numbers keep a trailing ".0" and exponents below -4 or from 16 up switch
// to scientific notation, so 1.0 is "1.0" and 1e21 is "1e+21".
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	if exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// KeyOf encodes a tuple of key values into a join key. Numbers that are
// equal compare equal regardless of kind; a number never joins a string.
func KeyOf(values []Value) string {
	var b strings.Builder
	for i, v := range values {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		switch t := v.(type) {
		case nil:
			b.WriteString("z:")
		case int64:
			b.WriteString("n:")
			b.WriteString(strconv.FormatInt(t, 10))
		case float64:
			b.WriteString("n:")
			if t == math.Trunc(t) && math.Abs(t) < 1<<63 {
				b.WriteString(strconv.FormatInt(int64(t), 10))
			} else {
				b.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
			}
		case bool:
			b.WriteString("b:")
			b.WriteString(strconv.FormatBool(t))
		default:
			b.WriteString("s:")
			b.WriteString(strconv.Quote(String(t)))
		}
	}
	return b.String()
}

// infer converts a text cell into the narrowest value kind.
func infer(s string) Value {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}
