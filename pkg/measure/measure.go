// Package measure provides a numeric value that may be explicitly "not applicable".
//
// Means and rates in a comparison are undefined when there is nothing to
// average over (no matched records, an empty ground). Those cases are carried
// as a distinct state instead of NaN so that callers can tell an undefined
// metric from a legitimate zero.
package measure

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/agentstation/mirror/pkg/constants"
)

// Measure is a float64 that may be not applicable.
type Measure struct {
	value float64
	ok    bool
}

// Of returns an applicable measure. NaN and infinities are not applicable.
func Of(v float64) Measure {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Measure{}
	}
	return Measure{value: v, ok: true}
}

// NotApplicable returns the undefined measure.
func NotApplicable() Measure {
	return Measure{}
}

// Get returns the value and whether it is applicable.
func (m Measure) Get() (float64, bool) {
	return m.value, m.ok
}

// Applicable reports whether the measure holds a value.
func (m Measure) Applicable() bool {
	return m.ok
}

// Or returns the value, or fallback when not applicable.
func (m Measure) Or(fallback float64) float64 {
	if !m.ok {
		return fallback
	}
	return m.value
}

// Less reports whether the measure is applicable and below bound.
func (m Measure) Less(bound float64) bool {
	return m.ok && m.value < bound
}

// Scale multiplies an applicable measure by factor.
func (m Measure) Scale(factor float64) Measure {
	if !m.ok {
		return m
	}
	return Of(m.value * factor)
}

// String renders the value, or "n/a".
func (m Measure) String() string {
	if !m.ok {
		return constants.NotApplicable
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// MarshalJSON encodes a not-applicable measure as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.ok {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON decodes null as not applicable.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Measure{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Of(v)
	return nil
}

// MarshalYAML encodes a not-applicable measure as null.
func (m Measure) MarshalYAML() (any, error) {
	if !m.ok {
		return nil, nil
	}
	return m.value, nil
}

// Mean averages values. An empty input is not applicable.
func Mean(values []float64) Measure {
	if len(values) == 0 {
		return Measure{}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Of(sum / float64(len(values)))
}

// Percent returns 100*num/den, not applicable when den is zero.
func Percent(num, den int) Measure {
	if den == 0 {
		return Measure{}
	}
	return Of(constants.PercentScale * float64(num) / float64(den))
}
