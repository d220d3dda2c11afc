package dataset_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/mirror/pkg/dataset"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want dataset.Value
	}{
		{"nil", nil, nil},
		{"int", 7, int64(7)},
		{"int32", int32(-3), int64(-3)},
		{"uint8", uint8(255), int64(255)},
		{"float32", float32(0.5), 0.5},
		{"bytes", []byte("abc"), "abc"},
		{"json int", json.Number("12"), int64(12)},
		{"json float", json.Number("1.25"), 1.25},
		{"time", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02T03:04:05Z"},
		{"bool", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataset.Normalize(tt.in))
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b dataset.Value
		want bool
	}{
		{"null null", nil, nil, true},
		{"null string", nil, "", false},
		{"string null", "x", nil, false},
		{"same string", "ann", "ann", true},
		{"different string", "bob", "bobby", false},
		{"int float", int64(1), 1.0, true},
		{"float int", 2.5, int64(2), false},
		{"number string", int64(1), "1", false},
		{"bools", true, true, true},
		{"bool string", true, "true", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dataset.Equal(tt.a, tt.b))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "", dataset.String(nil))
	assert.Equal(t, "42", dataset.String(int64(42)))
	assert.Equal(t, "false", dataset.String(false))
}

func TestStringFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.1, "0.1"},
		{1.0, "1.0"},
		{100.0, "100.0"},
		{2.5, "2.5"},
		{0.0001, "0.0001"},
		{0.000015, "1.5e-05"},
		{1e15, "1000000000000000.0"},
		{1e16, "1e+16"},
		{1e21, "1e+21"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, dataset.String(tt.in))
		})
	}
}

func TestKeyOf(t *testing.T) {
	assert.Equal(t,
		dataset.KeyOf([]dataset.Value{int64(1), "a"}),
		dataset.KeyOf([]dataset.Value{1.0, "a"}),
		"numerically equal keys join")
	assert.NotEqual(t,
		dataset.KeyOf([]dataset.Value{int64(1)}),
		dataset.KeyOf([]dataset.Value{"1"}))
	assert.NotEqual(t,
		dataset.KeyOf([]dataset.Value{"a", "b"}),
		dataset.KeyOf([]dataset.Value{"a b"}))
	assert.NotEqual(t,
		dataset.KeyOf([]dataset.Value{nil}),
		dataset.KeyOf([]dataset.Value{""}))
}

func TestFloat(t *testing.T) {
	f, ok := dataset.Float(" 3.5 ")
	assert.True(t, ok)
	assert.Equal(t, 3.5, f)

	_, ok = dataset.Float("abc")
	assert.False(t, ok)
	_, ok = dataset.Float(nil)
	assert.False(t, ok)
}
