package calc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		a, b float64
		op   string
		want float64
	}{
		{7, 3, "+", 10},
		{7, 3, "-", 4},
		{7, 3, "*", 21},
		{9, 3, "/", 3},
		{-2.5, 0.5, "+", -2},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.a, tt.b, tt.op)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9)
	}

	inf, err := Evaluate(1, 0, "/")
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf, 1))

	_, err = Evaluate(1, 2, "^")
	assert.Error(t, err)
}

func TestUnary(t *testing.T) {
	tests := []struct {
		op   string
		v    float64
		want float64
	}{
		{"sin", 0, 0},
		{"cos", 0, 1},
		{"tan", 0, 0},
		{"ln", math.E, 1},
		{"log", 1000, 3},
		{"sqrt", 81, 9},
		{"square", 12, 144},
		{"percent", 45, 0.45},
		{"negate", 5, -5},
		{"pi", 0, math.Pi},
		{"e", 0, math.E},
	}
	for _, tt := range tests {
		got, err := Unary(tt.op, tt.v)
		require.NoError(t, err, tt.op)
		assert.InDelta(t, tt.want, got, 1e-9, tt.op)
	}

	neg, err := Unary("sqrt", -1)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(neg))
}

func TestBases(t *testing.T) {
	tests := []struct {
		n    int64
		base string
		want string
	}{
		{255, "bin", "11111111"},
		{255, "oct", "377"},
		{255, "dec", "255"},
		{255, "hex", "FF"},
		{10, "bin", "1010"},
	}
	for _, tt := range tests {
		got, err := FormatBase(tt.n, tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		back, err := ParseBase(got, tt.base)
		require.NoError(t, err)
		assert.Equal(t, tt.n, back)
	}

	_, err := FormatBase(1, "ternary")
	assert.Error(t, err)
	_, err = ParseBase("2", "bin")
	assert.Error(t, err)
}

func TestValidDigit(t *testing.T) {
	assert.True(t, ValidDigit('1', "bin"))
	assert.False(t, ValidDigit('2', "bin"))
	assert.True(t, ValidDigit('7', "oct"))
	assert.False(t, ValidDigit('8', "oct"))
	assert.True(t, ValidDigit('f', "hex"))
	assert.False(t, ValidDigit('g', "hex"))
}

func TestBitwise(t *testing.T) {
	and, err := Bitwise(0b1100, 0b1010, "and")
	require.NoError(t, err)
	assert.Equal(t, int64(0b1000), and)

	or, err := Bitwise(0b1100, 0b1010, "or")
	require.NoError(t, err)
	assert.Equal(t, int64(0b1110), or)

	xor, err := Bitwise(0b1100, 0b1010, "xor")
	require.NoError(t, err)
	assert.Equal(t, int64(0b0110), xor)

	not, err := Bitwise(0, 0, "not")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), not)

	_, err = Bitwise(1, 1, "nand")
	assert.Error(t, err)
}

func TestGPA(t *testing.T) {
	courses := []Course{
		{Name: "Algorithms", Credits: 3, Grade: "A"},
		{Name: "Calculus", Credits: 4, Grade: "B+"},
	}
	// (3*4.0 + 4*3.3) / 7 = 3.6
	assert.InDelta(t, 3.6, GPA(courses), 1e-9)

	assert.Zero(t, GPA(nil))
	assert.Zero(t, GPA([]Course{{Name: "Audit", Credits: 0, Grade: "A"}}))

	// Unknown letter grades score zero points.
	unknown := []Course{{Name: "X", Credits: 3, Grade: "Z"}}
	assert.Zero(t, GPA(unknown))
}

func TestWeightedGrade(t *testing.T) {
	components := []GradeComponent{
		{Name: "Midterm", Weight: 30, Score: 85},
		{Name: "Final Exam", Weight: 40, Score: 0},
		{Name: "Assignments", Weight: 20, Score: 90},
		{Name: "Participation", Weight: 10, Score: 95},
	}

	// 25.5 + 0 + 18 + 9.5
	assert.InDelta(t, 53, WeightedTotal(components), 1e-9)

	required, ok := RequiredScore(components, "Final Exam", 80)
	require.True(t, ok)
	// (80 - 53) * 100 / 40
	assert.InDelta(t, 67.5, required, 1e-9)

	_, ok = RequiredScore(components, "Lab", 80)
	assert.False(t, ok)
}

func TestDateDiff(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	span := DateDiff(start, end)
	assert.Equal(t, 75, span.Days)
	assert.Equal(t, 10, span.Weeks)
	assert.Equal(t, 2, span.Months)

	// Order-insensitive.
	assert.Equal(t, span, DateDiff(end, start))

	zero := DateDiff(start, start)
	assert.Equal(t, DateSpan{}, zero)
}

func TestTemperature(t *testing.T) {
	assert.InDelta(t, 32, CelsiusToFahrenheit(0), 1e-9)
	assert.InDelta(t, 212, CelsiusToFahrenheit(100), 1e-9)
	assert.InDelta(t, 0, FahrenheitToCelsius(32), 1e-9)
	assert.InDelta(t, 37, FahrenheitToCelsius(98.6), 1e-9)
}
