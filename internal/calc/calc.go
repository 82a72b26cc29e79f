// Package calc implements the student calculator modes: basic and
// scientific arithmetic, programmer base conversion, GPA and weighted
// grades, date spans, and temperature conversion. Everything here is a
// pure function; no calculator state lives on the server.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Evaluate applies a binary arithmetic operator. Division by zero follows
// float semantics and yields +/-Inf, matching a plain display calculator.
func Evaluate(a, b float64, op string) (float64, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		return a / b, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", op)
	}
}

// Unary applies a scientific operation to v. The constants pi and e ignore v.
func Unary(op string, v float64) (float64, error) {
	switch op {
	case "sin":
		return math.Sin(v), nil
	case "cos":
		return math.Cos(v), nil
	case "tan":
		return math.Tan(v), nil
	case "ln":
		return math.Log(v), nil
	case "log":
		return math.Log10(v), nil
	case "sqrt":
		return math.Sqrt(v), nil
	case "square":
		return v * v, nil
	case "percent":
		return v / 100, nil
	case "negate":
		return -v, nil
	case "pi":
		return math.Pi, nil
	case "e":
		return math.E, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", op)
	}
}

// Programmer-mode bases.
var baseRadix = map[string]int{"bin": 2, "oct": 8, "dec": 10, "hex": 16}

// FormatBase renders n in the named base; hex digits are uppercase.
func FormatBase(n int64, base string) (string, error) {
	radix, ok := baseRadix[base]
	if !ok {
		return "", fmt.Errorf("unknown base %q", base)
	}
	return strings.ToUpper(strconv.FormatInt(n, radix)), nil
}

// ParseBase parses s in the named base.
func ParseBase(s string, base string) (int64, error) {
	radix, ok := baseRadix[base]
	if !ok {
		return 0, fmt.Errorf("unknown base %q", base)
	}
	return strconv.ParseInt(strings.ToLower(s), radix, 64)
}

// ValidDigit reports whether digit may be typed in the named base.
func ValidDigit(digit rune, base string) bool {
	radix, ok := baseRadix[base]
	if !ok {
		return false
	}
	_, err := strconv.ParseInt(string(digit), radix, 64)
	return err == nil
}

// Bitwise applies a binary bitwise operator; NOT ignores b.
func Bitwise(a, b int64, op string) (int64, error) {
	switch op {
	case "and":
		return a & b, nil
	case "or":
		return a | b, nil
	case "xor":
		return a ^ b, nil
	case "not":
		return ^a, nil
	default:
		return 0, fmt.Errorf("unknown bitwise operator %q", op)
	}
}

// Course is one row of the GPA calculator.
type Course struct {
	Name    string  `json:"name"`
	Credits float64 `json:"credits"`
	Grade   string  `json:"grade"`
}

// The standard 4.0 grade-point table. Unknown grades count as zero points.
var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// GPA computes the credit-weighted grade point average, rounded to two
// decimals. No courses (or zero total credits) is 0.
func GPA(courses []Course) float64 {
	var totalCredits, totalPoints float64
	for _, course := range courses {
		totalCredits += course.Credits
		totalPoints += course.Credits * gradePoints[course.Grade]
	}
	if totalCredits == 0 {
		return 0
	}
	return round2(totalPoints / totalCredits)
}

// GradeComponent is one weighted piece of a course grade. Weight is a
// percentage; Score is out of 100.
type GradeComponent struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// WeightedTotal is the course grade implied by the components so far.
func WeightedTotal(components []GradeComponent) float64 {
	var total float64
	for _, c := range components {
		total += c.Score * c.Weight / 100
	}
	return round2(total)
}

// RequiredScore solves for the score needed on one pending component (by
// name) to land on target overall. The second return is false when no
// component has that name.
func RequiredScore(components []GradeComponent, pending string, target float64) (float64, bool) {
	pendingIdx := -1
	for i, c := range components {
		if c.Name == pending {
			pendingIdx = i
			break
		}
	}
	if pendingIdx == -1 {
		return 0, false
	}

	var earned float64
	for i, c := range components {
		if i != pendingIdx {
			earned += c.Score * c.Weight / 100
		}
	}

	required := (target - earned) * 100 / components[pendingIdx].Weight
	return round2(required), true
}

// DateSpan is the distance between two dates.
type DateSpan struct {
	Days   int `json:"days"`
	Weeks  int `json:"weeks"`
	Months int `json:"months"`
}

// DateDiff measures the span between two dates, order-insensitive. Days
// round up from partial days; months use the 30.44-day average.
func DateDiff(start, end time.Time) DateSpan {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))
	return DateSpan{
		Days:   days,
		Weeks:  days / 7,
		Months: int(float64(days) / 30.44),
	}
}

// CelsiusToFahrenheit and FahrenheitToCelsius convert temperatures.
func CelsiusToFahrenheit(c float64) float64 {
	return round2(c*9/5 + 32)
}

func FahrenheitToCelsius(f float64) float64 {
	return round2((f - 32) * 5 / 9)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
