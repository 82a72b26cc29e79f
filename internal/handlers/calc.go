package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyscribe/studyscribe-api/internal/calc"
)

type EvaluateRequest struct {
	A  float64 `json:"a"`
	B  float64 `json:"b"`
	Op string  `json:"op" binding:"required"`
}

type UnaryRequest struct {
	Op    string  `json:"op" binding:"required"`
	Value float64 `json:"value"`
}

type ConvertBaseRequest struct {
	Value string `json:"value" binding:"required"`
	From  string `json:"from" binding:"required"`
	To    string `json:"to" binding:"required"`
}

type BitwiseRequest struct {
	A  string `json:"a" binding:"required"`
	B  string `json:"b"`
	Op string `json:"op" binding:"required"`
	// Base the operands are written in and the result is rendered in.
	Base string `json:"base" binding:"required"`
}

type GPARequest struct {
	Courses []calc.Course `json:"courses" binding:"required"`
}

type GradeRequest struct {
	Components []calc.GradeComponent `json:"components" binding:"required"`
	Pending    string                `json:"pending"`
	Target     float64               `json:"target"`
}

type DateDiffRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

type TemperatureRequest struct {
	Value float64 `json:"value"`
	From  string  `json:"from" binding:"required"` // celsius | fahrenheit
}

func calcBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": message,
		},
	})
}

// Evaluate applies one basic arithmetic operation
func Evaluate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EvaluateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		result, err := calc.Evaluate(req.A, req.B, req.Op)
		if err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"result": result},
		})
	}
}

// Unary applies one scientific operation
func Unary() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UnaryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		result, err := calc.Unary(req.Op, req.Value)
		if err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"result": result},
		})
	}
}

// ConvertBase rewrites a programmer-mode value between bases
func ConvertBase() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ConvertBaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		n, err := calc.ParseBase(req.Value, req.From)
		if err != nil {
			calcBadRequest(c, "Invalid value for base "+req.From)
			return
		}

		result, err := calc.FormatBase(n, req.To)
		if err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"result": result},
		})
	}
}

// Bitwise applies a programmer-mode bitwise operation
func Bitwise() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BitwiseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		a, err := calc.ParseBase(req.A, req.Base)
		if err != nil {
			calcBadRequest(c, "Invalid value for base "+req.Base)
			return
		}

		var b int64
		if req.B != "" {
			b, err = calc.ParseBase(req.B, req.Base)
			if err != nil {
				calcBadRequest(c, "Invalid value for base "+req.Base)
				return
			}
		}

		n, err := calc.Bitwise(a, b, req.Op)
		if err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		result, err := calc.FormatBase(n, req.Base)
		if err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"result": result},
		})
	}
}

// GPA computes a credit-weighted grade point average
func GPA() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GPARequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"gpa": calc.GPA(req.Courses)},
		})
	}
}

// Grade computes the weighted course total and, when a pending component
// and target are given, the score required on that component
func Grade() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GradeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		data := gin.H{"total": calc.WeightedTotal(req.Components)}
		if req.Pending != "" {
			required, ok := calc.RequiredScore(req.Components, req.Pending, req.Target)
			if !ok {
				calcBadRequest(c, "No component named "+req.Pending)
				return
			}
			data["required"] = required
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

// DateDiff measures the span between two dates
func DateDiff() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DateDiffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    calc.DateDiff(req.Start, req.End),
		})
	}
}

// Temperature converts between Celsius and Fahrenheit
func Temperature() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TemperatureRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			calcBadRequest(c, err.Error())
			return
		}

		var result float64
		switch req.From {
		case "celsius":
			result = calc.CelsiusToFahrenheit(req.Value)
		case "fahrenheit":
			result = calc.FahrenheitToCelsius(req.Value)
		default:
			calcBadRequest(c, "from must be celsius or fahrenheit")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"result": result},
		})
	}
}
