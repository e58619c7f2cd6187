// Package regression fits a straight line through (x, y) points with
// ordinary least squares.
package regression

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when fewer than two points are supplied
	ErrTooFewPoints = errors.New("at least two points are required")

	// ErrDegenerate is returned when every x value is the same
	ErrDegenerate = errors.New("cannot calculate regression: all x values are the same")

	// ErrLengthMismatch is returned when x and y differ in length
	ErrLengthMismatch = errors.New("x and y must have the same length")
)

// Model is a fitted line y = Slope*x + Intercept
type Model struct {
	Slope     float64
	Intercept float64
	N         int
	RSquared  float64
}

// Predict evaluates the fitted line at x
func (m *Model) Predict(x float64) float64 {
	return m.Slope*x + m.Intercept
}

// Fit solves the two-parameter normal equations for the supplied points.
func Fit(x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(x))
	}

	n := float64(len(x))

	var sumX, sumY, sumXY, sumX2 float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
		sumXY += x[i] * y[i]
		sumX2 += x[i] * x[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return nil, ErrDegenerate
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	m := &Model{
		Slope:     slope,
		Intercept: intercept,
		N:         len(x),
	}
	m.RSquared = rSquared(m, x, y, sumY/n)

	return m, nil
}

// FitSequence fits y against its own 0-based positions.
func FitSequence(y []float64) (*Model, error) {
	x := make([]float64, len(y))
	for i := range x {
		x[i] = float64(i)
	}
	return Fit(x, y)
}

// rSquared returns the coefficient of determination. A constant y series is
// explained perfectly by a flat line, so it reports 1.
func rSquared(m *Model, x, y []float64, meanY float64) float64 {
	var ssRes, ssTot float64
	for i := range x {
		residual := y[i] - m.Predict(x[i])
		ssRes += residual * residual
		d := y[i] - meanY
		ssTot += d * d
	}
	if ssTot == 0 {
		return 1
	}
	r2 := 1 - ssRes/ssTot
	if math.IsNaN(r2) {
		return 0
	}
	return r2
}
