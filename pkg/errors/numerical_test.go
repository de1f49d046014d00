package errors

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestClipValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"inside", 0.25, 0.25},
		{"lower bound", 0, 0},
		{"upper bound", 1, 1},
		{"below", -3.5, 0},
		{"above", 42, 1},
		{"negative infinity", math.Inf(-1), 0},
		{"positive infinity", math.Inf(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClipValue(tt.value, 0, 1); got != tt.want {
				t.Errorf("ClipValue(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestCheckMatrix(t *testing.T) {
	finite := mat.NewDense(2, 2, []float64{0, 0.5, 1, -2})
	if err := CheckMatrix("finite", finite); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := mat.NewDense(2, 3, []float64{0, 1, 0, 1, math.NaN(), math.Inf(1)})
	err := CheckMatrix("bad", bad)
	if err == nil {
		t.Fatal("expected error for NaN input")
	}

	var numErr *NumericalInstabilityError
	if !As(err, &numErr) {
		t.Fatalf("expected *NumericalInstabilityError, got %T", err)
	}
	if numErr.Row != 1 || numErr.Col != 1 {
		t.Errorf("first offending cell = (%d, %d), want (1, 1)", numErr.Row, numErr.Col)
	}
	if len(numErr.Values) != 2 {
		t.Errorf("expected 2 offending values, got %d", len(numErr.Values))
	}
}
