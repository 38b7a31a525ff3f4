package mathutil

import (
	"math"
	"testing"
)

func TestIntHelpers(t *testing.T) {
	if IntMin(3, -2) != -2 || IntMax(3, -2) != 3 {
		t.Fatal("IntMin/IntMax broken")
	}
	if IntAbs(-7) != 7 || IntAbs(7) != 7 {
		t.Fatal("IntAbs broken")
	}
	if IntClamp(15, 0, 9) != 9 || IntClamp(-1, 0, 9) != 0 || IntClamp(4, 0, 9) != 4 {
		t.Fatal("IntClamp broken")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct{ v, lo, hi, want float64 }{
		{-0.5, 0, 1, 0},
		{0.25, 0, 1, 0.25},
		{7, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestFrac(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{2.25, 0.25},
		{3, 0},
		{-0.25, 0.75},
	}
	for _, tt := range tests {
		if got := Frac(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Frac(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 64, 1024} {
		if !IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = false", n)
		}
	}
	for _, n := range []int{0, -4, 3, 48, 100} {
		if IsPowerOfTwo(n) {
			t.Errorf("IsPowerOfTwo(%d) = true", n)
		}
	}
	tests := []struct{ n, want int }{{0, 1}, {1, 1}, {3, 4}, {48, 64}, {64, 64}, {65, 128}}
	for _, tt := range tests {
		if got := NextPowerOfTwo(tt.n); got != tt.want {
			t.Errorf("NextPowerOfTwo(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(3, 4)
	if math.Abs(x-0.6) > 1e-12 || math.Abs(y-0.8) > 1e-12 {
		t.Errorf("Normalize(3,4) = (%v,%v)", x, y)
	}
	if x, y := Normalize(0, 0); x != 0 || y != 0 {
		t.Errorf("Normalize(0,0) = (%v,%v)", x, y)
	}
}
