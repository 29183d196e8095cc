package main

import (
	"math"
	"testing"
)

const floatTolerance = 1e-6

func approxEq(t *testing.T, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) >= floatTolerance {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func releasedAt(t float32) *float32 { return &t }
