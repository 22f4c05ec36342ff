package core

import (
	"slices"
	"testing"
)

func TestFillBernoulliDeterministic(t *testing.T) {
	a := make([]uint8, 256)
	b := make([]uint8, 256)
	FillBernoulli(NewRNG(7).Source(), a, 0.5)
	FillBernoulli(NewRNG(7).Source(), b, 0.5)
	if !slices.Equal(a, b) {
		t.Fatal("same seed should produce the same cells")
	}

	FillBernoulli(NewRNG(8).Source(), b, 0.5)
	if slices.Equal(a, b) {
		t.Fatal("different seeds should produce different cells")
	}
}

func TestFillBernoulliExtremes(t *testing.T) {
	buf := make([]uint8, 64)
	for i := range buf {
		buf[i] = 7
	}
	FillBernoulli(NewRNG(1).Source(), buf, 0)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("cell %d = %d with p=0", i, v)
		}
	}
	FillBernoulli(NewRNG(1).Source(), buf, 1)
	for i, v := range buf {
		if v != 1 {
			t.Fatalf("cell %d = %d with p=1", i, v)
		}
	}
}

func TestStreamsAreIndependent(t *testing.T) {
	a := NewStream(42, 0)
	b := NewStream(42, 1)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 32 {
		t.Fatal("streams with different ids produced identical sequences")
	}

	c := NewStream(42, 1)
	d := NewStream(42, 1)
	for i := 0; i < 32; i++ {
		if c.Float64() != d.Float64() {
			t.Fatalf("stream draw %d differs for identical seed and stream", i)
		}
	}
}
