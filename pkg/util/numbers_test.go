package util

import "testing"

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.125:    0.13,
		0.124:    0.12,
		67234.0:  67234.0,
		-1.005:   -1.0, // -1.005 is stored below -1.005, rounds toward -1.0
		0.0:      0.0,
		999.9999: 1000.0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Fatalf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestLastN(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5}
	got := LastN(s, 3)
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Fatalf("unexpected tail %v", got)
	}
	if out := LastN(s, 10); len(out) != 5 {
		t.Fatalf("expected full slice, got %v", out)
	}
	if out := LastN(nil, 3); out != nil {
		t.Fatalf("expected nil for nil input")
	}
}
