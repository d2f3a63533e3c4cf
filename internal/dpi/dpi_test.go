package dpi

import "testing"

func TestNewRejectsNonPositiveResolution(t *testing.T) {
	cases := []struct{ h, v int }{
		{0, 300},
		{300, 0},
		{-1, 300},
		{300, -1},
	}
	for _, c := range cases {
		if _, err := New(c.h, c.v); err == nil {
			t.Fatalf("expected error for %dx%d", c.h, c.v)
		}
	}
}

func TestFactorAt300IsOne(t *testing.T) {
	d, err := New(300, 300)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Factor() != 1.0 {
		t.Fatalf("expected factor 1.0, got %v", d.Factor())
	}
}

func TestFactorUsesTheSmallerAxis(t *testing.T) {
	d, err := New(600, 150)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := d.Factor(), 0.5; got != want {
		t.Fatalf("factor should track the smaller axis: got %v, want %v", got, want)
	}
}
