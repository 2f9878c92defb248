package core

import "testing"

func TestParameterControlClamp(t *testing.T) {
	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	if got := ctrl.Clamp(-2); got != 0 {
		t.Fatalf("expected clamp to min, got %f", got)
	}
	if got := ctrl.Clamp(3); got != 1 {
		t.Fatalf("expected clamp to max, got %f", got)
	}
	if got := (ParameterControl{}).Clamp(42); got != 42 {
		t.Fatalf("unbounded control should not clamp, got %f", got)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{{Key: "x", Value: "1"}}},
		{Name: "b", Params: []Parameter{{Key: "y", Value: "2"}}},
	}}
	p, ok := snap.Lookup("y")
	if !ok || p.Value != "2" {
		t.Fatalf("expected to find y=2, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.Lookup("z"); ok {
		t.Fatal("unexpected hit for missing key")
	}
}
