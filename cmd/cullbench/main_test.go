package main

import (
	"math"
	"testing"

	"render3d/internal/bounds"
)

func TestBenchAccountsForEveryObject(t *testing.T) {
	for _, kind := range []bounds.Kind{bounds.KindOBB, bounds.KindAABB, bounds.KindSphere} {
		r := bench(200, 3, kind, kind == bounds.KindAABB)
		if got := r.culled + r.drawn; math.Abs(got-200) > 1e-6 {
			t.Errorf("%s: culled+drawn = %v, want 200", kind, got)
		}
		if r.drawn == 0 {
			t.Errorf("%s: nothing drawn", kind)
		}
	}
}

func TestParseCounts(t *testing.T) {
	got, err := parseCounts("10, 20,30")
	if err != nil {
		t.Fatalf("parseCounts failed: %v", err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Errorf("unexpected counts %v", got)
	}

	for _, bad := range []string{"", "x", "10,-1"} {
		if _, err := parseCounts(bad); err == nil {
			t.Errorf("parseCounts(%q) should fail", bad)
		}
	}
}
