package glade

import "testing"

func TestPositionHashDeterministic(t *testing.T) {
	for _, c := range []struct{ x, y int64 }{
		{0, 0}, {1, 0}, {0, 1}, {-5, 12}, {1 << 40, -(1 << 40)},
	} {
		a := PositionHash(c.x, c.y)
		b := PositionHash(c.x, c.y)
		if a != b {
			t.Errorf("PositionHash(%d, %d) not stable: %d vs %d", c.x, c.y, a, b)
		}
	}
}

func TestPositionHashAsymmetric(t *testing.T) {
	if PositionHash(3, 7) == PositionHash(7, 3) {
		t.Error("PositionHash(3,7) should differ from PositionHash(7,3)")
	}
}

func TestPositionHashNeighborsDiffer(t *testing.T) {
	// Adjacent cells must not collide; a run of equal hashes would produce
	// visible decoration banding.
	seen := make(map[uint64][2]int64)
	for x := int64(-20); x <= 20; x++ {
		for y := int64(-20); y <= 20; y++ {
			h := PositionHash(x, y)
			if prev, ok := seen[h]; ok {
				t.Fatalf("hash collision: (%d,%d) and (%d,%d) both map to %d",
					x, y, prev[0], prev[1], h)
			}
			seen[h] = [2]int64{x, y}
		}
	}
}

func TestHashFloatRange(t *testing.T) {
	for x := int64(0); x < 1000; x++ {
		f := HashFloat(PositionHash(x, -x))
		if f < 0 || f >= 1 {
			t.Fatalf("HashFloat out of range at x=%d: %v", x, f)
		}
	}
}

func TestHashFloatDistribution(t *testing.T) {
	// Coarse sanity check: over a large sample, roughly half the values land
	// below 0.5. A broken shift would skew this badly.
	const n = 10000
	below := 0
	for x := int64(0); x < n; x++ {
		if HashFloat(PositionHash(x, 37)) < 0.5 {
			below++
		}
	}
	if below < n*4/10 || below > n*6/10 {
		t.Errorf("distribution skewed: %d of %d below 0.5", below, n)
	}
}

func TestHashPickInRange(t *testing.T) {
	for x := int64(0); x < 500; x++ {
		p := hashPick(PositionHash(x, 9), decoKindCount)
		if p < 0 || p >= decoKindCount {
			t.Fatalf("hashPick out of range at x=%d: %d", x, p)
		}
	}
}

func BenchmarkPositionHash(b *testing.B) {
	b.ReportAllocs()
	var sink uint64
	for i := 0; i < b.N; i++ {
		sink ^= PositionHash(int64(i), int64(-i))
	}
	_ = sink
}
