package noise

import (
	"math"
	"math/rand"
	"testing"
)

// TestFractalBounded verifies output stays in roughly [-1,1] for any layer count.
func TestFractalBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(12345)) // deterministic test RNG
	for layers := 1; layers <= 8; layers++ {
		f := NewFractal(0xDEADBEEF, layers, 1.0/32.0)
		for i := 0; i < 500; i++ {
			x := rng.Float64()*2000 - 1000
			z := rng.Float64()*2000 - 1000
			v := f.Sample2(x, z)
			if v < -1.0 || v > 1.0 {
				t.Errorf("Sample2(%f, %f) with %d layers = %f, expected in [-1,1]", x, z, layers, v)
			}
			v3 := f.Sample3(x, rng.Float64()*100, z)
			if v3 < -1.0 || v3 > 1.0 {
				t.Errorf("Sample3 with %d layers = %f, expected in [-1,1]", layers, v3)
			}
		}
	}
}

// TestFractalDeterministic verifies identical results for identical inputs.
func TestFractalDeterministic(t *testing.T) {
	a := NewFractal(42, 3, 1.0/32.0)
	b := NewFractal(42, 3, 1.0/32.0)
	var results [100]float64
	for i := range results {
		results[i] = a.Sample2(13.7, -42.1)
	}
	first := results[0]
	for i := 1; i < len(results); i++ {
		if results[i] != first {
			t.Errorf("Sample2 not deterministic: results[0]=%f, results[%d]=%f", first, i, results[i])
		}
	}
	if got := b.Sample2(13.7, -42.1); got != first {
		t.Errorf("two generators with same seed disagree: %f vs %f", got, first)
	}
}

// TestFractalSeedSensitivity verifies different seeds decorrelate the field.
func TestFractalSeedSensitivity(t *testing.T) {
	a := NewFractal(1, 3, 1.0/32.0)
	b := NewFractal(2, 3, 1.0/32.0)
	same := 0
	for i := 0; i < 50; i++ {
		x := float64(i) * 17.3
		if a.Sample2(x, -x) == b.Sample2(x, -x) {
			same++
		}
	}
	if same > 5 {
		t.Errorf("seeds 1 and 2 agree at %d/50 sample points, fields look coupled", same)
	}
}

// TestFractalContinuity verifies nearby samples stay close.
func TestFractalContinuity(t *testing.T) {
	f := NewFractal(42, 4, 1.0/32.0)
	v1 := f.Sample2(10.0, 10.0)
	v2 := f.Sample2(10.01, 10.0)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("field not continuous: Sample2(10.0)=%f, Sample2(10.01)=%f, diff=%f >= 0.1", v1, v2, diff)
	}
}

func BenchmarkFractalSample2(b *testing.B) {
	f := NewFractal(0xDEADBEEF, 3, 1.0/32.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Sample2(float64(i), float64(-i))
	}
}
