package effects

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestParticlesRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	ps := Particles(DefaultParticles, rng)
	if len(ps) != DefaultParticles {
		t.Fatalf("got %d particles, want %d", len(ps), DefaultParticles)
	}
	for i, p := range ps {
		if p.Left < 0 || p.Left >= 100 || p.Top < 0 || p.Top >= 100 {
			t.Errorf("particle %d position out of viewport: %+v", i, p)
		}
		if p.Duration < 10 || p.Duration >= 30 {
			t.Errorf("particle %d duration %v outside [10,30)", i, p.Duration)
		}
		if p.Delay < 0 || p.Delay >= 10 {
			t.Errorf("particle %d delay %v outside [0,10)", i, p.Delay)
		}
	}
}

func TestParticlesDeterministicForSeed(t *testing.T) {
	a := Particles(5, rand.New(rand.NewPCG(7, 7)))
	b := Particles(5, rand.New(rand.NewPCG(7, 7)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs for same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParticlesNone(t *testing.T) {
	if ps := Particles(0, rand.New(rand.NewPCG(1, 1))); ps != nil {
		t.Errorf("Particles(0) = %v, want nil", ps)
	}
}

func TestParallaxAt(t *testing.T) {
	tests := []struct {
		y     float64
		index int
		want  Parallax
	}{
		{0, 0, Parallax{TranslateY: 0, Rotate: 0}},
		{100, 0, Parallax{TranslateY: -50, Rotate: 10}},
		{100, 2, Parallax{TranslateY: -70, Rotate: 10}},
	}
	for _, tt := range tests {
		got := ParallaxAt(tt.y, tt.index)
		if math.Abs(got.TranslateY-tt.want.TranslateY) > 1e-9 || math.Abs(got.Rotate-tt.want.Rotate) > 1e-9 {
			t.Errorf("ParallaxAt(%v, %d) = %+v, want %+v", tt.y, tt.index, got, tt.want)
		}
	}
}

func TestParallaxTransform(t *testing.T) {
	got := Parallax{TranslateY: -50, Rotate: 10}.Transform()
	want := "translateY(-50px) rotate(10deg)"
	if got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
}
