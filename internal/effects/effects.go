// Package effects computes the decorative background animations.
package effects

import (
	"fmt"
	"math/rand/v2"
)

// DefaultParticles is the number of floating particles on the page.
const DefaultParticles = 20

// Particle is one floating dot. Positions are in viewport units, times in seconds.
type Particle struct {
	Left     float64 // vw
	Top      float64 // vh
	Duration float64
	Delay    float64
}

// Style returns the inline CSS for the particle.
func (p Particle) Style() string {
	return fmt.Sprintf("left:%.2fvw;top:%.2fvh;animation-duration:%.2fs;animation-delay:%.2fs",
		p.Left, p.Top, p.Duration, p.Delay)
}

// Particles scatters n particles using rng. Durations fall in [10,30) seconds
// and delays in [0,10).
func Particles(n int, rng *rand.Rand) []Particle {
	if n <= 0 {
		return nil
	}
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			Left:     rng.Float64() * 100,
			Top:      rng.Float64() * 100,
			Duration: 10 + rng.Float64()*20,
			Delay:    rng.Float64() * 10,
		}
	}
	return ps
}

// Parallax is the transform of a floating icon at a scroll offset.
type Parallax struct {
	TranslateY float64 // px
	Rotate     float64 // deg
}

// ParallaxAt returns the transform of the index-th floating icon when the
// page is scrolled by scrollY. Later icons move faster.
func ParallaxAt(scrollY float64, index int) Parallax {
	speed := 0.5 + float64(index)*0.1
	return Parallax{
		TranslateY: -(scrollY * speed),
		Rotate:     scrollY * 0.1,
	}
}

// Transform returns the CSS transform value.
func (p Parallax) Transform() string {
	return fmt.Sprintf("translateY(%gpx) rotate(%gdeg)", p.TranslateY, p.Rotate)
}
