package runner

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/astrarun/internal/config"
	"github.com/vovakirdan/astrarun/internal/core"
)

// WeatherKind is the ambient weather category.
type WeatherKind int

const (
	WeatherClear WeatherKind = iota
	WeatherRain
	WeatherStorm
	WeatherNeon
)

// WeatherKinds is the full set a transition draws from.
var WeatherKinds = [...]WeatherKind{WeatherClear, WeatherRain, WeatherStorm, WeatherNeon}

// String returns the weather name.
func (w WeatherKind) String() string {
	switch w {
	case WeatherClear:
		return "clear"
	case WeatherRain:
		return "rain"
	case WeatherStorm:
		return "storm"
	case WeatherNeon:
		return "neon"
	default:
		return "unknown"
	}
}

// ParticleShape selects how a particle is drawn.
type ParticleShape int

const (
	ShapeDot ParticleShape = iota
	ShapeStreak
)

// Particle is a purely cosmetic weather element.
type Particle struct {
	Pos   mgl64.Vec2
	Vel   mgl64.Vec2
	Size  float64 // Streak length or dot radius
	Shape ParticleShape
	Tint  core.Color
}

// clearDrift is the downward drift of calm-weather specks, units per second.
const clearDrift = 12

// Weather cycles weather kinds and moves the particle field.
type Weather struct {
	rng    *rand.Rand
	cfg    config.WeatherConfig
	width  float64
	height float64

	kind      WeatherKind
	timer     float64
	particles []Particle
}

// NewWeather creates a weather system over a width x height field.
func NewWeather(rng *rand.Rand, cfg config.GameConfig) *Weather {
	w := &Weather{
		rng:    rng,
		cfg:    cfg.Weather,
		width:  cfg.World.Width,
		height: cfg.World.Height,
	}
	w.Reset()
	return w
}

// Reset returns to clear weather with the initial countdown.
func (w *Weather) Reset() {
	w.kind = WeatherClear
	w.timer = w.cfg.InitialDelay
	w.regenerate()
}

// Update moves particles, then runs the transition countdown.
// It reports whether the weather changed.
func (w *Weather) Update(delta float64) bool {
	for i := range w.particles {
		w.move(&w.particles[i], delta)
	}

	w.timer -= delta
	if w.timer > 0 {
		return false
	}
	w.kind = WeatherKinds[w.rng.Intn(len(WeatherKinds))]
	w.timer = w.cfg.MinInterval + w.rng.Float64()*w.cfg.IntervalJitter
	w.regenerate()
	return true
}

// Kind returns the current weather.
func (w *Weather) Kind() WeatherKind {
	return w.kind
}

// Timer returns the time left until the next transition.
func (w *Weather) Timer() float64 {
	return w.timer
}

// Particles returns the live particle field. Callers must not modify it.
func (w *Weather) Particles() []Particle {
	return w.particles
}

func (w *Weather) regenerate() {
	count := w.cfg.StormParticles
	if w.kind == WeatherClear {
		count = w.cfg.CalmParticles
	}
	w.particles = w.particles[:0]
	for range count {
		w.particles = append(w.particles, w.newParticle())
	}
}

func (w *Weather) newParticle() Particle {
	r := w.rng
	switch w.kind {
	case WeatherRain:
		return Particle{
			Pos:   mgl64.Vec2{r.Float64() * w.width, r.Float64() * w.height},
			Vel:   mgl64.Vec2{0, 600 + r.Float64()*300},
			Size:  16 + r.Float64()*12,
			Shape: ShapeStreak,
			Tint:  core.ColorSky,
		}
	case WeatherStorm:
		return Particle{
			Pos:   mgl64.Vec2{r.Float64() * w.width, r.Float64() * w.height * 0.6},
			Vel:   mgl64.Vec2{-40 - r.Float64()*80, 80 + r.Float64()*100},
			Size:  1.2 + r.Float64()*2,
			Shape: ShapeDot,
			Tint:  core.ColorBrightYellow,
		}
	case WeatherNeon:
		p := Particle{
			Pos:   mgl64.Vec2{r.Float64() * w.width, r.Float64() * w.height},
			Vel:   mgl64.Vec2{-30 - r.Float64()*50, 0},
			Size:  2 + r.Float64()*2,
			Shape: ShapeDot,
			Tint:  core.ColorSky,
		}
		if r.Float64() > 0.5 {
			p.Tint = core.ColorPink
		}
		return p
	default:
		return Particle{
			Pos:   mgl64.Vec2{r.Float64() * w.width, r.Float64() * w.height * 0.4},
			Vel:   mgl64.Vec2{0, clearDrift},
			Size:  1 + r.Float64(),
			Shape: ShapeDot,
			Tint:  core.ColorDim,
		}
	}
}

// move applies the motion law of the current weather and wraps the particle.
func (w *Weather) move(p *Particle, delta float64) {
	p.Pos = p.Pos.Add(p.Vel.Mul(delta))

	switch w.kind {
	case WeatherRain:
		if p.Pos.Y() > w.height {
			p.Pos = mgl64.Vec2{w.rng.Float64() * w.width, -p.Size}
		}
	case WeatherStorm:
		if p.Pos.X() < 0 {
			p.Pos[0] = w.width
		}
		if p.Pos.Y() > w.height*0.7 {
			p.Pos[1] = w.rng.Float64() * w.height * 0.4
		}
	case WeatherNeon:
		if p.Pos.X() < -p.Size {
			p.Pos = mgl64.Vec2{w.width + p.Size, w.rng.Float64() * w.height}
		}
	default:
		if p.Pos.Y() > w.height*0.5 {
			p.Pos[1] = w.rng.Float64() * w.height * 0.4
		}
	}
}
