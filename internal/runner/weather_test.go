package runner

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/astrarun/internal/config"
)

func newTestWeather(seed int64) (*Weather, config.GameConfig) {
	cfg := config.DefaultGameConfig()
	return NewWeather(rand.New(rand.NewSource(seed)), cfg), cfg
}

func TestWeatherInitialState(t *testing.T) {
	w, _ := newTestWeather(1)
	if w.Kind() != WeatherClear {
		t.Errorf("initial kind = %v", w.Kind())
	}
	if w.Timer() != 10 {
		t.Errorf("initial timer = %v", w.Timer())
	}
	if len(w.Particles()) != 12 {
		t.Errorf("clear weather has %d particles, want 12", len(w.Particles()))
	}
}

func TestWeatherTransitions(t *testing.T) {
	w, _ := newTestWeather(2)
	seen := map[WeatherKind]bool{}

	if w.Update(9.99) {
		t.Fatal("transition before countdown elapsed")
	}
	for i := 0; i < 200; i++ {
		// jump straight to the transition
		if !w.Update(w.Timer()) {
			t.Fatal("expected a transition")
		}
		seen[w.Kind()] = true

		if w.Timer() < 12 || w.Timer() >= 22 {
			t.Fatalf("timer %v outside [12, 22)", w.Timer())
		}
		want := 60
		if w.Kind() == WeatherClear {
			want = 12
		}
		if len(w.Particles()) != want {
			t.Fatalf("%v weather has %d particles, want %d", w.Kind(), len(w.Particles()), want)
		}
	}
	for _, k := range WeatherKinds {
		if !seen[k] {
			t.Errorf("weather %v never chosen", k)
		}
	}
}

func TestParticleMotionLaws(t *testing.T) {
	w, cfg := newTestWeather(3)
	width, height := cfg.World.Width, cfg.World.Height

	tests := []struct {
		name  string
		kind  WeatherKind
		p     Particle
		check func(t *testing.T, p Particle)
	}{
		{
			name: "rain wraps to top",
			kind: WeatherRain,
			p:    Particle{Pos: mgl64.Vec2{100, height - 1}, Vel: mgl64.Vec2{0, 800}, Size: 20, Shape: ShapeStreak},
			check: func(t *testing.T, p Particle) {
				if p.Pos.Y() != -20 || p.Pos.X() < 0 || p.Pos.X() >= width {
					t.Errorf("rain wrap pos = %v", p.Pos)
				}
			},
		},
		{
			name: "storm wraps right and lifts",
			kind: WeatherStorm,
			p:    Particle{Pos: mgl64.Vec2{0.5, height*0.7 - 0.5}, Vel: mgl64.Vec2{-100, 100}},
			check: func(t *testing.T, p Particle) {
				if p.Pos.X() != width {
					t.Errorf("storm x = %v, want %v", p.Pos.X(), width)
				}
				if p.Pos.Y() < 0 || p.Pos.Y() >= height*0.4 {
					t.Errorf("storm y = %v", p.Pos.Y())
				}
			},
		},
		{
			name: "neon wraps past radius",
			kind: WeatherNeon,
			p:    Particle{Pos: mgl64.Vec2{-2.9, 50}, Vel: mgl64.Vec2{-50, 0}, Size: 3},
			check: func(t *testing.T, p Particle) {
				if p.Pos.X() != width+3 {
					t.Errorf("neon x = %v, want %v", p.Pos.X(), width+3)
				}
			},
		},
		{
			name: "clear drifts down and resets",
			kind: WeatherClear,
			p:    Particle{Pos: mgl64.Vec2{10, height*0.5 - 0.05}, Vel: mgl64.Vec2{0, clearDrift}},
			check: func(t *testing.T, p Particle) {
				if p.Pos.Y() >= height*0.4 {
					t.Errorf("clear y = %v", p.Pos.Y())
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w.kind = tt.kind
			w.timer = 100
			w.particles = []Particle{tt.p}
			w.Update(0.01)
			tt.check(t, w.Particles()[0])
		})
	}
}

func TestParticlesMoveWithoutWrap(t *testing.T) {
	w, _ := newTestWeather(4)
	w.kind = WeatherRain
	w.timer = 100
	w.particles = []Particle{{Pos: mgl64.Vec2{10, 10}, Vel: mgl64.Vec2{0, 600}}}

	w.Update(0.01)
	if got := w.Particles()[0].Pos; !approxEqual(got.Y(), 16) || got.X() != 10 {
		t.Errorf("pos = %v, want (10, 16)", got)
	}
}
