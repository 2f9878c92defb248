package erosion

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"

	"erode/internal/core"

	"github.com/go-gl/mathgl/mgl32"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Size = 32
	cfg.Seed = 21
	cfg.SourceAttempts = 40
	cfg.SourceFlux = 0.25
	return cfg
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return w
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	cfg := smallConfig()
	cfg.Size = 0
	if _, err := NewWithConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for zero size, got %v", err)
	}
	cfg = smallConfig()
	cfg.Params.Erosion = -0.5
	if _, err := NewWithConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative rate, got %v", err)
	}
}

func TestResetDeterministic(t *testing.T) {
	a := newTestWorld(t, smallConfig())
	b := newTestWorld(t, smallConfig())

	if !slices.Equal(a.Heights(), b.Heights()) {
		t.Fatal("identical configs should generate identical terrain")
	}
	if len(a.Sources()) != len(b.Sources()) {
		t.Fatalf("source counts differ: %d vs %d", len(a.Sources()), len(b.Sources()))
	}
	for i := 0; i < 40; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Heights(), b.Heights()) {
		t.Fatal("identical runs diverged")
	}
	if !slices.Equal(a.Droplets(), b.Droplets()) {
		t.Fatal("droplet pools diverged")
	}

	initial := append([]float32(nil), a.Heights()...)
	a.Reset(0)
	if a.Tick() != 0 || len(a.Droplets()) != 0 || a.Stats() != (Stats{}) {
		t.Fatalf("reset should clear ticks, droplets and stats: tick=%d live=%d", a.Tick(), len(a.Droplets()))
	}
	if slices.Equal(initial, a.Heights()) {
		t.Fatal("erosion should have altered the terrain before reset")
	}
	a.Reset(999)
	if slices.Equal(b.Heights(), a.Heights()) {
		t.Fatal("an explicit seed should change the terrain")
	}
}

func TestStepSpawnsRain(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 3
	cfg.SourceAttempts = 0
	cfg.Params.Evaporation = 0
	cfg.Params.MaxLifetime = 0
	w := newTestWorld(t, cfg)

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if got := len(w.Droplets()); got != 15 {
		t.Fatalf("expected 15 droplets, got %d", got)
	}
	if w.Stats().Spawned != 15 || w.Tick() != 5 {
		t.Fatalf("unexpected stats %+v tick %d", w.Stats(), w.Tick())
	}
}

func TestStepEmitsFromSources(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 0
	cfg.SourceAttempts = 4
	cfg.SourceMinHeight = -100
	cfg.SourceFlux = 0.5
	cfg.Params.Evaporation = 0
	w := newTestWorld(t, cfg)

	if len(w.Sources()) != 4 {
		t.Fatalf("every attempt should succeed with a low threshold, got %d", len(w.Sources()))
	}
	w.Step()
	if n := len(w.Droplets()); n != 0 {
		t.Fatalf("half a droplet per source should not emit on the first tick, got %d", n)
	}
	w.Step()
	if n := len(w.Droplets()); n != 4 {
		t.Fatalf("expected one droplet per source on tick 2, got %d", n)
	}
}

func TestEvaporatedDropletsAreRemoved(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 4
	cfg.SourceAttempts = 0
	cfg.Params.Variant = VariantConstant
	cfg.Params.Evaporation = 1
	w := newTestWorld(t, cfg)

	w.Step()
	if n := len(w.Droplets()); n != 0 {
		t.Fatalf("fully evaporated droplets should be gone, %d remain", n)
	}
	if w.Stats().Evaporated != 4 {
		t.Fatalf("expected 4 evaporated, got %+v", w.Stats())
	}
}

func TestWaterNeverBelowEpsilonAfterStep(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.Evaporation = 0.2
	cfg.Params.MaxLifetime = 120
	w := newTestWorld(t, cfg)
	for i := 0; i < 300; i++ {
		w.Step()
		for _, d := range w.Droplets() {
			if d.Water < w.Config().Params.WaterEpsilon {
				t.Fatalf("tick %d: droplet with water %g still live", i, d.Water)
			}
		}
	}
	if w.Stats().Removed() == 0 {
		t.Fatal("expected some droplets to be removed over 300 ticks")
	}
}

func TestLifetimeCapExpiresDroplets(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 1
	cfg.SourceAttempts = 0
	cfg.Params.Evaporation = 0
	cfg.Params.MaxLifetime = 3
	w := newTestWorld(t, cfg)

	for i := 0; i < 3; i++ {
		w.Step()
	}
	if n := len(w.Droplets()); n != 2 {
		t.Fatalf("expected the oldest droplet to expire, %d live", n)
	}
	if w.Stats().Expired != 1 {
		t.Fatalf("expected one expiry, got %+v", w.Stats())
	}
}

func TestCorruptedDropletIsDropped(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 0
	cfg.SourceAttempts = 0
	w := newTestWorld(t, cfg)
	for i := range w.Heights() {
		w.Heights()[i] = float32(math.NaN())
	}
	w.AddDroplet(NewDroplet(mgl32.Vec2{4, 4}))
	w.Spawn(mgl32.Vec2{8, 8})

	w.Erode()
	if n := len(w.Droplets()); n != 0 {
		t.Fatalf("non-finite droplets should be removed, %d remain", n)
	}
	if w.Stats().Corrupted != 2 {
		t.Fatalf("expected 2 corrupted, got %+v", w.Stats())
	}
}

func TestWorldImplementsSim(t *testing.T) {
	var sim core.Sim = newTestWorld(t, smallConfig())
	if sim.Name() != "erosion" {
		t.Fatalf("unexpected name %q", sim.Name())
	}
	if s := sim.Size(); s.W != 32 || s.H != 32 {
		t.Fatalf("unexpected size %+v", s)
	}
	if len(sim.Cells()) != 32*32 {
		t.Fatalf("display buffer has %d cells", len(sim.Cells()))
	}

	factory, ok := core.Sims()["erosion"]
	if !ok {
		t.Fatal("erosion should register itself")
	}
	built, err := factory(map[string]string{"size": "8", "source_attempts": "0"})
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if built.Size().W != 8 {
		t.Fatalf("factory ignored size override: %+v", built.Size())
	}
	if _, err := factory(map[string]string{"size": "1"}); err == nil {
		t.Fatal("factory should reject a 1×1 grid")
	}
}

func TestRunScenarioTracksMass(t *testing.T) {
	cfg := smallConfig()
	cfg.RainPerTick = 20
	res, err := RunScenario(cfg, 150)
	if err != nil {
		t.Fatalf("RunScenario: %v", err)
	}
	if res.Steps != 150 || res.Stats.Spawned == 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Stats.Eroded == 0 {
		t.Fatal("expected some erosion on generated terrain")
	}
	want := res.Stats.Deposited - res.Stats.Eroded
	tol := 1e-3 + 1e-3*(res.Stats.Deposited+res.Stats.Eroded)
	if math.Abs(res.MassDelta-want) > tol {
		t.Fatalf("mass delta %f does not match deposited-eroded %f", res.MassDelta, want)
	}
	if res.LandFraction <= 0 || res.LandFraction >= 1 {
		t.Fatalf("expected an island, land fraction %f", res.LandFraction)
	}
	if res.MinHeight >= res.MaxHeight {
		t.Fatalf("degenerate height range [%f, %f]", res.MinHeight, res.MaxHeight)
	}

	cfg.Size = -1
	if _, err := RunScenario(cfg, 1); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected wrapped config error, got %v", err)
	}
}

func TestStatusLineReportsCounts(t *testing.T) {
	w := newTestWorld(t, smallConfig())
	w.Step()
	if w.SourceCount() != len(w.Sources()) {
		t.Fatalf("SourceCount %d != %d", w.SourceCount(), len(w.Sources()))
	}
	line := w.StatusLine()
	want := fmt.Sprintf("tick 1  drops %d  sources %d", len(w.Droplets()), len(w.Sources()))
	if !strings.HasPrefix(line, want) {
		t.Fatalf("status line %q does not start with %q", line, want)
	}
}

func TestResetReplacesSources(t *testing.T) {
	w := newTestWorld(t, smallConfig())
	placed := w.SourceCount()
	if placed == 0 {
		t.Fatal("expected the test terrain to host sources")
	}
	w.Reset(0)
	w.Reset(0)
	if got := w.SourceCount(); got != placed {
		t.Fatalf("repeated resets should replace sources: got %d, want %d", got, placed)
	}
}
