package erosion

import (
	"math"
	"strconv"

	"erode/internal/core"
)

// Parameters reports the active configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	cfg := w.cfg
	params := cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("size", "Size", cfg.Size),
				int64Param("seed", "Seed", cfg.Seed),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				intParam("octaves", "Octaves", cfg.Terrain.Octaves),
				floatParam("frequency", "Frequency", cfg.Terrain.Frequency),
				floatParam("lacunarity", "Lacunarity", cfg.Terrain.Lacunarity),
				floatParam("persistence", "Persistence", cfg.Terrain.Persistence),
				floatParam("bias", "Sea level bias", cfg.Terrain.Bias),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				intParam("rain", "Rain per tick", cfg.RainPerTick),
				intParam("source_attempts", "Source attempts", cfg.SourceAttempts),
				floatParam("source_flux", "Source flux", cfg.SourceFlux),
				floatParam("source_min_height", "Source min height", float64(cfg.SourceMinHeight)),
			},
		},
		{
			Name: "Erosion",
			Params: []core.Parameter{
				floatParam("evaporation", "Evaporation", float64(params.Evaporation)),
				floatParam("inertia", "Inertia", float64(params.Inertia)),
				floatParam("min_slope", "Min slope", float64(params.MinSlope)),
				floatParam("capacity", "Capacity", float64(params.Capacity)),
				floatParam("deposition", "Deposition", float64(params.Deposition)),
				floatParam("erosion", "Erosion", float64(params.Erosion)),
				{Key: "variant", Label: "Variant", Type: core.ParamTypeString, Value: params.Variant.String()},
				floatParam("water_epsilon", "Water epsilon", float64(params.WaterEpsilon)),
				intParam("max_lifetime", "Max lifetime", params.MaxLifetime),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var erosionControls = []core.ParameterControl{
	{Key: "evaporation", Label: "Evaporation", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "inertia", Label: "Inertia", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "min_slope", Label: "Min slope", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, HasMin: true},
	{Key: "capacity", Label: "Capacity", Type: core.ParamTypeFloat, Step: 50, Min: 0, HasMin: true},
	{Key: "deposition", Label: "Deposition", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "erosion", Label: "Erosion", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "rain", Label: "Rain per tick", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 500, HasMin: true, HasMax: true},
	{Key: "max_lifetime", Label: "Max lifetime", Type: core.ParamTypeInt, Step: 256, Min: 0, HasMin: true},
}

// ParameterControls lists the tunables adjustable while the sim runs.
func (w *World) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), erosionControls...)
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range erosionControls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a float tunable, clamped to its control bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeFloat || math.IsNaN(value) {
		return false
	}
	v := float32(ctrl.Clamp(value))
	p := &w.cfg.Params
	switch key {
	case "evaporation":
		p.Evaporation = v
	case "inertia":
		p.Inertia = v
	case "min_slope":
		p.MinSlope = v
	case "capacity":
		p.Capacity = v
	case "deposition":
		p.Deposition = v
	case "erosion":
		p.Erosion = v
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable, clamped to its control bounds.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	switch key {
	case "rain":
		w.cfg.RainPerTick = v
	case "max_lifetime":
		w.cfg.Params.MaxLifetime = v
	default:
		return false
	}
	return true
}

// SetVariant switches the droplet update rule for subsequent ticks.
func (w *World) SetVariant(v Variant) bool {
	if v > VariantConstant {
		return false
	}
	w.cfg.Params.Variant = v
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'g', -1, 64),
	}
}
