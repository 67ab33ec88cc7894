// Package percent derives the single effective time modifier from the preset
// selector and the free-form override field.
package percent

import (
	"strconv"
	"strings"
)

// Threshold is the smallest override that takes effect.
const Threshold = 100

// Resolution is the outcome of Resolve. PresetEnabled mirrors whether the
// preset selector accepts input.
type Resolution struct {
	Value         string `json:"value"`
	PresetEnabled bool   `json:"preset_enabled"`
}

// Resolver holds the two conflicting inputs.
type Resolver struct {
	defaultPreset string
	preset        string
	override      string
}

func NewResolver(defaultPreset string) *Resolver {
	return &Resolver{defaultPreset: defaultPreset, preset: defaultPreset}
}

func (r *Resolver) SetPreset(preset string) {
	r.preset = preset
}

func (r *Resolver) SetOverride(override string) {
	r.override = override
}

func (r *Resolver) Preset() string {
	return r.preset
}

func (r *Resolver) Override() string {
	return r.override
}

// Reset restores the default preset and clears the override.
func (r *Resolver) Reset() {
	r.preset = r.defaultPreset
	r.override = ""
}

// Resolve returns the effective value. A non-empty override disables the
// preset selector. Only an override of Threshold or more is used; a smaller
// or non-numeric override is dropped in favour of the preset's current value.
func (r *Resolver) Resolve() Resolution {
	override := strings.TrimSpace(r.override)
	if override == "" {
		return Resolution{Value: r.preset, PresetEnabled: true}
	}
	if v, err := strconv.ParseFloat(override, 64); err == nil && v >= Threshold {
		return Resolution{Value: override, PresetEnabled: false}
	}
	return Resolution{Value: r.preset, PresetEnabled: false}
}
