package percent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name          string
		preset        string
		override      string
		want          string
		presetEnabled bool
	}{
		{name: "empty override uses preset", preset: "10%", override: "", want: "10%", presetEnabled: true},
		{name: "sub-100 override is discarded", preset: "10%", override: "50", want: "10%"},
		{name: "override above threshold", preset: "10%", override: "150", want: "150"},
		{name: "override at threshold", preset: "10%", override: "100", want: "100"},
		{name: "non-numeric override is discarded", preset: "200", override: "lots", want: "200"},
		{name: "whitespace override counts as empty", preset: "200", override: "  ", want: "200", presetEnabled: true},
		{name: "decimal override", preset: "150", override: "250.5", want: "250.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("150")
			r.SetPreset(tt.preset)
			r.SetOverride(tt.override)

			got := r.Resolve()
			assert.Equal(t, tt.want, got.Value)
			assert.Equal(t, tt.presetEnabled, got.PresetEnabled)
		})
	}
}

func TestResolver_UsesCurrentPreset(t *testing.T) {
	r := NewResolver("150")
	r.SetOverride("50")
	assert.Equal(t, "150", r.Resolve().Value)

	r.SetPreset("300")
	assert.Equal(t, "300", r.Resolve().Value)
}

func TestResolver_Reset(t *testing.T) {
	r := NewResolver("150")
	r.SetPreset("300")
	r.SetOverride("400")
	r.Reset()

	assert.Equal(t, "150", r.Preset())
	assert.Empty(t, r.Override())
	assert.Equal(t, Resolution{Value: "150", PresetEnabled: true}, r.Resolve())
}
