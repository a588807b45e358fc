package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGBInterpolator(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		t    float64
		want string
	}{
		{"start", "#000000", "#ffffff", 0, "#000000"},
		{"end", "#000000", "#ffffff", 1, "#ffffff"},
		{"midpoint", "#000000", "#ffffff", 0.5, "#808080"},
		{"clamped below", "#000000", "#ffffff", -1, "#000000"},
		{"clamped above", "#000000", "#ffffff", 2, "#ffffff"},
		{"bad start", "green", "#ffffff", 0.5, "green"},
		{"bad end", "#000000", "white", 0.5, "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RGBInterpolator{}.Interpolate(tt.a, tt.b, tt.t))
		})
	}
}
