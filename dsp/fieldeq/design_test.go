package fieldeq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/fir"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/pattern"
)

func TestResponseModel(t *testing.T) {
	for _, m := range []Mode{None, FreeField, DiffuseField} {
		for _, p := range pattern.All() {
			assert.InDelta(t, 1, Response(m, p.Value(), 0), 1e-12, "%s %s at DC", m, p)
		}
	}
	// Omni rises on axis and falls in the diffuse field.
	assert.Greater(t, Response(FreeField, 0, 15000), 1.2)
	assert.Less(t, Response(DiffuseField, 0, 15000), 1.0)
	// The gradient component rolls off.
	assert.Less(t, Response(FreeField, 1, 15000), 0.6)
	// Reversed patterns are mirrored, not different.
	assert.Equal(t, Response(FreeField, 0.5, 8000), Response(FreeField, -0.5, 8000))
	assert.Equal(t, 1.0, Response(None, 0.7, 12000))
}

func TestTargetGainLimits(t *testing.T) {
	for _, m := range Modes {
		for _, p := range pattern.All() {
			for f := 0.0; f <= DesignRate/2; f += 250 {
				g := targetGain(m, p.Value(), f)
				db := 20 * math.Log10(g)
				require.LessOrEqual(t, math.Abs(db), MaxCorrectionDB+1e-9)
			}
			assert.InDelta(t, 1, targetGain(m, p.Value(), DesignRate/2), 1e-12)
		}
	}
}

func TestDesignNoneIsImpulse(t *testing.T) {
	h, err := Design(None, 0.3)
	require.NoError(t, err)
	require.Len(t, h, KernelLength)
	assert.Equal(t, 1.0, h[0])
	for _, v := range h[1:] {
		assert.Equal(t, 0.0, v)
	}
	_, err = Design(Mode(9), 0)
	assert.Error(t, err)
}

func TestDesignMatchesTarget(t *testing.T) {
	for _, m := range Modes {
		for _, p := range []pattern.Pattern{pattern.Omni, pattern.Cardioid, pattern.FigureEight} {
			h, err := Design(m, p.Value())
			require.NoError(t, err)
			require.Len(t, h, KernelLength)
			for _, f := range []float64{100, 1000, 5000, 10000, 15000} {
				want := 20 * math.Log10(targetGain(m, p.Value(), f))
				got := fir.MagnitudeDB(h, f, DesignRate)
				assert.InDelta(t, want, got, 0.2, "%s %s at %v Hz", m, p, f)
			}
		}
	}
}

func TestDesignIsMinimumPhase(t *testing.T) {
	h, err := Design(FreeField, 1)
	require.NoError(t, err)
	var head, total float64
	for i, v := range h {
		e := v * v
		total += e
		if i < 32 {
			head += e
		}
	}
	assert.Greater(t, head/total, 0.9, "energy must be concentrated at the start")
	assert.InDelta(t, 0, h[len(h)-1], 1e-12, "tail must be faded")
}
