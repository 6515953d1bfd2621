// Package param is the parameter surface of the polar engine: the host
// visible parameter layout, a lock-free value store that publishes engine
// configurations, A/B layers and the cross-instance sync store.
package param

import (
	"strconv"

	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/filter/crossover"
	"github.com/AustrianAudioGmbH/PolarDesigner-sub000/dsp/polar"
)

// Kind is the value type of a parameter.
type Kind int

const (
	Float Kind = iota
	Int
	Bool
)

// Parameter IDs. Hosts store automation under these names.
const (
	TrimPosition   = "trimPosition"
	NrBands        = "nrBands"
	AllowBackwards = "allowBackwardsPattern"
	Proximity      = "proximity"
	ProximityOn    = "proximityOnOff"
	ZeroLatency    = "zeroLatencyMode"
	SyncChannel    = "syncChannel"
	FfDfEq         = "ffDfEq"
)

// XOverF returns the ID of crossover slider i (0-based).
func XOverF(i int) string { return "xOverF" + strconv.Itoa(i+1) }

// Alpha returns the ID of the directivity of band b (0-based).
func Alpha(b int) string { return "alpha" + strconv.Itoa(b+1) }

// Solo returns the ID of the solo switch of band b (0-based).
func Solo(b int) string { return "solo" + strconv.Itoa(b+1) }

// Mute returns the ID of the mute switch of band b (0-based).
func Mute(b int) string { return "mute" + strconv.Itoa(b+1) }

// Gain returns the ID of the gain of band b (0-based).
func Gain(b int) string { return "gain" + strconv.Itoa(b+1) }

// Info describes one parameter.
type Info struct {
	ID          string
	Name        string
	Kind        Kind
	Min, Max    float64
	Default     float64
	Unit        string
	Automatable bool
	// Layered parameters are part of A/B snapshots and cross-instance sync.
	Layered bool
}

// Layout returns the parameter layout in host order.
func Layout() []Info {
	var out []Info
	out = append(out, Info{
		ID: TrimPosition, Name: "Trim Position", Kind: Float,
		Min: 0, Max: 1,
	})

	defaults := crossover.DefaultFrequencies(crossover.MaxBands)
	for i := 0; i < crossover.MaxCrossovers; i++ {
		out = append(out, Info{
			ID: XOverF(i), Name: "Xover" + strconv.Itoa(i+1), Kind: Float,
			Min: 0, Max: 1,
			Default:     crossover.ToNormalized(crossover.MaxBands, i, defaults[i]),
			Automatable: true, Layered: true,
		})
	}
	for b := 0; b < polar.MaxBands; b++ {
		out = append(out, Info{
			ID: Alpha(b), Name: "Polar" + strconv.Itoa(b+1), Kind: Float,
			Min: -0.5, Max: 1,
			Automatable: true, Layered: true,
		})
	}
	for b := 0; b < polar.MaxBands; b++ {
		out = append(out, Info{
			ID: Solo(b), Name: "Solo" + strconv.Itoa(b+1), Kind: Bool,
			Min: 0, Max: 1,
			Automatable: true, Layered: true,
		})
	}
	for b := 0; b < polar.MaxBands; b++ {
		out = append(out, Info{
			ID: Mute(b), Name: "Mute" + strconv.Itoa(b+1), Kind: Bool,
			Min: 0, Max: 1,
			Automatable: true, Layered: true,
		})
	}
	for b := 0; b < polar.MaxBands; b++ {
		out = append(out, Info{
			ID: Gain(b), Name: "Gain" + strconv.Itoa(b+1), Kind: Float,
			Min: polar.MinGainDB, Max: polar.MaxGainDB, Unit: "dB",
			Automatable: true, Layered: true,
		})
	}

	return append(out,
		Info{
			ID: NrBands, Name: "Nr. of Bands", Kind: Int,
			Min: 0, Max: crossover.MaxBands - 1, Default: crossover.MaxBands - 1,
			Automatable: true, Layered: true,
		},
		Info{
			ID: AllowBackwards, Name: "Allow Reverse Patterns", Kind: Bool,
			Min: 0, Max: 1,
		},
		Info{
			ID: Proximity, Name: "Proximity", Kind: Float,
			Min: -1, Max: 1,
			Automatable: true, Layered: true,
		},
		Info{
			ID: ProximityOn, Name: "Proximity On", Kind: Bool,
			Min: 0, Max: 1,
			Automatable: true, Layered: true,
		},
		Info{
			ID: ZeroLatency, Name: "Zero Latency", Kind: Bool,
			Min: 0, Max: 1,
			Automatable: true,
		},
		Info{
			ID: SyncChannel, Name: "Sync Channel", Kind: Int,
			Min: 0, Max: SyncChannels,
		},
		Info{
			ID: FfDfEq, Name: "Free/Diffuse Field EQ", Kind: Int,
			Min: 0, Max: 2,
			Layered: true,
		},
	)
}

// StepCount returns the number of discrete steps, 0 for continuous values.
func (s Info) StepCount() int {
	if s.Kind == Float {
		return 0
	}
	return int(s.Max - s.Min)
}
