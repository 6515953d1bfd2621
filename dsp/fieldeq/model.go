package fieldeq

import "math"

// Transducer model of a dual-diaphragm capsule. The pressure component rises
// toward high frequencies on axis and falls slightly in a diffuse field; the
// gradient component rolls off above its corner.
const (
	pressureCorner    = 9000.0
	pressureRise      = 0.41
	pressureDiffuseHF = 0.2
	gradientCorner    = 11000.0
)

func pressureFree(f float64) float64 {
	x := (f / pressureCorner) * (f / pressureCorner)
	return 1 + pressureRise*x/(1+x)
}

func pressureDiffuse(f float64) float64 {
	x := (f / pressureCorner) * (f / pressureCorner)
	return 1 - pressureDiffuseHF*x/(1+x)
}

func gradient(f float64) float64 {
	x := f / gradientCorner
	return 1 / math.Sqrt(1+x*x*x*x)
}

// Response returns the modeled magnitude response of a pattern with
// directivity d at frequency f for the given field mode, normalized to the
// ideal pattern so that it is 1 at DC. None returns 1.
func Response(mode Mode, d, f float64) float64 {
	a := 1 - math.Abs(d)
	b := math.Abs(d)
	switch mode {
	case FreeField:
		return a*pressureFree(f) + b*gradient(f)
	case DiffuseField:
		// Random-incidence power of a + b*cos(theta) is a^2 + b^2/3.
		p := a * pressureDiffuse(f)
		g := b * gradient(f)
		ideal := a*a + b*b/3
		if ideal == 0 {
			return 1
		}
		return math.Sqrt((p*p + g*g/3) / ideal)
	default:
		return 1
	}
}

// targetGain returns the EQ magnitude for mode and d at frequency f: the
// inverse of Response limited to +-MaxCorrectionDB and faded to unity above
// TaperStart.
func targetGain(mode Mode, d, f float64) float64 {
	h := Response(mode, d, f)
	db := -20 * math.Log10(h)
	db = math.Max(-MaxCorrectionDB, math.Min(MaxCorrectionDB, db))
	if f > TaperStart {
		w := math.Min(1, (f-TaperStart)/(DesignRate/2-TaperStart))
		db *= 0.5 + 0.5*math.Cos(math.Pi*w)
	}
	return math.Pow(10, db/20)
}
