//go:build !fastmath

package core

import "math"

func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
