package stats

import (
	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// Number covers every scalar type the engine can ingest or emit.
type Number interface {
	constraints.Integer | constraints.Float
}

// Mean accumulates in float64 so integer payloads stay exact for any
// realistic series length. Returns 0 for an empty slice.
func Mean[U Number](values []U) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := lo.SumBy(values, func(value U) float64 {
		return float64(value)
	})
	return sum / float64(len(values))
}

// WeightedMean weights values[i] by i+1, so the newest element of an
// arrival-ordered window carries the most weight. Returns 0 for an empty
// slice.
func WeightedMean[U Number](values []U) float64 {
	if len(values) == 0 {
		return 0
	}
	var weighted, total float64
	for i, value := range values {
		weight := float64(i + 1)
		weighted += float64(value) * weight
		total += weight
	}
	return weighted / total
}

// Smooth is one exponential smoothing step: alpha parts new sample,
// 1-alpha parts previous estimate. Alpha outside [0, 1] inverts the
// weighting; the contract accepts it as given.
func Smooth(prev float64, sample float64, alpha float64) float64 {
	return alpha*sample + (1-alpha)*prev
}
