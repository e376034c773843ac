package privacy

import (
	"math"
	"math/rand"
)

// Laplace draws from a zero-centred Laplace distribution with the given scale
// using inverse transform sampling.
func Laplace(rng *rand.Rand, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	u := rng.Float64() - 0.5
	for u == -0.5 {
		u = rng.Float64() - 0.5
	}
	sign := 1.0
	if u < 0 {
		sign = -1.0
	}
	return -scale * sign * math.Log(1-2*math.Abs(u))
}

// AddNoise perturbs value with Laplace noise of scale (max-min)/epsilon and
// clips the result back into [min, max], rounding to decimals places.
//
// This is an illustrative mechanism only. Clipping after adding noise does not
// preserve a provable epsilon-differential-privacy guarantee, and values are
// generated rather than derived from real records.
func AddNoise(rng *rand.Rand, value, min, max, epsilon float64, decimals int) float64 {
	if epsilon <= 0 || max <= min {
		return Round(clip(value, min, max), decimals)
	}
	noisy := value + Laplace(rng, (max-min)/epsilon)
	return Round(clip(noisy, min, max), decimals)
}

func clip(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
