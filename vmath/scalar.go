package vmath

import "math/rand/v2"

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RandRange samples uniformly between lo and hi. The bounds may be given in either
// order; an empty range returns lo.
func RandRange(rng *rand.Rand, lo, hi float64) float64 {
	if lo == hi {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// RandVec samples each component independently between its bounds.
func RandVec(rng *rand.Rand, lo, hi Vec2) Vec2 {
	return Vec2{X: RandRange(rng, lo.X, hi.X), Y: RandRange(rng, lo.Y, hi.Y)}
}
