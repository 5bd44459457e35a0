package core

import "math"

const defaultEpsilon = 1e-12

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// SafeClamp is Clamp for values coming from automation or user input:
// NaN and Inf are replaced by def before clamping.
func SafeClamp(value, min, max, def float64) float64 {
	if !IsFinite(value) {
		value = def
	}

	return Clamp(value, min, max)
}

// Clamp01 limits value to [0, 1] and maps non-finite input to 0.
func Clamp01(value float64) float64 {
	return SafeClamp(value, 0, 1, 0)
}

// IsFinite reports whether x is neither NaN nor +-Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// WrapPhase folds phase into [0, period). Only a single period is removed,
// which is enough for accumulators advanced by less than one period per step.
func WrapPhase(phase, period float64) float64 {
	if phase >= period {
		phase -= period
		if phase >= period {
			phase = math.Mod(phase, period)
		}
	} else if phase < 0 {
		phase += period
		if phase < 0 {
			phase = math.Mod(phase, period) + period
		}
	}

	return phase
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
