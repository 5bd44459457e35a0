package dynamics

import (
	"math"

	approx "github.com/meko-christian/algo-approx"

	"github.com/cwbudde/algo-rocket/dsp/core"
)

const (
	ln2           = 0.693147180559945309417232121458
	log2Of10Div20 = 0.166096404744368117393515971474 // log2(10)/20
)

// mathLog2 computes log2(x) using a fast approximation.
func mathLog2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

// mathPower2 computes 2^x using a fast approximation.
func mathPower2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// GainComputer maps a detector level to a hard-knee downward compression
// gain. Levels and the threshold are compared in the log2 domain.
type GainComputer struct {
	thresholdDB   float64
	thresholdLog2 float64
	ratio         float64
	slope         float64
}

// NewGainComputer returns a gain computer for thresholdDB and ratio.
func NewGainComputer(thresholdDB, ratio float64) GainComputer {
	var g GainComputer
	g.SetThreshold(thresholdDB)
	g.SetRatio(ratio)
	return g
}

// SetThreshold sets the threshold in dBFS.
func (g *GainComputer) SetThreshold(dB float64) {
	g.thresholdDB = core.SafeClamp(dB, -120, 0, 0)
	g.thresholdLog2 = g.thresholdDB * log2Of10Div20
}

// SetRatio sets the compression ratio, at least 1.
func (g *GainComputer) SetRatio(ratio float64) {
	g.ratio = core.SafeClamp(ratio, 1, 100, 1)
	g.slope = 1 - 1/g.ratio
}

// Threshold returns the threshold in dBFS.
func (g GainComputer) Threshold() float64 { return g.thresholdDB }

// Ratio returns the compression ratio.
func (g GainComputer) Ratio() float64 { return g.ratio }

// Gain returns the linear gain for a detector level (linear amplitude).
func (g GainComputer) Gain(level float64) float64 {
	if level <= 0 {
		return 1
	}
	overshoot := mathLog2(level) - g.thresholdLog2
	if overshoot <= 0 {
		return 1
	}
	return mathPower2(-overshoot * g.slope)
}

// Envelope is a peak follower with separate attack and release times.
type Envelope struct {
	attack  float64
	release float64
	level   float64
}

// SetTimes sets attack and release in milliseconds for sampleRate.
func (e *Envelope) SetTimes(attackMs, releaseMs, sampleRate float64) {
	e.attack = timeCoefficient(attackMs, sampleRate)
	e.release = timeCoefficient(releaseMs, sampleRate)
}

// Next feeds |x| into the follower and returns the new level.
func (e *Envelope) Next(x float64) float64 {
	x = math.Abs(x)
	c := e.release
	if x > e.level {
		c = e.attack
	}
	e.level = core.FlushDenormals(c*e.level + (1-c)*x)
	return e.level
}

// Level returns the current envelope level.
func (e *Envelope) Level() float64 { return e.level }

// Reset clears the follower.
func (e *Envelope) Reset() { e.level = 0 }

func timeCoefficient(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1 / (ms * 0.001 * sampleRate))
}
