// Package tempo computes pitch-preserving time-stretch plans that bring a
// synthesized speech track to a target duration.
package tempo

import "math"

const (
	// MinStep and MaxStep bound a single tempo transformation. ffmpeg's
	// atempo filter accepts [0.5, 2.0] per node and quality degrades near
	// the bounds, so ratios outside the range are decomposed into a chain.
	MinStep = 0.5
	MaxStep = 2.0

	// IdentityBand is the ratio window around 1.0 inside which no
	// transformation is applied: sub-5% tempo error is perceptually
	// negligible and not worth the re-encode.
	IdentityBand = 0.05
)

// Plan is an ordered sequence of tempo factors applied left to right as a
// single filter chain. An empty plan means copy the audio unchanged.
type Plan []float64

// BuildPlan decomposes speedFactor (currentDuration / targetDuration) into at
// most two bounded steps. The two-step cap is deliberate: ratios beyond 4.0x
// (or below 0.25x) are clamped rather than chained further, and the residual
// shows up when the result is re-probed.
func BuildPlan(speedFactor float64) Plan {
	switch {
	case math.Abs(speedFactor-1.0) < IdentityBand:
		return nil
	case speedFactor >= MinStep && speedFactor <= MaxStep:
		return Plan{speedFactor}
	case speedFactor > MaxStep:
		first := MaxStep
		plan := Plan{first}
		if remaining := speedFactor / first; remaining > 1.0 {
			plan = append(plan, math.Min(remaining, MaxStep))
		}
		return plan
	default:
		first := MinStep
		plan := Plan{first}
		if remaining := speedFactor / first; remaining < 1.0 {
			plan = append(plan, math.Max(remaining, MinStep))
		}
		return plan
	}
}

// Product returns the overall speed ratio the plan applies.
func (p Plan) Product() float64 {
	out := 1.0
	for _, f := range p {
		out *= f
	}
	return out
}

// Empty reports whether the plan is the no-op copy path.
func (p Plan) Empty() bool { return len(p) == 0 }
