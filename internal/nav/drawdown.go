package nav

import "math"

// Drawdown holds one percentage per point of the series it was computed from.
// Every element is <= 0.
type Drawdown []float64

// ComputeDrawdown scans s in order, tracking the running peak (starting at -Inf
// and including the current point), and emits (value-peak)/peak*100.
//
// A zero peak can only come from a leading run of zero values; those points
// are clamped to 0 instead of producing NaN.
func ComputeDrawdown(s Series) Drawdown {
	out := make(Drawdown, len(s))
	peak := math.Inf(-1)
	for i, p := range s {
		peak = math.Max(peak, p.Value)
		if peak == 0 {
			out[i] = 0
			continue
		}
		out[i] = (p.Value - peak) / peak * 100
	}
	return out
}

// Max returns the deepest (most negative) drawdown, 0 for an empty series.
func (d Drawdown) Max() float64 {
	m := 0.0
	for _, v := range d {
		if v < m {
			m = v
		}
	}
	return m
}

// Current returns the last drawdown value, 0 for an empty series.
func (d Drawdown) Current() float64 {
	if len(d) == 0 {
		return 0
	}
	return d[len(d)-1]
}
