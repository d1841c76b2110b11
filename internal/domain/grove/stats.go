package grove

import "math"

// RunningStats accumulates mean and population variance in one pass
// (Welford's algorithm), so a sweep point never stores per-iteration yields.
type RunningStats struct {
	n    int
	mean float64
	m2   float64
}

// Add records one observation
func (r *RunningStats) Add(x float64) {
	r.n++
	d := x - r.mean
	r.mean += d / float64(r.n)
	r.m2 += d * (x - r.mean)
}

// Merge folds another accumulator into r
func (r *RunningStats) Merge(o RunningStats) {
	if o.n == 0 {
		return
	}
	if r.n == 0 {
		*r = o
		return
	}
	n := r.n + o.n
	d := o.mean - r.mean
	r.mean += d * float64(o.n) / float64(n)
	r.m2 += o.m2 + d*d*float64(r.n)*float64(o.n)/float64(n)
	r.n = n
}

// Count returns the number of observations
func (r RunningStats) Count() int { return r.n }

// Mean returns the arithmetic mean, 0 when empty
func (r RunningStats) Mean() float64 { return r.mean }

// Variance returns the population variance, 0 when empty
func (r RunningStats) Variance() float64 {
	if r.n == 0 {
		return 0
	}
	return r.m2 / float64(r.n)
}

// StdDev returns the population standard deviation
func (r RunningStats) StdDev() float64 {
	return math.Sqrt(r.Variance())
}
