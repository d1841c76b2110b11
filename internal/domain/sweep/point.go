package sweep

import (
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/pkg/utils"
)

// Point is the aggregated yield of one weight triple
type Point struct {
	Weights    grove.WeightTriple
	Iterations int
	Mean       float64
	Variance   float64
	StdDev     float64
}

// NewPoint summarizes the accumulated yields of one weight triple
func NewPoint(w grove.WeightTriple, stats grove.RunningStats) Point {
	return Point{
		Weights:    w,
		Iterations: stats.Count(),
		Mean:       stats.Mean(),
		Variance:   stats.Variance(),
		StdDev:     stats.StdDev(),
	}
}

// AverageSeedCount is the mean as reported in tables, rounded to 2 places
func (p Point) AverageSeedCount() float64 {
	return utils.RoundTo(p.Mean, 2)
}

// Best returns the point with the highest mean; ok is false for an empty slice
func Best(points []Point) (best Point, ok bool) {
	for i, p := range points {
		if i == 0 || p.Mean > best.Mean {
			best = p
		}
	}
	return best, len(points) > 0
}
