package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/pkg/utils"
)

// Column headers of the sweep table
var (
	SweepHeader  = []string{"Yellow Weight", "Blue Weight", "Purple Weight", "Average Seed Count"}
	StdDevHeader = "Std Dev"
)

// Options controls sweep output
type Options struct {
	// WithStdDev appends a standard deviation column
	WithStdDev bool
}

// WriteCSV writes one row per point, in the order given. The average is
// rounded to two decimal places.
func WriteCSV(w io.Writer, points []sweep.Point, opts Options) error {
	cw := csv.NewWriter(w)

	header := SweepHeader
	if opts.WithStdDev {
		header = append(append([]string(nil), SweepHeader...), StdDevHeader)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, p := range points {
		row := []string{
			formatFloat(p.Weights.Yellow),
			formatFloat(p.Weights.Blue),
			formatFloat(p.Weights.Purple),
			formatFloat(p.AverageSeedCount()),
		}
		if opts.WithStdDev {
			row = append(row, formatFloat(utils.RoundTo(p.StdDev, 2)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
