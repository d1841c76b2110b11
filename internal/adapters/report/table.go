package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

var printer = message.NewPrinter(language.English)

// WriteTable writes a human-readable sweep table with grouped digits
func WriteTable(w io.Writer, points []sweep.Point, opts Options) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := SweepHeader
	if opts.WithStdDev {
		header = append(append([]string(nil), SweepHeader...), StdDevHeader)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, p := range points {
		row := printer.Sprintf("%v\t%v\t%v\t%.2f", p.Weights.Yellow, p.Weights.Blue, p.Weights.Purple, p.AverageSeedCount())
		if opts.WithStdDev {
			row += printer.Sprintf("\t%.2f", p.StdDev)
		}
		fmt.Fprintln(tw, row+"\t")
	}

	if best, ok := sweep.Best(points); ok {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, printer.Sprintf("best\t%v\t%v\t%v\t%.2f\t", best.Weights.Yellow, best.Weights.Blue, best.Weights.Purple, best.AverageSeedCount()))
	}
	return tw.Flush()
}

// WriteEvaluation prints the statistics of a fixed-arrangement evaluation
func WriteEvaluation(w io.Writer, e grove.Evaluation) error {
	_, err := printer.Fprintf(w,
		"permutation: %s\niterations:  %d\nmean:        %.2f\nvariance:    %.2f\nstd dev:     %.2f\n",
		strings.Join(e.Permutation, " "), e.Iterations, e.Mean, e.Variance, e.StdDev)
	return err
}

// WriteCrops prints the final state of a grove, one crop per line
func WriteCrops(w io.Writer, crops []grove.Crop) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Crop\tColor\tPriority\tT1\tT2\tT3\tT4\tUpgrades\tHarvestable")
	for i := range crops {
		c := &crops[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%t\n",
			c.Label(), c.Color, c.Priority, c.TierOne, c.TierTwo, c.TierThree, c.TierFour, c.UpgradeCount, c.Harvestable)
	}
	return tw.Flush()
}

// WriteRuns prints stored sweep summaries
func WriteRuns(w io.Writer, runs []*sweep.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tStatus\tCreated\tIterations\tPoints\tSeed\tDuration")
	for _, r := range runs {
		printer.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID(), r.Status(), r.CreatedAt().Format("2006-01-02 15:04:05"),
			r.Iterations(), r.PointCount(), r.Seed(), r.Duration().Round(time.Millisecond))
	}
	return tw.Flush()
}
