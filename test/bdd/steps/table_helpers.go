package steps

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

// cellValue returns the cell under columnName, using the first row as header
func cellValue(table *godog.Table, row *messages.PickleTableRow, columnName string) string {
	if len(table.Rows) == 0 {
		return ""
	}
	for i, header := range table.Rows[0].Cells {
		if header.Value == columnName && i < len(row.Cells) {
			return row.Cells[i].Value
		}
	}
	return ""
}

// weightRows reads a yellow | blue | purple table
func weightRows(table *godog.Table) ([]grove.WeightTriple, error) {
	var out []grove.WeightTriple
	for _, row := range table.Rows[1:] {
		var vs [3]float64
		for i, col := range []string{"yellow", "blue", "purple"} {
			v, err := strconv.ParseFloat(cellValue(table, row, col), 64)
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col, err)
			}
			vs[i] = v
		}
		out = append(out, grove.WeightTriple{Yellow: vs[0], Blue: vs[1], Purple: vs[2]})
	}
	return out, nil
}

// parseFloatList reads "0.55, 0.8, 1"
func parseFloatList(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
