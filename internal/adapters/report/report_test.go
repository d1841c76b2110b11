package report

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

func samplePoints() []sweep.Point {
	return []sweep.Point{
		{Weights: grove.WeightTriple{Yellow: 0.55, Blue: 0.55, Purple: 0.55}, Iterations: 100, Mean: 1234.5678, StdDev: 310.123},
		{Weights: grove.WeightTriple{Yellow: 1, Blue: 0.8, Purple: 0.55}, Iterations: 100, Mean: 1500, StdDev: 12.005},
	}
}

func TestWriteCSV_ContractColumns(t *testing.T) {
	// Arrange
	var buf bytes.Buffer

	// Act
	err := WriteCSV(&buf, samplePoints(), Options{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t,
		"Yellow Weight,Blue Weight,Purple Weight,Average Seed Count\n"+
			"0.55,0.55,0.55,1234.57\n"+
			"1,0.8,0.55,1500\n",
		buf.String())
}

func TestWriteCSV_WithStdDev(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, samplePoints(), Options{WithStdDev: true}))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Std Dev", rows[0][4])
	assert.Equal(t, "310.12", rows[1][4])
	assert.Len(t, SweepHeader, 4, "the shared header is not modified")
}

func TestWriteTable_GroupsDigitsAndShowsBest(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteTable(&buf, samplePoints(), Options{}))

	out := buf.String()
	assert.Contains(t, out, "1,234.57")
	assert.Contains(t, out, "Average Seed Count")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[len(lines)-1], "best")
	assert.Contains(t, lines[len(lines)-1], "1,500.00")
}

func TestWriteEvaluation(t *testing.T) {
	var buf bytes.Buffer

	err := WriteEvaluation(&buf, grove.Evaluation{Iterations: 10000, Mean: 2500.5, Variance: 4, StdDev: 2, Permutation: []string{"A1", "B2"}})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "permutation: A1 B2")
	assert.Contains(t, buf.String(), "10,000")
	assert.Contains(t, buf.String(), "2,500.50")
}

func TestWriteCrops(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCrops(&buf, grove.NewGrove().Crops()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, grove.CropCount+1)
	assert.True(t, strings.HasPrefix(lines[1], "A1"))
}

func TestCreate_CompressesZstSuffix(t *testing.T) {
	for _, name := range []string{"sweep.csv", "sweep.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			// Arrange
			path := filepath.Join(t.TempDir(), name)
			w, err := Create(path)
			require.NoError(t, err)

			// Act
			require.NoError(t, WriteCSV(w, samplePoints(), Options{}))
			require.NoError(t, w.Close())

			// Assert
			r, err := Open(path)
			require.NoError(t, err)
			defer r.Close()
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "Yellow Weight,"))
		})
	}
}
