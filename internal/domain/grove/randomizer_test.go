package grove

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

func TestPickColor_CumulativeBands(t *testing.T) {
	w := EqualWeights()

	assert.Equal(t, Yellow, PickColor(constSource(0.1), w))
	assert.Equal(t, Blue, PickColor(constSource(0.5), w))
	assert.Equal(t, Purple, PickColor(constSource(0.9), w))
}

func TestPickColor_ZeroWeightNeverDrawn(t *testing.T) {
	w := WeightTriple{Yellow: 0, Blue: 1, Purple: 1}
	for _, x := range []float64{0, 0.25, 0.49, 0.5, 0.999} {
		assert.NotEqual(t, Yellow, PickColor(constSource(x), w), x)
	}
}

func TestWeightTriple_Validate(t *testing.T) {
	assert.NoError(t, WeightTriple{Yellow: 0.55, Blue: 1, Purple: 0}.Validate())

	for _, w := range []WeightTriple{
		{},
		{Yellow: -1, Blue: 1, Purple: 1},
		{Yellow: math.NaN(), Blue: 1, Purple: 1},
		{Yellow: math.Inf(1), Blue: 1, Purple: 1},
	} {
		err := w.Validate()
		var ve *shared.ValidationError
		assert.True(t, errors.As(err, &ve), w.String())
	}
}

func TestWeightTriple_Swapped(t *testing.T) {
	w := WeightTriple{Yellow: 0.55, Blue: 0.8, Purple: 1}

	assert.Equal(t, WeightTriple{Yellow: 0.55, Blue: 1, Purple: 0.8}, w.Swapped())
	assert.Equal(t, w, w.Swapped().Swapped())
}

func TestChooseInclusionCount(t *testing.T) {
	assert.Equal(t, 6, ChooseInclusionCount(constSource(0.1)))
	assert.Equal(t, 8, ChooseInclusionCount(constSource(0.3)))
	assert.Equal(t, 8, ChooseInclusionCount(constSource(0.7)))
	assert.Equal(t, 10, ChooseInclusionCount(constSource(0.8)))
}
