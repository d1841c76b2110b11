package grove

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

func TestNewGrove_StandardLayout(t *testing.T) {
	// Act
	g := NewGrove()

	// Assert
	require.NoError(t, g.Validate())
	assert.Equal(t, CropCount, g.Len())
	assert.Equal(t, [][2]int{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}}, g.Pairs())
	for i := range g.Crops() {
		c := &g.Crops()[i]
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, PlotIDs[i/2], c.PlotID)
		assert.True(t, c.Harvestable)
		assert.Equal(t, Tiers{One: DefaultTierOne}, c.Tiers())
	}
}

func TestGrove_NeighborIsSymmetric(t *testing.T) {
	g := NewGrove()
	for i := range g.Crops() {
		c := &g.Crops()[i]
		nb := g.Neighbor(c)
		assert.NotEqual(t, c.ID, nb.ID)
		assert.Equal(t, c.PlotID, nb.PlotID)
		assert.Equal(t, c.ID, g.Neighbor(nb).ID)
	}
}

func TestGrove_CropRejectsUnknownID(t *testing.T) {
	g := NewGrove()

	_, err := g.Crop(11)

	require.Error(t, err)
	var unknown *shared.UnknownCropError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, 11, unknown.CropID)
	var inv *shared.InvariantViolationError
	assert.True(t, errors.As(err, &inv))
}

func TestGrove_CloneIsIndependent(t *testing.T) {
	// Arrange
	g := NewGrove()
	g.SetWeights(WeightTriple{Yellow: 0.55, Blue: 1, Purple: 1})

	// Act
	c := g.Clone()
	c.Crops()[0].TierFour = 9
	c.SetWeights(EqualWeights())

	// Assert
	assert.Equal(t, 0, g.Crops()[0].TierFour)
	assert.Equal(t, WeightTriple{Yellow: 0.55, Blue: 1, Purple: 1}, g.Weights())
}

func TestGrove_ResetRestoresEveryCrop(t *testing.T) {
	// Arrange
	g := NewGrove()
	for i := range g.Crops() {
		c := &g.Crops()[i]
		c.Harvestable = false
		c.TierOne, c.TierTwo, c.TierThree, c.TierFour = 0, 10, 8, 5
		c.UpgradeCount = 4
	}

	// Act
	g.Reset(constSource(0.1))

	// Assert
	for _, c := range g.Crops() {
		assert.Equal(t, c.InitialState(), CropState{Harvestable: c.Harvestable, Tiers: c.Tiers(), UpgradeCount: c.UpgradeCount})
		assert.Equal(t, Yellow, c.Color)
		assert.Equal(t, PriorityNone, c.Priority)
	}
}

func TestGrove_ValidateDetectsBrokenPairs(t *testing.T) {
	g := NewGrove()
	g.crops[2].neighbor = 0

	err := g.Validate()

	var inv *shared.InvariantViolationError
	require.True(t, errors.As(err, &inv))
	assert.Equal(t, "neighbor", inv.Invariant)
}

func TestClassify_BothCropsShareLabel(t *testing.T) {
	cases := []struct {
		a, b Color
		want Priority
	}{
		{Blue, Blue, DoubleBlue},
		{Purple, Purple, DoublePurple},
		{Yellow, Yellow, DoubleYellow},
		{Purple, Blue, PurpleBlueHybrid},
		{Blue, Purple, PurpleBlueHybrid},
		{Blue, Yellow, BlueYellowHybrid},
		{Yellow, Blue, BlueYellowHybrid},
		{Purple, Yellow, PurpleYellowHybrid},
		{Yellow, Purple, PurpleYellowHybrid},
	}
	for _, tc := range cases {
		t.Run(tc.a.String()+"/"+tc.b.String(), func(t *testing.T) {
			g := groveOf(tc.a, tc.b)

			Classify(g)

			assert.Equal(t, tc.want, g.Crops()[0].Priority)
			assert.Equal(t, tc.want, g.Crops()[1].Priority)
			assert.Equal(t, ClassifyPair(tc.b, tc.a), ClassifyPair(tc.a, tc.b))
		})
	}
}

func TestParseColor_Aliases(t *testing.T) {
	for in, want := range map[string]Color{
		"yellow": Yellow, "Vivid": Yellow, "Y": Yellow,
		"blue": Blue, "primal": Blue,
		"purple": Purple, "WILD": Purple,
		"": ColorNone,
	} {
		got, err := ParseColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"green", "p", "P"} {
		_, err := ParseColor(in)
		assert.Error(t, err, in)
	}
}
