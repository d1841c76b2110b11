package grove

import "strconv"

// Tiers holds seed counts per quality tier. T1 seeds carry no yield value.
type Tiers struct {
	One   int `yaml:"t1" json:"t1"`
	Two   int `yaml:"t2" json:"t2"`
	Three int `yaml:"t3" json:"t3"`
	Four  int `yaml:"t4" json:"t4"`
}

// CropState is the resettable part of a crop
type CropState struct {
	Harvestable  bool
	Tiers        Tiers
	UpgradeCount int
}

// Crop is one harvestable slot of the grove
type Crop struct {
	ID     int
	PlotID string

	Harvestable  bool
	TierOne      int
	TierTwo      int
	TierThree    int
	TierFour     int
	Color        Color
	UpgradeCount int
	Priority     Priority

	neighbor     int // slot index of the paired crop
	initial      CropState
	initialColor Color
}

// Label returns the plot-relative name of the crop, e.g. "A1" or "C2"
func (c *Crop) Label() string {
	return LabelForID(c.ID)
}

// InitialState returns the state captured at construction
func (c *Crop) InitialState() CropState {
	return c.initial
}

// Tiers returns the current seed counts
func (c *Crop) Tiers() Tiers {
	return Tiers{One: c.TierOne, Two: c.TierTwo, Three: c.TierThree, Four: c.TierFour}
}

// SeedValue is the un-multiplied yield of harvesting the crop now
func (c *Crop) SeedValue(t3Mult, t4Mult float64) float64 {
	return float64(c.TierTwo) + t3Mult*float64(c.TierThree) + t4Mult*float64(c.TierFour)
}

// Restore puts the crop back to its initial state, keeping the color it
// was constructed with. Priority is cleared until the next classification.
func (c *Crop) Restore() {
	c.Harvestable = c.initial.Harvestable
	c.TierOne = c.initial.Tiers.One
	c.TierTwo = c.initial.Tiers.Two
	c.TierThree = c.initial.Tiers.Three
	c.TierFour = c.initial.Tiers.Four
	c.UpgradeCount = c.initial.UpgradeCount
	c.Color = c.initialColor
	c.Priority = PriorityNone
}

// Reset restores the initial state and re-rolls the color
func (c *Crop) Reset(rng Source, weights WeightTriple) {
	c.Restore()
	c.Color = PickColor(rng, weights)
}

// promote resolves one upgrade step top-down so a seed promotes at most once
func (c *Crop) promote(rng Source, p Probabilities) {
	t3 := bernoulliCount(rng, c.TierThree, p.T3ToT4)
	c.TierFour += t3

	t2 := bernoulliCount(rng, c.TierTwo, p.T2ToT3)
	c.TierThree += t2 - t3

	t1 := bernoulliCount(rng, c.TierOne, p.T1ToT2)
	c.TierTwo += t1 - t2
	c.TierOne -= t1
}

func bernoulliCount(rng Source, n int, p float64) int {
	hits := 0
	for i := 0; i < n; i++ {
		if rng.Float64() < p {
			hits++
		}
	}
	return hits
}

// LabelForID maps crop ids 1..10 to "A1".."E2"
func LabelForID(id int) string {
	if id < 1 || id > CropCount {
		return "?" + strconv.Itoa(id)
	}
	return PlotIDs[(id-1)/CropsPerPlot] + strconv.Itoa((id-1)%CropsPerPlot+1)
}

// IDForLabel is the inverse of LabelForID
func IDForLabel(label string) (int, bool) {
	if len(label) != 2 {
		return 0, false
	}
	for p, plot := range PlotIDs {
		if plot[0] != label[0] && plot[0]+('a'-'A') != label[0] {
			continue
		}
		slot := int(label[1] - '0')
		if slot < 1 || slot > CropsPerPlot {
			return 0, false
		}
		return p*CropsPerPlot + slot, true
	}
	return 0, false
}
