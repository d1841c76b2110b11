package grove

// Inclusion counts and their relative weights: 6 and 10 crops 25% each, 8 crops 50%
var (
	inclusionCounts  = []int{6, 8, 10}
	inclusionWeights = []float64{1, 2, 1}
)

// bucket is one of the eight ordered harvest groups
type bucket int

const (
	primaryDoubles bucket = iota
	primaryHybrids
	primaryDangers
	secondaryDoubles
	secondaryHybrids
	secondaryDangers
	yellowHybrids
	yellowDoubles
	bucketCount
)

// HarvestPlan is the output of the order builder for one iteration
type HarvestPlan struct {
	Order    *HarvestOrder
	Included int   // crops with id <= Included take part
	Yellow   []int // included yellow crop ids, ascending
}

// ChooseInclusionCount draws how many crops (6, 8 or 10) take part
func ChooseInclusionCount(rng Source) int {
	return inclusionCounts[pickWeighted(rng, inclusionWeights)]
}

// BuildHarvestOrder draws an inclusion count and builds the initial order
// for a classified grove
func BuildHarvestOrder(g *Grove, rng Source) HarvestPlan {
	var b orderBuilder
	return b.build(g, ChooseInclusionCount(rng))
}

// orderBuilder keeps bucket buffers between iterations
type orderBuilder struct {
	buckets [bucketCount][]int
	order   HarvestOrder
	yellow  []int
}

func (b *orderBuilder) build(g *Grove, included int) HarvestPlan {
	for i := range b.buckets {
		b.buckets[i] = b.buckets[i][:0]
	}
	b.yellow = b.yellow[:0]

	blue, purple := 0, 0
	for i := 0; i < included; i++ {
		switch g.crops[i].Color {
		case Blue:
			blue++
		case Purple:
			purple++
		case Yellow:
			b.yellow = append(b.yellow, g.crops[i].ID)
		}
	}

	primary, secondary := Purple, Blue
	if blue > purple {
		primary, secondary = Blue, Purple
	}

	for i := 0; i < included; i++ {
		c := &g.crops[i]
		if bk, ok := bucketFor(c, primary, secondary); ok {
			b.buckets[bk] = append(b.buckets[bk], c.ID)
		}
	}

	ids := b.order.ids[:0]
	for _, bk := range b.buckets {
		ids = append(ids, bk...)
	}
	b.order.ids = ids

	return HarvestPlan{Order: &b.order, Included: included, Yellow: b.yellow}
}

// bucketFor routes a crop to its harvest group. Yellow crops whose
// priority is not a yellow pairing have no group; the classifier is total,
// so that branch is unreachable for a classified grove.
func bucketFor(c *Crop, primary, secondary Color) (bucket, bool) {
	var base bucket
	switch c.Color {
	case primary:
		base = primaryDoubles
	case secondary:
		base = secondaryDoubles
	case Yellow:
		switch c.Priority {
		case PurpleYellowHybrid, BlueYellowHybrid:
			return yellowHybrids, true
		case DoubleYellow:
			return yellowDoubles, true
		}
		return 0, false
	default:
		return 0, false
	}

	switch c.Priority {
	case DoubleBlue, DoublePurple:
		return base, true
	case PurpleBlueHybrid:
		return base + 1, true
	case PurpleYellowHybrid, BlueYellowHybrid:
		return base + 2, true
	}
	return 0, false
}
