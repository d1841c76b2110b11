package grove

// Priority is the strategic category of a neighbor pair, derived from the
// pair's colors. Both crops of a pair always carry the same priority.
type Priority uint8

const (
	PriorityNone Priority = iota
	DoubleBlue
	DoublePurple
	DoubleYellow
	PurpleBlueHybrid
	BlueYellowHybrid
	PurpleYellowHybrid
)

func (p Priority) String() string {
	switch p {
	case DoubleBlue:
		return "DB"
	case DoublePurple:
		return "DP"
	case DoubleYellow:
		return "DY"
	case PurpleBlueHybrid:
		return "PBH"
	case BlueYellowHybrid:
		return "BYH"
	case PurpleYellowHybrid:
		return "PYH"
	default:
		return "-"
	}
}

// priorityTable is keyed by (color, neighbor color). It is total over the
// three assignable colors; only ColorNone rows are empty.
var priorityTable = [4][4]Priority{
	Yellow: {Yellow: DoubleYellow, Blue: BlueYellowHybrid, Purple: PurpleYellowHybrid},
	Blue:   {Yellow: BlueYellowHybrid, Blue: DoubleBlue, Purple: PurpleBlueHybrid},
	Purple: {Yellow: PurpleYellowHybrid, Blue: PurpleBlueHybrid, Purple: DoublePurple},
}

// ClassifyPair returns the category for an ordered color pair
func ClassifyPair(color, neighbor Color) Priority {
	return priorityTable[color][neighbor]
}

// Classify labels every neighbor pair of the grove with its category.
// The label is written to both members of the pair.
func Classify(g *Grove) {
	for _, pair := range g.pairs {
		a, b := &g.crops[pair[0]], &g.crops[pair[1]]
		p := ClassifyPair(a.Color, b.Color)
		a.Priority = p
		b.Priority = p
	}
}
