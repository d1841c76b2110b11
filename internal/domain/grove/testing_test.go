package grove

// constSource always returns the same draw
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// scriptedSource replays draws in order, then repeats the last one
type scriptedSource struct {
	draws []float64
	i     int
}

func (s *scriptedSource) Float64() float64 {
	if s.i >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.i]
	s.i++
	return v
}

// groveOf builds a harvestable grove with the given slot colors and T1=23
func groveOf(colors ...Color) *Grove {
	var specs [CropCount]CropSpec
	for i := range specs {
		specs[i] = CropSpec{Tiers: Tiers{One: DefaultTierOne}, Harvestable: true, Color: Blue}
		if i < len(colors) {
			specs[i].Color = colors[i]
		}
	}
	return NewGroveFromSpecs(specs)
}
