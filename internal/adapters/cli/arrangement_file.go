package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

// arrangementFile is the YAML form of a fixed arrangement:
//
//	crops:
//	  A1: {color: yellow}
//	  A2: {color: blue, t1: 20, t2: 3}
//	permutation: [A1, A2]
//
// A crop with no tier counts starts with the standard 23 T1 seeds.
type arrangementFile struct {
	Crops       map[string]arrangedCropFile `yaml:"crops"`
	Permutation []string                    `yaml:"permutation"`
}

type arrangedCropFile struct {
	Color string `yaml:"color"`
	T1    *int   `yaml:"t1"`
	T2    *int   `yaml:"t2"`
	T3    *int   `yaml:"t3"`
	T4    *int   `yaml:"t4"`
}

func (c arrangedCropFile) tiers() grove.Tiers {
	if c.T1 == nil && c.T2 == nil && c.T3 == nil && c.T4 == nil {
		return grove.Tiers{One: grove.DefaultTierOne}
	}
	deref := func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	}
	return grove.Tiers{One: deref(c.T1), Two: deref(c.T2), Three: deref(c.T3), Four: deref(c.T4)}
}

// parseArrangement decodes and validates a YAML arrangement
func parseArrangement(data []byte) (grove.Arrangement, error) {
	var f arrangementFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return grove.Arrangement{}, fmt.Errorf("invalid arrangement yaml: %w", err)
	}

	a := grove.Arrangement{
		Crops:       make(map[string]grove.ArrangedCrop, len(f.Crops)),
		Permutation: f.Permutation,
	}
	for label, c := range f.Crops {
		color, err := grove.ParseColor(c.Color)
		if err != nil {
			return grove.Arrangement{}, fmt.Errorf("crop %s: %w", label, err)
		}
		a.Crops[label] = grove.ArrangedCrop{Color: color, Tiers: c.tiers()}
	}
	return a, a.Validate()
}

func loadArrangement(path string) (grove.Arrangement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grove.Arrangement{}, fmt.Errorf("failed to read arrangement: %w", err)
	}
	return parseArrangement(data)
}
