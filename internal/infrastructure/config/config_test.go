package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfig_MatchesEngineDefaults(t *testing.T) {
	// Act
	cfg := config.DefaultConfig()

	// Assert
	params, err := cfg.Simulation.Params()
	require.NoError(t, err)
	assert.Equal(t, grove.DefaultParams(), params)
	assert.Equal(t, 1_000_000, cfg.Sweep.Iterations)
	assert.Equal(t, []float64{0.55, 0.65, 0.75, 0.8, 0.9, 1}, cfg.Sweep.WeightValues)
	assert.Equal(t, 0.55, cfg.Sweep.Reduced())
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "localhost:50061", cfg.Daemon.Address)
	assert.Equal(t, 1, cfg.Daemon.MaxConcurrentSweeps)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, `
simulation:
  vivid_mult: 3
  p3: 0
  yellow_risk_pick: most
sweep:
  iterations: 500
  weight_values: [0.5, 1]
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Simulation.VividMult)
	assert.Zero(t, cfg.Simulation.P3, "explicit zero is kept")
	assert.Equal(t, 0.2, cfg.Simulation.P2)
	assert.Equal(t, "most", cfg.Simulation.YellowRiskPick)
	assert.Equal(t, 500, cfg.Sweep.Iterations)
	assert.Equal(t, 0.5, cfg.Sweep.Reduced())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  t4_mult: 80\n")
	t.Setenv("GROVE_SIMULATION_T4_MULT", "120")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 120.0, cfg.Simulation.T4Mult)
}

func TestLoadConfig_RejectsOutOfRangeValues(t *testing.T) {
	cases := map[string]string{
		"probability":       "simulation:\n  p1: 1.5\n",
		"negative mult":     "simulation:\n  wild_mult: -1\n",
		"risk pick":         "simulation:\n  yellow_risk_pick: sometimes\n",
		"zero iterations":   "sweep:\n  iterations: 0\n",
		"reduced not in":    "sweep:\n  weight_values: [0.5, 1]\n  reduced_weight: 0.7\n",
		"file without path": "logging:\n  output: file\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, body))

			assert.Error(t, err)
		})
	}
}

func TestUserConfigHandler_RemembersLastRun(t *testing.T) {
	// Arrange
	h, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	empty, err := h.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.LastRunID)

	// Act
	require.NoError(t, h.SetLastRun("5f0c1e9a-3a51-4a8e-9d39-9f1e3c1d2b7a"))

	// Assert
	loaded, err := h.Load()
	require.NoError(t, err)
	assert.Equal(t, "5f0c1e9a-3a51-4a8e-9d39-9f1e3c1d2b7a", loaded.LastRunID)
}
