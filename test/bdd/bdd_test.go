package bdd

import (
	"testing"

	"github.com/cucumber/godog"

	"github.com/JZongit/Crop-Rotation-Simulator/test/bdd/steps"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios
	steps.InitializeGroveScenario(sc)
	steps.InitializeWeightSetScenario(sc)

	// Application scenarios
	steps.InitializeSweepScenario(sc)
}
