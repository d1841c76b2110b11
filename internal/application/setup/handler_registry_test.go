package setup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	simCommands "github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	simQueries "github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

func TestCreateConfiguredMediator_RoutesEveryRequest(t *testing.T) {
	// Arrange
	var seen []string
	trace := func(ctx context.Context, req common.Request, next common.HandlerFunc) (common.Response, error) {
		seen = append(seen, common.RequestName(req))
		return next(ctx, req)
	}
	m, err := NewHandlerRegistry(nil, nil, nil, trace).CreateConfiguredMediator()
	require.NoError(t, err)
	ctx := context.Background()

	// Act
	_, iterErr := m.Send(ctx, &simCommands.RunIterationCommand{Params: grove.DefaultParams(), Weights: grove.EqualWeights(), Seed: 1})
	_, weightErr := m.Send(ctx, &simQueries.EnumerateWeightsQuery{})
	_, listErr := m.Send(ctx, &simQueries.ListSweepResultsQuery{})

	// Assert
	assert.NoError(t, iterErr)
	assert.NoError(t, weightErr)
	assert.ErrorIs(t, listErr, simQueries.ErrResultStoreDisabled)
	assert.Equal(t, []string{"RunIterationCommand", "EnumerateWeightsQuery", "ListSweepResultsQuery"}, seen)
}
