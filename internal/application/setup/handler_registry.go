package setup

import (
	"reflect"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	simCommands "github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	simQueries "github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// HandlerRegistry holds the dependencies handlers are built from
type HandlerRegistry struct {
	runner      *simulation.SweepRunner
	resultRepo  sweep.ResultRepository
	clock       shared.Clock
	middlewares []common.Middleware
}

// NewHandlerRegistry creates a new handler registry. resultRepo may be nil
// when the result store is disabled.
func NewHandlerRegistry(
	runner *simulation.SweepRunner,
	resultRepo sweep.ResultRepository,
	clock shared.Clock,
	middlewares ...common.Middleware,
) *HandlerRegistry {
	if runner == nil {
		runner = simulation.NewSweepRunner()
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		runner:      runner,
		resultRepo:  resultRepo,
		clock:       clock,
		middlewares: middlewares,
	}
}

// RegisterSimulationHandlers registers the engine commands:
//   - RunIterationCommand → RunIterationHandler
//   - RunSweepCommand → RunSweepHandler
//   - EvaluateArrangementCommand → EvaluateArrangementHandler
//   - EnumerateWeightsQuery → EnumerateWeightsHandler
func (r *HandlerRegistry) RegisterSimulationHandlers(m common.Mediator) error {
	handlers := []struct {
		request common.Request
		handler common.RequestHandler
	}{
		{&simCommands.RunIterationCommand{}, simCommands.NewRunIterationHandler()},
		{&simCommands.RunSweepCommand{}, simCommands.NewRunSweepHandler(r.runner, r.resultRepo, r.clock)},
		{&simCommands.EvaluateArrangementCommand{}, simCommands.NewEvaluateArrangementHandler()},
		{&simQueries.EnumerateWeightsQuery{}, simQueries.NewEnumerateWeightsHandler()},
	}
	for _, h := range handlers {
		if err := m.Register(reflect.TypeOf(h.request), h.handler); err != nil {
			return err
		}
	}
	return nil
}

// RegisterResultHandlers registers the stored-result queries
func (r *HandlerRegistry) RegisterResultHandlers(m common.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&simQueries.ListSweepResultsQuery{}),
		simQueries.NewListSweepResultsHandler(r.resultRepo),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&simQueries.GetSweepResultQuery{}),
		simQueries.NewGetSweepResultHandler(r.resultRepo),
	)
}

// CreateConfiguredMediator creates a mediator with every handler and the
// registry's middlewares installed
func (r *HandlerRegistry) CreateConfiguredMediator() (common.Mediator, error) {
	m := common.NewMediator()
	for _, mw := range r.middlewares {
		m.RegisterMiddleware(mw)
	}

	if err := r.RegisterSimulationHandlers(m); err != nil {
		return nil, err
	}
	if err := r.RegisterResultHandlers(m); err != nil {
		return nil, err
	}

	return m, nil
}
