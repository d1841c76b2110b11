package common_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
)

type pingQuery struct{ Value int }

type pingHandler struct{}

func (pingHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	q := request.(*pingQuery)
	if q.Value < 0 {
		return nil, errors.New("negative")
	}
	return q.Value * 2, nil
}

func TestMediator_SendDispatchesByType(t *testing.T) {
	// Arrange
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](med, pingHandler{}))

	// Act
	resp, err := med.Send(context.Background(), &pingQuery{Value: 21})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](med, pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingQuery](med, pingHandler{}))

	_, err := med.Send(context.Background(), struct{}{})
	assert.Error(t, err)

	_, err = med.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareOrder(t *testing.T) {
	// Arrange
	med := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingQuery](med, pingHandler{}))
	var calls []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		med.RegisterMiddleware(func(ctx context.Context, req common.Request, next common.HandlerFunc) (common.Response, error) {
			calls = append(calls, name+":before")
			resp, err := next(ctx, req)
			calls = append(calls, name+":after")
			return resp, err
		})
	}

	// Act
	_, err := med.Send(context.Background(), &pingQuery{Value: 1})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, calls)
}

func TestLoggingMiddleware_LogsFailures(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := common.WithLogger(context.Background(), logger)
	med := common.NewMediator()
	med.RegisterMiddleware(common.LoggingMiddleware())
	require.NoError(t, common.RegisterHandler[*pingQuery](med, pingHandler{}))

	// Act
	_, err := med.Send(ctx, &pingQuery{Value: -1})

	// Assert
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"request":"pingQuery"`)
	assert.Contains(t, buf.String(), `"error":"negative"`)
	assert.Contains(t, buf.String(), "request failed")
}

func TestLoggerFromContext_FallsBackToDisabled(t *testing.T) {
	logger := common.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
