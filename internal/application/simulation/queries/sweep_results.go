package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// ErrResultStoreDisabled is returned when results are queried without a store
var ErrResultStoreDisabled = errors.New("result store is disabled (set database.enabled)")

// ListSweepResultsQuery lists stored sweeps, newest first
type ListSweepResultsQuery struct {
	Options sweep.ListOptions
}

// ListSweepResultsResponse holds run summaries without points
type ListSweepResultsResponse struct {
	Runs []*sweep.Run
}

// GetSweepResultQuery loads one stored sweep with its points
type GetSweepResultQuery struct {
	RunID string
}

// GetSweepResultResponse holds the stored run
type GetSweepResultResponse struct {
	Run  *sweep.Run
	Best *sweep.Point
}

// ListSweepResultsHandler handles the ListSweepResults query
type ListSweepResultsHandler struct {
	repo sweep.ResultRepository
}

// NewListSweepResultsHandler creates a new ListSweepResultsHandler
func NewListSweepResultsHandler(repo sweep.ResultRepository) *ListSweepResultsHandler {
	return &ListSweepResultsHandler{repo: repo}
}

// Handle executes the ListSweepResults query
func (h *ListSweepResultsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ListSweepResultsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListSweepResultsQuery")
	}
	if h.repo == nil {
		return nil, ErrResultStoreDisabled
	}

	opts := query.Options
	if opts.Limit <= 0 {
		opts.Limit = sweep.DefaultListOptions().Limit
	}

	runs, err := h.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list sweep runs: %w", err)
	}
	return &ListSweepResultsResponse{Runs: runs}, nil
}

// GetSweepResultHandler handles the GetSweepResult query
type GetSweepResultHandler struct {
	repo sweep.ResultRepository
}

// NewGetSweepResultHandler creates a new GetSweepResultHandler
func NewGetSweepResultHandler(repo sweep.ResultRepository) *GetSweepResultHandler {
	return &GetSweepResultHandler{repo: repo}
}

// Handle executes the GetSweepResult query
func (h *GetSweepResultHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetSweepResultQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSweepResultQuery")
	}
	if h.repo == nil {
		return nil, ErrResultStoreDisabled
	}

	id, err := sweep.ParseRunID(query.RunID)
	if err != nil {
		return nil, err
	}

	run, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &GetSweepResultResponse{Run: run}
	if best, ok := sweep.Best(run.Points()); ok {
		resp.Best = &best
	}
	return resp, nil
}
