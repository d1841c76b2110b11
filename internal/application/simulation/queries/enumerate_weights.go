package queries

import (
	"context"
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// EnumerateWeightsQuery lists the weight triples a sweep over Values covers
type EnumerateWeightsQuery struct {
	Values  []float64
	Reduced float64 // 0 means the smallest value
}

// EnumerateWeightsResponse holds the deduplicated triples
type EnumerateWeightsResponse struct {
	Reduced float64
	Triples []grove.WeightTriple
}

// EnumerateWeightsHandler handles the EnumerateWeights query
type EnumerateWeightsHandler struct{}

// NewEnumerateWeightsHandler creates a new EnumerateWeightsHandler
func NewEnumerateWeightsHandler() *EnumerateWeightsHandler {
	return &EnumerateWeightsHandler{}
}

// Handle executes the EnumerateWeights query
func (h *EnumerateWeightsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*EnumerateWeightsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *EnumerateWeightsQuery")
	}

	values := query.Values
	if len(values) == 0 {
		values = sweep.DefaultWeightValues()
	}
	reduced := query.Reduced
	if reduced == 0 {
		reduced = sweep.ReducedMarker(values)
	}

	triples, err := sweep.EnumerateWeightTriples(values, reduced)
	if err != nil {
		return nil, err
	}
	return &EnumerateWeightsResponse{Reduced: reduced, Triples: triples}, nil
}
