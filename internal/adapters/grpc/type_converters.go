package grpc

import (
	"fmt"
	"math"
	"strconv"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// Conversion helpers for the domain <-> protobuf Struct boundary. Seeds
// travel as decimal strings because Struct numbers are doubles.

func encodeSeed(seed uint64) string {
	return strconv.FormatUint(seed, 10)
}

func decodeSeed(s *structpb.Struct) (uint64, error) {
	v, ok := s.GetFields()["seed"]
	if !ok || v.GetStringValue() == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(v.GetStringValue(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seed %q: %w", v.GetStringValue(), err)
	}
	return seed, nil
}

func number(s *structpb.Struct, key string, fallback float64) float64 {
	v, ok := s.GetFields()[key]
	if !ok {
		return fallback
	}
	if _, isNum := v.GetKind().(*structpb.Value_NumberValue); !isNum {
		return math.NaN()
	}
	return v.GetNumberValue()
}

func integer(s *structpb.Struct, key string) int {
	v := number(s, key, 0)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

func paramsToMap(p grove.Params) map[string]interface{} {
	return map[string]interface{}{
		"t3_mult":          p.Multipliers.T3,
		"t4_mult":          p.Multipliers.T4,
		"vivid_mult":       p.Multipliers.Vivid,
		"primal_mult":      p.Multipliers.Primal,
		"wild_mult":        p.Multipliers.Wild,
		"p1":               p.Probabilities.T3ToT4,
		"p2":               p.Probabilities.T2ToT3,
		"p3":               p.Probabilities.T1ToT2,
		"destroy_chance":   p.DestroyChance,
		"yellow_risk_pick": p.YellowRisk.String(),
	}
}

// paramsFromStruct reads engine parameters; missing fields keep their
// defaults and non-numeric fields fail validation
func paramsFromStruct(s *structpb.Struct) (grove.Params, error) {
	d := grove.DefaultParams()
	pick, err := grove.ParseYellowRiskPick(s.GetFields()["yellow_risk_pick"].GetStringValue())
	if err != nil {
		return grove.Params{}, err
	}
	p := grove.Params{
		Multipliers: grove.Multipliers{
			T3:     number(s, "t3_mult", d.Multipliers.T3),
			T4:     number(s, "t4_mult", d.Multipliers.T4),
			Vivid:  number(s, "vivid_mult", d.Multipliers.Vivid),
			Primal: number(s, "primal_mult", d.Multipliers.Primal),
			Wild:   number(s, "wild_mult", d.Multipliers.Wild),
		},
		Probabilities: grove.Probabilities{
			T3ToT4: number(s, "p1", d.Probabilities.T3ToT4),
			T2ToT3: number(s, "p2", d.Probabilities.T2ToT3),
			T1ToT2: number(s, "p3", d.Probabilities.T1ToT2),
		},
		DestroyChance: number(s, "destroy_chance", d.DestroyChance),
		YellowRisk:    pick,
	}
	return p, p.Validate()
}

func weightToMap(w grove.WeightTriple) map[string]interface{} {
	return map[string]interface{}{"yellow": w.Yellow, "blue": w.Blue, "purple": w.Purple}
}

func weightFromStruct(s *structpb.Struct) grove.WeightTriple {
	return grove.WeightTriple{
		Yellow: number(s, "yellow", 0),
		Blue:   number(s, "blue", 0),
		Purple: number(s, "purple", 0),
	}
}

func weightsToList(ws []grove.WeightTriple) []interface{} {
	out := make([]interface{}, len(ws))
	for i, w := range ws {
		out[i] = weightToMap(w)
	}
	return out
}

func weightsFromList(l *structpb.ListValue) []grove.WeightTriple {
	out := make([]grove.WeightTriple, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		out = append(out, weightFromStruct(v.GetStructValue()))
	}
	return out
}

func floatsToList(vs []float64) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func floatsFromList(l *structpb.ListValue) []float64 {
	out := make([]float64, 0, len(l.GetValues()))
	for _, v := range l.GetValues() {
		out = append(out, v.GetNumberValue())
	}
	return out
}

// EncodeRunSweepRequest converts a sweep command to its wire form
func EncodeRunSweepRequest(cmd *commands.RunSweepCommand) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"params":      paramsToMap(cmd.Params),
		"iterations":  cmd.Iterations,
		"parallelism": cmd.Parallelism,
		"seed":        encodeSeed(cmd.Seed),
		"weights":     weightsToList(cmd.Weights),
	})
}

// DecodeRunSweepRequest converts the wire form back into a sweep command
func DecodeRunSweepRequest(s *structpb.Struct) (*commands.RunSweepCommand, error) {
	params, err := paramsFromStruct(s.GetFields()["params"].GetStructValue())
	if err != nil {
		return nil, err
	}
	seed, err := decodeSeed(s)
	if err != nil {
		return nil, err
	}
	return &commands.RunSweepCommand{
		Params:      params,
		Iterations:  integer(s, "iterations"),
		Parallelism: integer(s, "parallelism"),
		Seed:        seed,
		Weights:     weightsFromList(s.GetFields()["weights"].GetListValue()),
	}, nil
}

// EncodeRunSweepResponse converts sweep results to their wire form
func EncodeRunSweepResponse(resp *commands.RunSweepResponse) (*structpb.Struct, error) {
	points := make([]interface{}, len(resp.Points))
	for i, p := range resp.Points {
		m := weightToMap(p.Weights)
		m["iterations"] = p.Iterations
		m["mean"] = p.Mean
		m["variance"] = p.Variance
		m["std_dev"] = p.StdDev
		points[i] = m
	}
	return structpb.NewStruct(map[string]interface{}{
		"run_id": resp.RunID.String(),
		"seed":   encodeSeed(resp.Seed),
		"stored": resp.Stored,
		"points": points,
	})
}

// DecodeRunSweepResponse converts the wire form back into sweep results
func DecodeRunSweepResponse(s *structpb.Struct) (*commands.RunSweepResponse, error) {
	seed, err := decodeSeed(s)
	if err != nil {
		return nil, err
	}
	var id sweep.RunID
	if raw := s.GetFields()["run_id"].GetStringValue(); raw != "" {
		if id, err = sweep.ParseRunID(raw); err != nil {
			return nil, err
		}
	}

	values := s.GetFields()["points"].GetListValue().GetValues()
	points := make([]sweep.Point, 0, len(values))
	for _, v := range values {
		ps := v.GetStructValue()
		points = append(points, sweep.Point{
			Weights:    weightFromStruct(ps),
			Iterations: integer(ps, "iterations"),
			Mean:       number(ps, "mean", 0),
			Variance:   number(ps, "variance", 0),
			StdDev:     number(ps, "std_dev", 0),
		})
	}
	return &commands.RunSweepResponse{
		RunID:  id,
		Seed:   seed,
		Points: points,
		Stored: s.GetFields()["stored"].GetBoolValue(),
	}, nil
}

// EncodeRunIterationRequest converts an iteration command to its wire form
func EncodeRunIterationRequest(cmd *commands.RunIterationCommand) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"params":  paramsToMap(cmd.Params),
		"weights": weightToMap(cmd.Weights),
		"seed":    encodeSeed(cmd.Seed),
	})
}

// DecodeRunIterationRequest converts the wire form back into an iteration command
func DecodeRunIterationRequest(s *structpb.Struct) (*commands.RunIterationCommand, error) {
	params, err := paramsFromStruct(s.GetFields()["params"].GetStructValue())
	if err != nil {
		return nil, err
	}
	seed, err := decodeSeed(s)
	if err != nil {
		return nil, err
	}
	return &commands.RunIterationCommand{
		Params:  params,
		Weights: weightFromStruct(s.GetFields()["weights"].GetStructValue()),
		Seed:    seed,
	}, nil
}

// EncodeRunIterationResponse converts an iteration result to its wire form
func EncodeRunIterationResponse(resp *commands.RunIterationResponse) (*structpb.Struct, error) {
	crops := make([]interface{}, len(resp.Crops))
	for i := range resp.Crops {
		c := &resp.Crops[i]
		crops[i] = map[string]interface{}{
			"label":       c.Label(),
			"color":       c.Color.String(),
			"priority":    int(c.Priority),
			"t1":          c.TierOne,
			"t2":          c.TierTwo,
			"t3":          c.TierThree,
			"t4":          c.TierFour,
			"upgrades":    c.UpgradeCount,
			"harvestable": c.Harvestable,
		}
	}
	return structpb.NewStruct(map[string]interface{}{
		"yield": resp.Yield,
		"seed":  encodeSeed(resp.Seed),
		"crops": crops,
	})
}

// DecodeRunIterationResponse converts the wire form back into an iteration result
func DecodeRunIterationResponse(s *structpb.Struct) (*commands.RunIterationResponse, error) {
	seed, err := decodeSeed(s)
	if err != nil {
		return nil, err
	}

	values := s.GetFields()["crops"].GetListValue().GetValues()
	crops := make([]grove.Crop, 0, len(values))
	for _, v := range values {
		cs := v.GetStructValue()
		label := cs.GetFields()["label"].GetStringValue()
		id, ok := grove.IDForLabel(label)
		if !ok {
			return nil, fmt.Errorf("invalid crop label %q", label)
		}
		color, err := grove.ParseColor(cs.GetFields()["color"].GetStringValue())
		if err != nil {
			return nil, err
		}
		crops = append(crops, grove.Crop{
			ID:           id,
			PlotID:       label[:1],
			Harvestable:  cs.GetFields()["harvestable"].GetBoolValue(),
			TierOne:      integer(cs, "t1"),
			TierTwo:      integer(cs, "t2"),
			TierThree:    integer(cs, "t3"),
			TierFour:     integer(cs, "t4"),
			Color:        color,
			UpgradeCount: integer(cs, "upgrades"),
			Priority:     grove.Priority(integer(cs, "priority")),
		})
	}
	return &commands.RunIterationResponse{Yield: number(s, "yield", 0), Seed: seed, Crops: crops}, nil
}

// EncodeEnumerateWeightsRequest converts an enumeration query to its wire form
func EncodeEnumerateWeightsRequest(q *queries.EnumerateWeightsQuery) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"values":  floatsToList(q.Values),
		"reduced": q.Reduced,
	})
}

// DecodeEnumerateWeightsRequest converts the wire form back into an enumeration query
func DecodeEnumerateWeightsRequest(s *structpb.Struct) *queries.EnumerateWeightsQuery {
	return &queries.EnumerateWeightsQuery{
		Values:  floatsFromList(s.GetFields()["values"].GetListValue()),
		Reduced: number(s, "reduced", 0),
	}
}

// EncodeEnumerateWeightsResponse converts enumerated triples to their wire form
func EncodeEnumerateWeightsResponse(resp *queries.EnumerateWeightsResponse) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"reduced": resp.Reduced,
		"triples": weightsToList(resp.Triples),
	})
}

// DecodeEnumerateWeightsResponse converts the wire form back into enumerated triples
func DecodeEnumerateWeightsResponse(s *structpb.Struct) *queries.EnumerateWeightsResponse {
	return &queries.EnumerateWeightsResponse{
		Reduced: number(s, "reduced", 0),
		Triples: weightsFromList(s.GetFields()["triples"].GetListValue()),
	}
}
