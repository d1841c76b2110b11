package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

const pointBatchSize = 200

// GormSweepRunRepository implements sweep.ResultRepository using GORM
type GormSweepRunRepository struct {
	db *gorm.DB
}

// NewGormSweepRunRepository creates a new GORM sweep run repository
func NewGormSweepRunRepository(db *gorm.DB) *GormSweepRunRepository {
	return &GormSweepRunRepository{db: db}
}

// Save writes the run row and replaces its points in one transaction
func (r *GormSweepRunRepository) Save(ctx context.Context, run *sweep.Run) error {
	model := runToModel(run)
	points := pointsToModels(run)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Points").Save(model).Error; err != nil {
			return fmt.Errorf("failed to save sweep run: %w", err)
		}
		if err := tx.Where("run_id = ?", model.ID).Delete(&SweepPointModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear sweep points: %w", err)
		}
		if len(points) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(points, pointBatchSize).Error; err != nil {
			return fmt.Errorf("failed to save sweep points: %w", err)
		}
		return nil
	})
}

// FindByID loads a run with its points in input order
func (r *GormSweepRunRepository) FindByID(ctx context.Context, id sweep.RunID) (*sweep.Run, error) {
	var model SweepRunModel
	result := r.db.WithContext(ctx).
		Preload("Points", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id.String()).
		First(&model)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, &sweep.ErrRunNotFound{ID: id.String()}
		}
		return nil, fmt.Errorf("failed to find sweep run: %w", result.Error)
	}

	return modelToRun(&model)
}

// List returns runs newest first, without points
func (r *GormSweepRunRepository) List(ctx context.Context, opts sweep.ListOptions) ([]*sweep.Run, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if opts.Status != nil {
		query = query.Where("status = ?", string(*opts.Status))
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		query = query.Offset(opts.Offset)
	}

	var models []SweepRunModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list sweep runs: %w", err)
	}

	runs := make([]*sweep.Run, len(models))
	for i := range models {
		run, err := modelToRun(&models[i])
		if err != nil {
			return nil, err
		}
		runs[i] = run
	}
	return runs, nil
}

func runToModel(run *sweep.Run) *SweepRunModel {
	p := run.Params()
	var lastError string
	if err := run.LastError(); err != nil {
		lastError = err.Error()
	}
	return &SweepRunModel{
		ID:             run.ID().String(),
		Status:         string(run.Status()),
		Iterations:     run.Iterations(),
		Parallelism:    run.Parallelism(),
		Seed:           int64(run.Seed()),
		T3Mult:         p.Multipliers.T3,
		T4Mult:         p.Multipliers.T4,
		VividMult:      p.Multipliers.Vivid,
		PrimalMult:     p.Multipliers.Primal,
		WildMult:       p.Multipliers.Wild,
		P1:             p.Probabilities.T3ToT4,
		P2:             p.Probabilities.T2ToT3,
		P3:             p.Probabilities.T1ToT2,
		DestroyChance:  p.DestroyChance,
		YellowRiskPick: p.YellowRisk.String(),
		PointCount:     run.PointCount(),
		LastError:      lastError,
		CreatedAt:      run.CreatedAt(),
		StartedAt:      run.StartedAt(),
		FinishedAt:     run.FinishedAt(),
	}
}

func pointsToModels(run *sweep.Run) []SweepPointModel {
	points := run.Points()
	models := make([]SweepPointModel, len(points))
	for i, p := range points {
		models[i] = SweepPointModel{
			RunID:        run.ID().String(),
			Position:     i,
			YellowWeight: p.Weights.Yellow,
			BlueWeight:   p.Weights.Blue,
			PurpleWeight: p.Weights.Purple,
			Iterations:   p.Iterations,
			Mean:         p.Mean,
			Variance:     p.Variance,
			StdDev:       p.StdDev,
		}
	}
	return models
}

func modelToRun(model *SweepRunModel) (*sweep.Run, error) {
	id, err := sweep.ParseRunID(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep run id in database: %w", err)
	}

	pick, err := grove.ParseYellowRiskPick(model.YellowRiskPick)
	if err != nil {
		return nil, fmt.Errorf("invalid yellow risk pick in database: %w", err)
	}

	params := grove.Params{
		Multipliers: grove.Multipliers{
			T3:     model.T3Mult,
			T4:     model.T4Mult,
			Vivid:  model.VividMult,
			Primal: model.PrimalMult,
			Wild:   model.WildMult,
		},
		Probabilities: grove.Probabilities{T3ToT4: model.P1, T2ToT3: model.P2, T1ToT2: model.P3},
		DestroyChance: model.DestroyChance,
		YellowRisk:    pick,
	}

	var points []sweep.Point
	if len(model.Points) > 0 {
		points = make([]sweep.Point, len(model.Points))
		for i, pm := range model.Points {
			points[i] = sweep.Point{
				Weights:    grove.WeightTriple{Yellow: pm.YellowWeight, Blue: pm.BlueWeight, Purple: pm.PurpleWeight},
				Iterations: pm.Iterations,
				Mean:       pm.Mean,
				Variance:   pm.Variance,
				StdDev:     pm.StdDev,
			}
		}
	}

	return sweep.ReconstructRun(
		id,
		params,
		model.Iterations,
		model.Parallelism,
		uint64(model.Seed),
		model.PointCount,
		points,
		shared.LifecycleStatus(model.Status),
		model.CreatedAt,
		model.StartedAt,
		model.FinishedAt,
		model.LastError,
	), nil
}
