package persistence

import (
	"time"
)

// SweepRunModel represents the sweep_runs table
type SweepRunModel struct {
	ID          string `gorm:"column:id;primaryKey"`
	Status      string `gorm:"column:status;not null;index"`
	Iterations  int    `gorm:"column:iterations;not null"`
	Parallelism int    `gorm:"column:parallelism;not null"`
	Seed        int64  `gorm:"column:seed;not null;default:0"` // uint64 bits

	T3Mult         float64 `gorm:"column:t3_mult;not null"`
	T4Mult         float64 `gorm:"column:t4_mult;not null"`
	VividMult      float64 `gorm:"column:vivid_mult;not null"`
	PrimalMult     float64 `gorm:"column:primal_mult;not null"`
	WildMult       float64 `gorm:"column:wild_mult;not null"`
	P1             float64 `gorm:"column:p1;not null"`
	P2             float64 `gorm:"column:p2;not null"`
	P3             float64 `gorm:"column:p3;not null"`
	DestroyChance  float64 `gorm:"column:destroy_chance;not null"`
	YellowRiskPick string  `gorm:"column:yellow_risk_pick;not null"`

	PointCount int        `gorm:"column:point_count;not null;default:0"`
	LastError  string     `gorm:"column:last_error;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at;not null;index"`
	StartedAt  *time.Time `gorm:"column:started_at"`
	FinishedAt *time.Time `gorm:"column:finished_at"`

	Points []SweepPointModel `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE"`
}

func (SweepRunModel) TableName() string {
	return "sweep_runs"
}

// SweepPointModel represents the sweep_points table, one row per weight triple
type SweepPointModel struct {
	ID           uint    `gorm:"column:id;primaryKey;autoIncrement"`
	RunID        string  `gorm:"column:run_id;not null;index:idx_sweep_points_run_position,priority:1"`
	Position     int     `gorm:"column:position;not null;index:idx_sweep_points_run_position,priority:2"`
	YellowWeight float64 `gorm:"column:yellow_weight;not null"`
	BlueWeight   float64 `gorm:"column:blue_weight;not null"`
	PurpleWeight float64 `gorm:"column:purple_weight;not null"`
	Iterations   int     `gorm:"column:iterations;not null"`
	Mean         float64 `gorm:"column:mean;not null"`
	Variance     float64 `gorm:"column:variance;not null"`
	StdDev       float64 `gorm:"column:std_dev;not null"`
}

func (SweepPointModel) TableName() string {
	return "sweep_points"
}
