package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.batch_runs (
//     id              TEXT PRIMARY KEY,
//     total           INTEGER,
//     processed       INTEGER,
//     skipped         INTEGER,
//     elapsed_ms      BIGINT,
//     summary         JSONB,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type BatchRun struct {
	ID        string         `gorm:"primaryKey;column:id" json:"id"`
	Total     int            `gorm:"column:total" json:"total"`
	Processed int            `gorm:"column:processed" json:"processed"`
	Skipped   int            `gorm:"column:skipped" json:"skipped"`
	ElapsedMS int64          `gorm:"column:elapsed_ms" json:"elapsed_ms"`
	Summary   datatypes.JSON `gorm:"column:summary" json:"summary"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (BatchRun) TableName() string {
	return "batch_runs"
}

// BatchResult is the in-memory outcome of one full batch pass.
type BatchResult struct {
	RunID       string              `json:"run_id"`
	Total       int                 `json:"total"`
	Processed   int                 `json:"processed"`
	Skipped     int                 `json:"skipped"`
	Elapsed     time.Duration       `json:"-"`
	ElapsedMS   int64               `json:"elapsed_ms"`
	PerCustomer map[string][]string `json:"per_customer,omitempty"`
}
