package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the run report store.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&runRecord{},
		&caseResultRecord{},
	)
}

// Run schema mirrors the reports Postgres adapter.
type runRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	BaseURL     string         `gorm:"column:base_url"`
	StartedAt   time.Time      `gorm:"column:started_at;index"`
	FinishedAt  time.Time      `gorm:"column:finished_at"`
	Passed      int            `gorm:"column:passed"`
	Failed      int            `gorm:"column:failed"`
	Skipped     int            `gorm:"column:skipped"`
	FailedSteps pq.StringArray `gorm:"column:failed_steps;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (runRecord) TableName() string { return "runs" }

// Case result schema, one row per executed or skipped step.
type caseResultRecord struct {
	ID         int64  `gorm:"primaryKey;column:id;autoIncrement"`
	RunID      string `gorm:"column:run_id;size:64;index:idx_case_results_run_position"`
	Position   int    `gorm:"column:position;index:idx_case_results_run_position"`
	Seq        int    `gorm:"column:seq"`
	CaseName   string `gorm:"column:case_name"`
	Step       string `gorm:"column:step"`
	Outcome    string `gorm:"column:outcome;type:varchar(16)"`
	Kind       string `gorm:"column:kind;type:varchar(32)"`
	Message    string `gorm:"column:message"`
	DurationMs int64  `gorm:"column:duration_ms"`
}

func (caseResultRecord) TableName() string { return "case_results" }
