package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/petstore-e2e/internal/domains/reports/domain"
	"github.com/Apurer/petstore-e2e/internal/domains/reports/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists run reports in PostgreSQL using GORM. The schema is
// owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// runRecord keeps the failed step IDs denormalized so history can be listed
// without loading every case result.
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

// Save stores the run and its results atomically. Saving an existing ID
// replaces it.
func (r *Repository) Save(ctx context.Context, run *domain.Run) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if run == nil {
		return errors.New("run is nil")
	}
	if err := run.Validate(); err != nil {
		return err
	}
	record, results := toRecords(run)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("run_id = ?", run.ID).Delete(&caseResultRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Save(&record).Error; err != nil {
			return err
		}
		if len(results) == 0 {
			return nil
		}
		return tx.Create(&results).Error
	})
}

// GetByID loads a run with its results in execution order.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record runRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var results []caseResultRecord
	if err := r.db.WithContext(ctx).Where("run_id = ?", id).Order("position").Find(&results).Error; err != nil {
		return nil, err
	}
	return toDomain(record, results), nil
}

// List returns the most recent runs first.
func (r *Repository) List(ctx context.Context, limit int) ([]*domain.Run, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var records []runRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []*domain.Run{}, nil
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var results []caseResultRecord
	if err := r.db.WithContext(ctx).Where("run_id IN ?", ids).Order("run_id, position").Find(&results).Error; err != nil {
		return nil, err
	}
	byRun := map[string][]caseResultRecord{}
	for _, res := range results {
		byRun[res.RunID] = append(byRun[res.RunID], res)
	}

	runs := make([]*domain.Run, 0, len(records))
	for _, rec := range records {
		runs = append(runs, toDomain(rec, byRun[rec.ID]))
	}
	return runs, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres run repository not configured")
	}
	return nil
}

func toRecords(run *domain.Run) (runRecord, []caseResultRecord) {
	passed, failed, skipped := run.Counts()
	record := runRecord{
		ID:          run.ID,
		BaseURL:     run.BaseURL,
		StartedAt:   run.StartedAt.UTC(),
		FinishedAt:  run.FinishedAt.UTC(),
		Passed:      passed,
		Failed:      failed,
		Skipped:     skipped,
		FailedSteps: pq.StringArray(run.FailedSteps()),
	}
	results := make([]caseResultRecord, 0, len(run.Results))
	for i, res := range run.Results {
		results = append(results, caseResultRecord{
			RunID:      run.ID,
			Position:   i,
			Seq:        res.Seq,
			CaseName:   res.Case,
			Step:       res.Step,
			Outcome:    string(res.Outcome),
			Kind:       res.Kind,
			Message:    res.Message,
			DurationMs: res.Duration.Milliseconds(),
		})
	}
	return record, results
}

func toDomain(record runRecord, results []caseResultRecord) *domain.Run {
	run := &domain.Run{
		ID:         record.ID,
		BaseURL:    record.BaseURL,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Results:    make([]domain.CaseResult, 0, len(results)),
	}
	for _, res := range results {
		run.Results = append(run.Results, domain.CaseResult{
			Seq:      res.Seq,
			Case:     res.CaseName,
			Step:     res.Step,
			Outcome:  domain.Outcome(res.Outcome),
			Kind:     res.Kind,
			Message:  res.Message,
			Duration: time.Duration(res.DurationMs) * time.Millisecond,
		})
	}
	return run
}
