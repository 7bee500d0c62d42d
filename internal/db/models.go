package db

import (
	"encoding/json"
	"time"
)

// ReconciliationRun maps vitae.reconciliation_runs: one merge of a résumé
// against a reference profile, inputs and annotated output stored verbatim.
type ReconciliationRun struct {
	RunID            int64           `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID          string          `gorm:"column:run_uuid;type:uuid;not null;default:gen_random_uuid();unique"`
	ResumePayload    json.RawMessage `gorm:"column:resume_payload;type:jsonb;not null"`
	ReferencePayload json.RawMessage `gorm:"column:reference_payload;type:jsonb;not null"`
	MergedPayload    json.RawMessage `gorm:"column:merged_payload;type:jsonb;not null"`
	DurationMs       int64           `gorm:"column:duration_ms;type:bigint;not null;default:0"`
	CreatedAt        time.Time       `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (ReconciliationRun) TableName() string { return "vitae.reconciliation_runs" }

// VerificationRun maps vitae.verification_runs. Confidence and band are
// denormalized out of the report payload so runs can be filtered without
// unpacking JSON.
type VerificationRun struct {
	RunID            int64           `gorm:"column:run_id;primaryKey;autoIncrement"`
	RunUUID          string          `gorm:"column:run_uuid;type:uuid;not null;default:gen_random_uuid();unique"`
	ResumePayload    json.RawMessage `gorm:"column:resume_payload;type:jsonb;not null"`
	ReferencePayload json.RawMessage `gorm:"column:reference_payload;type:jsonb;not null"`
	ReportPayload    json.RawMessage `gorm:"column:report_payload;type:jsonb;not null"`
	Confidence       float64         `gorm:"column:overall_confidence;type:double precision;not null"`
	ConfidenceBand   string          `gorm:"column:confidence_band;type:text;not null"`
	Discrepancies    int             `gorm:"column:discrepancy_count;type:integer;not null;default:0"`
	DurationMs       int64           `gorm:"column:duration_ms;type:bigint;not null;default:0"`
	CreatedAt        time.Time       `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
}

func (VerificationRun) TableName() string { return "vitae.verification_runs" }

func autoMigrateModels() []any {
	return []any{
		&ReconciliationRun{},
		&VerificationRun{},
	}
}
