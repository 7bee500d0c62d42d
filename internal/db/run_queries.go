package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

func (p *Pool) InsertReconciliationRun(ctx context.Context, run *ReconciliationRun) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if run == nil {
		return fmt.Errorf("run is nil")
	}
	if err := p.gdb.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("insert reconciliation run: %w", err)
	}
	return nil
}

func (p *Pool) InsertVerificationRun(ctx context.Context, run *VerificationRun) error {
	if p == nil || p.gdb == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if run == nil {
		return fmt.Errorf("run is nil")
	}
	if err := p.gdb.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("insert verification run: %w", err)
	}
	return nil
}

func (p *Pool) GetReconciliationRunByUUID(ctx context.Context, runUUID string) (*ReconciliationRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	var run ReconciliationRun
	err := p.gdb.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("get reconciliation run %s: %w", runUUID, err)
	}
	return &run, nil
}

func (p *Pool) GetVerificationRunByUUID(ctx context.Context, runUUID string) (*VerificationRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}

	var run VerificationRun
	err := p.gdb.WithContext(ctx).Where("run_uuid = ?", runUUID).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("get verification run %s: %w", runUUID, err)
	}
	return &run, nil
}

// ListVerificationRuns returns the most recent runs, newest first.
func (p *Pool) ListVerificationRuns(ctx context.Context, limit int) ([]VerificationRun, error) {
	if p == nil || p.gdb == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if limit <= 0 {
		limit = 25
	}

	var runs []VerificationRun
	err := p.gdb.WithContext(ctx).
		Order("created_at DESC, run_id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list verification runs: %w", err)
	}
	return runs, nil
}
