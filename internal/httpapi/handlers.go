package httpapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"horse.fit/vitae/internal/db"
	"horse.fit/vitae/internal/merge"
	"horse.fit/vitae/internal/profile"
)

const maxListLimit = 200

type documentsRequest struct {
	Resume    json.RawMessage `json:"resume"`
	Reference json.RawMessage `json:"reference"`
	// SecondaryLabel overrides the provenance tag in the rendered record.
	SecondaryLabel string `json:"secondary_label,omitempty"`
}

type reconcileResponse struct {
	RunUUID string               `json:"run_uuid,omitempty"`
	Merged  *merge.MergedProfile `json:"merged"`
	Record  *profile.Record      `json:"record"`
}

type verificationListItem struct {
	RunUUID        string    `json:"run_uuid"`
	Confidence     float64   `json:"overall_confidence"`
	ConfidenceBand string    `json:"confidence_band"`
	Discrepancies  int       `json:"discrepancy_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// decodeDocuments parses and validates both payloads. The error strings are
// user-facing; malformed input is the caller's fault and the only hard
// failure in the whole flow.
func decodeDocuments(c echo.Context) (*documentsRequest, *profile.Record, *profile.Record, error) {
	var req documentsRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return nil, nil, nil, echo.NewHTTPError(400, "request body is not valid JSON")
	}
	if len(req.Resume) == 0 || len(req.Reference) == 0 {
		return nil, nil, nil, echo.NewHTTPError(400, "both resume and reference documents are required")
	}

	resume, err := profile.Decode(req.Resume)
	if err != nil {
		return nil, nil, nil, echo.NewHTTPError(400, "resume document: "+err.Error())
	}
	reference, err := profile.Decode(req.Reference)
	if err != nil {
		return nil, nil, nil, echo.NewHTTPError(400, "reference document: "+err.Error())
	}
	return &req, resume, reference, nil
}

func (s *Server) renderStyle(label string) merge.RenderStyle {
	style := merge.DefaultStyle
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		style.SecondaryLabel = trimmed
	}
	return style
}

func (s *Server) handleReconcile(c echo.Context) error {
	req, resume, reference, err := decodeDocuments(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	started := time.Now()
	merged := s.reconciler.Reconcile(ctx, resume, reference)
	record := merged.Record(s.renderStyle(req.SecondaryLabel))

	resp := reconcileResponse{
		Merged: merged,
		Record: record,
	}
	resp.RunUUID = s.persistReconciliation(c, req, merged, time.Since(started))
	return success(c, resp)
}

// persistReconciliation stores the run when a pool is wired. Storage failures
// are logged, never surfaced: the caller already has their result.
func (s *Server) persistReconciliation(c echo.Context, req *documentsRequest, merged *merge.MergedProfile, elapsed time.Duration) string {
	if s.pool == nil {
		return ""
	}

	mergedPayload, err := json.Marshal(merged)
	if err != nil {
		s.logger.Error().Err(err).Msg("marshal merged profile for persistence")
		return ""
	}
	run := &db.ReconciliationRun{
		RunUUID:          uuid.NewString(),
		ResumePayload:    req.Resume,
		ReferencePayload: req.Reference,
		MergedPayload:    mergedPayload,
		DurationMs:       elapsed.Milliseconds(),
	}
	if err := s.pool.InsertReconciliationRun(c.Request().Context(), run); err != nil {
		s.logger.Error().Err(err).Msg("persist reconciliation run")
		return ""
	}
	return run.RunUUID
}

func (s *Server) handleVerify(c echo.Context) error {
	req, resume, reference, err := decodeDocuments(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	started := time.Now()
	report := s.scorer.Verify(ctx, resume, reference)

	runUUID := ""
	if s.pool != nil {
		reportPayload, err := json.Marshal(report)
		if err != nil {
			s.logger.Error().Err(err).Msg("marshal verification report for persistence")
		} else {
			run := &db.VerificationRun{
				RunUUID:          uuid.NewString(),
				ResumePayload:    req.Resume,
				ReferencePayload: req.Reference,
				ReportPayload:    reportPayload,
				Confidence:       report.OverallConfidence,
				ConfidenceBand:   report.ConfidenceBand,
				Discrepancies:    len(report.Discrepancies),
				DurationMs:       time.Since(started).Milliseconds(),
			}
			if err := s.pool.InsertVerificationRun(ctx, run); err != nil {
				s.logger.Error().Err(err).Msg("persist verification run")
			} else {
				runUUID = run.RunUUID
			}
		}
	}

	return success(c, map[string]any{
		"run_uuid": runUUID,
		"report":   report,
	})
}

func (s *Server) handleReconciliationDetail(c echo.Context) error {
	if s.pool == nil {
		return failUnavailable(c, "Run persistence is not configured")
	}
	runUUID := strings.TrimSpace(c.Param("run_uuid"))
	if _, err := uuid.Parse(runUUID); err != nil {
		return failBadRequest(c, "run_uuid is not a valid UUID")
	}

	run, err := s.pool.GetReconciliationRunByUUID(c.Request().Context(), runUUID)
	if db.IsNoRows(err) {
		return failNotFound(c, "Reconciliation run not found")
	}
	if err != nil {
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("load reconciliation run")
		return internalError(c, "Failed to load reconciliation run")
	}

	return success(c, map[string]any{
		"run_uuid":    run.RunUUID,
		"merged":      json.RawMessage(run.MergedPayload),
		"duration_ms": run.DurationMs,
		"created_at":  run.CreatedAt,
	})
}

func (s *Server) handleVerificationList(c echo.Context) error {
	if s.pool == nil {
		return failUnavailable(c, "Run persistence is not configured")
	}

	limit := 25
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return failBadRequest(c, "limit must be a positive integer")
		}
		limit = min(parsed, maxListLimit)
	}

	runs, err := s.pool.ListVerificationRuns(c.Request().Context(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("list verification runs")
		return internalError(c, "Failed to list verification runs")
	}

	items := make([]verificationListItem, 0, len(runs))
	for _, run := range runs {
		items = append(items, verificationListItem{
			RunUUID:        run.RunUUID,
			Confidence:     run.Confidence,
			ConfidenceBand: run.ConfidenceBand,
			Discrepancies:  run.Discrepancies,
			CreatedAt:      run.CreatedAt,
		})
	}
	return success(c, map[string]any{"runs": items})
}

func (s *Server) handleVerificationDetail(c echo.Context) error {
	if s.pool == nil {
		return failUnavailable(c, "Run persistence is not configured")
	}
	runUUID := strings.TrimSpace(c.Param("run_uuid"))
	if _, err := uuid.Parse(runUUID); err != nil {
		return failBadRequest(c, "run_uuid is not a valid UUID")
	}

	run, err := s.pool.GetVerificationRunByUUID(c.Request().Context(), runUUID)
	if db.IsNoRows(err) {
		return failNotFound(c, "Verification run not found")
	}
	if err != nil {
		s.logger.Error().Err(err).Str("run_uuid", runUUID).Msg("load verification run")
		return internalError(c, "Failed to load verification run")
	}

	return success(c, map[string]any{
		"run_uuid":    run.RunUUID,
		"report":      json.RawMessage(run.ReportPayload),
		"duration_ms": run.DurationMs,
		"created_at":  run.CreatedAt,
	})
}
