package database

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"mailSuite/internal/scenario"
)

// RunRepository пишет журнал прогонов. Реализует scenario.Recorder.
type RunRepository struct {
	db *gorm.DB
}

var _ scenario.Recorder = (*RunRepository)(nil)

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) StartRun(ctx context.Context, runID string, suites []string) error {
	run := &Run{
		ID:        runID,
		Suites:    strings.Join(suites, ","),
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *RunRepository) RecordResult(ctx context.Context, runID string, res scenario.Result) error {
	row := &ScenarioResult{
		RunID:      runID,
		Suite:      res.Suite,
		Scenario:   res.Scenario,
		CaseName:   res.Case,
		Status:     string(res.Status),
		Failures:   strings.Join(res.Failures, "\n"),
		SkipReason: res.SkipReason,
		Teardown:   res.Teardown,
		DurationMs: res.Duration.Milliseconds(),
		StartedAt:  res.StartedAt,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *RunRepository) FinishRun(ctx context.Context, report *scenario.Report) error {
	status := RunStatusPassed
	if !report.OK() {
		status = RunStatusFailed
	}
	return r.db.WithContext(ctx).Model(&Run{}).
		Where("id = ?", report.RunID).
		Updates(map[string]any{
			"status":      status,
			"passed":      report.Count(scenario.StatusPassed),
			"failed":      report.Count(scenario.StatusFailed),
			"skipped":     report.Count(scenario.StatusSkipped),
			"finished_at": report.FinishedAt,
		}).Error
}

func (r *RunRepository) GetRun(ctx context.Context, runID string) (*Run, error) {
	var run Run
	if err := r.db.WithContext(ctx).Where("id = ?", runID).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	if err := r.db.WithContext(ctx).Order("started_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *RunRepository) ListResults(ctx context.Context, runID string) ([]ScenarioResult, error) {
	var results []ScenarioResult
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// LogLLMRequest сохраняет запрос к LLM и ответ на него.
func (r *RunRepository) LogLLMRequest(ctx context.Context, role, promptText, responseText, model string, tokensUsed int) error {
	entry := &LlmLog{
		Role:         role,
		PromptText:   promptText,
		ResponseText: responseText,
		Model:        model,
		TokensUsed:   tokensUsed,
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
