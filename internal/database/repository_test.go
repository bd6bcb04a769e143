package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"mailSuite/internal/scenario"
)

func newMockRepo(t *testing.T) (*RunRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)
	return NewRunRepository(db.DB), mock
}

func TestStartRun(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "runs"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.StartRun(context.Background(), "run-1", []string{"login", "common-mail"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordResult(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "scenario_results"`)).
		WithArgs("run-1", "login", "login-with-invalid-credentials", "blank password", "failed",
			"expected: a\nactual: b", "", "", int64(1500), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	err := repo.RecordResult(context.Background(), "run-1", scenario.Result{
		Suite:     "login",
		Scenario:  "login-with-invalid-credentials",
		Case:      "blank password",
		Status:    scenario.StatusFailed,
		Failures:  []string{"expected: a", "actual: b"},
		StartedAt: time.Now(),
		Duration:  1500 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishRunStoresCounters(t *testing.T) {
	repo, mock := newMockRepo(t)
	report := &scenario.Report{
		RunID:      "run-1",
		FinishedAt: time.Now(),
		Results: []scenario.Result{
			{Status: scenario.StatusPassed},
			{Status: scenario.StatusSkipped},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "runs" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.FinishRun(context.Background(), report))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListResults(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "run_id", "suite", "scenario", "case_name", "status", "failures", "skip_reason", "teardown", "duration_ms", "started_at", "created_at"}).
		AddRow(1, "run-1", "common-mail", "send-letter-with-all-fields", "", "passed", "", "", "", 900, now, now).
		AddRow(2, "run-1", "common-mail", "letter-in-sent-folder", "", "skipped", "", "не пройдены зависимости: send-letter-with-all-fields", "", 0, now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "scenario_results" WHERE run_id = $1 ORDER BY id`)).
		WithArgs("run-1").
		WillReturnRows(rows)

	results, err := repo.ListResults(context.Background(), "run-1")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "send-letter-with-all-fields", results[0].Scenario)
	assert.Equal(t, int64(900), results[0].DurationMs)
	assert.Equal(t, "skipped", results[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogLLMRequest(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "llm_logs"`)).
		WithArgs("system", "popup?", `{"has_popup":false}`, "gpt-4o", 42, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.LogLLMRequest(context.Background(), "system", "popup?", `{"has_popup":false}`, "gpt-4o", 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
