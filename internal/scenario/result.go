package scenario

import (
	"context"
	"time"
)

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result - исход одной строки сценария.
type Result struct {
	Suite       string
	Scenario    string
	Case        string
	Description string
	Status      Status
	Failures    []string // сообщения проверок с ожидаемым и фактическим значением
	SkipReason  string
	Teardown    string // ошибка AfterEach, если была
	StartedAt   time.Time
	Duration    time.Duration
}

// FullName - "набор/сценарий[/строка]".
func (r Result) FullName() string {
	name := r.Suite + "/" + r.Scenario
	if r.Case != "" {
		name += "/" + r.Case
	}
	return name
}

// Report - итог одного запуска.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// OK - ни одна строка не упала. Пропущенные сценарии запуск не проваливают сами по себе.
func (r *Report) OK() bool {
	return r.Count(StatusFailed) == 0
}

// Recorder сохраняет ход запуска во внешний журнал.
type Recorder interface {
	StartRun(ctx context.Context, runID string, suites []string) error
	RecordResult(ctx context.Context, runID string, res Result) error
	FinishRun(ctx context.Context, report *Report) error
}
