package scenario

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultScenarioTimeout = 3 * time.Minute
	defaultTeardownTimeout = 30 * time.Second
)

// Options настраивает Runner.
type Options struct {
	ScenarioTimeout time.Duration                         // Предел на одну строку сценария
	TeardownTimeout time.Duration                         // Предел на OnFailure, AfterEach и AfterAll
	Recorder        Recorder                              // Журнал результатов, может быть nil
	OnFailure       func(ctx context.Context, res Result) // Вызывается для упавшей строки до AfterEach
}

type Runner struct {
	log  *zap.Logger
	opts Options
}

func NewRunner(log *zap.Logger, opts Options) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.ScenarioTimeout <= 0 {
		opts.ScenarioTimeout = defaultScenarioTimeout
	}
	if opts.TeardownTimeout <= 0 {
		opts.TeardownTimeout = defaultTeardownTimeout
	}
	return &Runner{log: log, opts: opts}
}

// Run выполняет наборы по очереди. Графы зависимостей всех наборов проверяются до первого сценария.
// Ошибка возвращается только для некорректного объявления; упавшие сценарии отражаются в Report.
func (r *Runner) Run(ctx context.Context, suites ...Suite) (*Report, error) {
	ordered := make([][]Scenario, len(suites))
	names := make([]string, len(suites))
	for i, s := range suites {
		scenarios, err := Order(s.Scenarios)
		if err != nil {
			return nil, fmt.Errorf("набор %s: %w", s.Name, err)
		}
		ordered[i] = scenarios
		names[i] = s.Name
	}

	report := &Report{RunID: uuid.NewString(), StartedAt: time.Now()}
	log := r.log.With(zap.String("run_id", report.RunID))
	log.Info("Запуск сценариев", zap.Strings("suites", names))

	if r.opts.Recorder != nil {
		if err := r.opts.Recorder.StartRun(ctx, report.RunID, names); err != nil {
			log.Warn("Не удалось записать начало запуска", zap.Error(err))
		}
	}

	for i, s := range suites {
		r.runSuite(ctx, log, report, s, ordered[i])
	}

	report.FinishedAt = time.Now()
	if r.opts.Recorder != nil {
		if err := r.opts.Recorder.FinishRun(ctx, report); err != nil {
			log.Warn("Не удалось записать итог запуска", zap.Error(err))
		}
	}

	log.Info("Запуск завершен",
		zap.Int("passed", report.Count(StatusPassed)),
		zap.Int("failed", report.Count(StatusFailed)),
		zap.Int("skipped", report.Count(StatusSkipped)),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))
	return report, nil
}

func (r *Runner) runSuite(ctx context.Context, log *zap.Logger, report *Report, s Suite, scenarios []Scenario) {
	log = log.With(zap.String("suite", s.Name))
	log.Info("Набор сценариев", zap.Int("scenarios", len(scenarios)))

	passed := make(map[string]bool, len(scenarios))
	for _, sc := range scenarios {
		if reason := unmetDependency(sc, passed); reason != "" {
			res := Result{
				Suite:       s.Name,
				Scenario:    sc.Name,
				Description: sc.Description,
				Status:      StatusSkipped,
				SkipReason:  reason,
				StartedAt:   time.Now(),
			}
			log.Warn("Сценарий пропущен", zap.String("scenario", sc.Name), zap.String("reason", reason))
			r.record(ctx, log, report, res)
			continue
		}

		ok := true
		for _, c := range sc.Cases() {
			if ctx.Err() != nil {
				ok = false
				r.record(ctx, log, report, Result{
					Suite: s.Name, Scenario: sc.Name, Case: c.Name, Description: sc.Description,
					Status: StatusSkipped, SkipReason: "запуск отменен", StartedAt: time.Now(),
				})
				continue
			}
			res := r.runCase(ctx, log, s, sc, c)
			if res.Status != StatusPassed {
				ok = false
			}
			r.record(ctx, log, report, res)
		}
		passed[sc.Name] = ok
	}

	if s.AfterAll != nil {
		tctx, cancel := r.teardownContext(ctx)
		if err := s.AfterAll(tctx); err != nil {
			log.Error("Ошибка AfterAll", zap.Error(err))
		}
		cancel()
	}
}

func unmetDependency(sc Scenario, passed map[string]bool) string {
	var failed []string
	for _, dep := range sc.DependsOn {
		if !passed[dep] {
			failed = append(failed, dep)
		}
	}
	if len(failed) == 0 {
		return ""
	}
	return "не пройдены зависимости: " + strings.Join(failed, ", ")
}

func (r *Runner) runCase(ctx context.Context, log *zap.Logger, s Suite, sc Scenario, c Case) Result {
	res := Result{
		Suite:       s.Name,
		Scenario:    sc.Name,
		Case:        c.Name,
		Description: sc.Description,
		StartedAt:   time.Now(),
	}
	log = log.With(zap.String("scenario", sc.Name))
	if c.Name != "" {
		log = log.With(zap.String("case", c.Name))
	}
	log.Info("Сценарий запущен")

	sctx, cancel := context.WithTimeout(ctx, r.opts.ScenarioTimeout)
	t := newT(sctx, res.FullName(), log)
	execute(t, c.run)
	if err := sctx.Err(); err != nil && !t.Failed() {
		t.Errorf("сценарий прерван: %v", err)
	}
	cancel()

	res.Duration = time.Since(res.StartedAt)
	res.Failures = t.Failures()
	res.Status = StatusPassed
	if t.Failed() {
		res.Status = StatusFailed
	}

	if res.Status == StatusFailed && r.opts.OnFailure != nil {
		tctx, tcancel := r.teardownContext(ctx)
		r.opts.OnFailure(tctx, res)
		tcancel()
	}
	if s.AfterEach != nil {
		tctx, tcancel := r.teardownContext(ctx)
		if err := s.AfterEach(tctx); err != nil {
			res.Teardown = err.Error()
			log.Error("Ошибка AfterEach", zap.Error(err))
		}
		tcancel()
	}

	if res.Status == StatusPassed {
		log.Info("Сценарий пройден", zap.Duration("duration", res.Duration))
	} else {
		log.Error("Сценарий не пройден", zap.Duration("duration", res.Duration), zap.Strings("failures", res.Failures))
	}
	return res
}

// execute выполняет тело и превращает FailNow и любую другую panic в провал сценария.
func execute(t *T, run func(t *T)) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if _, ok := rec.(failNow); ok {
			return
		}
		t.Errorf("panic: %v", rec)
	}()
	if run == nil {
		t.Errorf("у сценария нет тела")
		return
	}
	run(t)
}

// teardownContext не наследует отмену и дедлайн родителя, чтобы выход из ящика выполнился и после таймаута.
func (r *Runner) teardownContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), r.opts.TeardownTimeout)
}

func (r *Runner) record(ctx context.Context, log *zap.Logger, report *Report, res Result) {
	report.Results = append(report.Results, res)
	if r.opts.Recorder == nil {
		return
	}
	rctx, cancel := r.teardownContext(ctx)
	defer cancel()
	if err := r.opts.Recorder.RecordResult(rctx, report.RunID, res); err != nil {
		log.Warn("Не удалось записать результат", zap.String("scenario", res.FullName()), zap.Error(err))
	}
}
