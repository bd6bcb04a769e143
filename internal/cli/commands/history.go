package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"mailSuite/internal/cli/ui"
	"mailSuite/internal/database"
)

// RunStore - чтение журнала прогонов
type RunStore interface {
	GetRun(ctx context.Context, runID string) (*database.Run, error)
	ListRuns(ctx context.Context, limit int) ([]database.Run, error)
	ListResults(ctx context.Context, runID string) ([]database.ScenarioResult, error)
}

// HistoryHandler обрабатывает команды просмотра прошлых запусков
type HistoryHandler struct {
	repo RunStore
	log  *zap.Logger
	out  io.Writer
}

func NewHistoryHandler(repo RunStore, log *zap.Logger, out io.Writer) *HistoryHandler {
	return &HistoryHandler{
		repo: repo,
		log:  log,
		out:  out,
	}
}

// List выводит последние запуски
func (h *HistoryHandler) List(ctx context.Context, limit int) error {
	runs, err := h.repo.ListRuns(ctx, limit)
	if err != nil {
		h.log.Error("Ошибка получения запусков", zap.Error(err))
		return fmt.Errorf("получение запусков: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(h.out, ui.ColorGray+"Запусков пока нет"+ui.ColorReset)
		return nil
	}

	fmt.Fprintf(h.out, ui.ColorYellow+ui.IconList+" Последние запуски (%d):"+ui.ColorReset+"\n", len(runs))
	for _, run := range runs {
		icon, color, text := ui.FormatStatus(run.Status)
		fmt.Fprintf(h.out, "  %s %s  %s  %s  %d/%d/%d\n",
			ui.Paint(color, icon),
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			ui.Paint(color, text),
			run.Passed, run.Failed, run.Skipped)
	}
	return nil
}

// Show выводит результаты одного запуска
func (h *HistoryHandler) Show(ctx context.Context, runID string) error {
	run, err := h.repo.GetRun(ctx, runID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fmt.Fprintln(h.out, ui.ColorRed+ui.IconCross+" Запуск не найден"+ui.ColorReset)
		return fmt.Errorf("запуск %s не найден", runID)
	}
	if err != nil {
		h.log.Error("Ошибка получения запуска", zap.String("run_id", runID), zap.Error(err))
		return fmt.Errorf("получение запуска: %w", err)
	}

	_, color, statusText := ui.FormatStatus(run.Status)
	fmt.Fprintf(h.out, "\n"+ui.ColorBold+"=== Запуск %s ==="+ui.ColorReset+"\n", run.ID)
	fmt.Fprintf(h.out, ui.ColorCyan+"Сьюты:"+ui.ColorReset+" %s\n", run.Suites)
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconChart+" Статус:"+ui.ColorReset+" %s\n", ui.Paint(color, statusText))
	fmt.Fprintf(h.out, ui.ColorCyan+ui.IconTime+" Начат:"+ui.ColorReset+" %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))

	results, err := h.repo.ListResults(ctx, runID)
	if err != nil {
		h.log.Error("Ошибка получения результатов", zap.String("run_id", runID), zap.Error(err))
		return fmt.Errorf("получение результатов: %w", err)
	}

	fmt.Fprintln(h.out)
	for _, res := range results {
		icon, color, _ := ui.FormatStatus(res.Status)
		name := res.Suite + "/" + res.Scenario
		if res.CaseName != "" {
			name += " [" + res.CaseName + "]"
		}
		fmt.Fprintf(h.out, "  %s %s %s\n", ui.Paint(color, icon), name, ui.Paint(ui.ColorGray, fmt.Sprintf("(%dms)", res.DurationMs)))
		if res.Failures != "" {
			for _, line := range strings.Split(res.Failures, "\n") {
				fmt.Fprintln(h.out, "      "+ui.Paint(ui.ColorRed, line))
			}
		}
		if res.SkipReason != "" {
			fmt.Fprintln(h.out, "      "+ui.Paint(ui.ColorYellow, res.SkipReason))
		}
	}
	fmt.Fprintln(h.out)
	return nil
}
