package commands

import (
	"fmt"
	"io"
	"strings"

	"mailSuite/internal/cli/ui"
	"mailSuite/internal/scenario"
)

// PrintReport выводит результаты запуска построчно и итоговую сводку
func PrintReport(w io.Writer, report *scenario.Report) {
	suite := ""
	for _, res := range report.Results {
		if res.Suite != suite {
			suite = res.Suite
			fmt.Fprintf(w, "\n"+ui.ColorBold+"=== %s ==="+ui.ColorReset+"\n", suite)
		}
		printResult(w, res)
	}

	fmt.Fprintln(w)
	printSummary(w, report)
}

func printResult(w io.Writer, res scenario.Result) {
	icon, color, _ := ui.FormatStatus(string(res.Status))
	name := res.Scenario
	if res.Case != "" {
		name += " [" + res.Case + "]"
	}
	fmt.Fprintf(w, "  %s %s %s\n", ui.Paint(color, icon), name, ui.Paint(ui.ColorGray, "("+ui.FormatDuration(res.Duration)+")"))

	for _, failure := range res.Failures {
		for _, line := range strings.Split(strings.TrimSpace(failure), "\n") {
			fmt.Fprintln(w, "      "+ui.Paint(ui.ColorRed, line))
		}
	}
	if res.SkipReason != "" {
		fmt.Fprintln(w, "      "+ui.Paint(ui.ColorYellow, res.SkipReason))
	}
	if res.Teardown != "" {
		fmt.Fprintln(w, "      "+ui.Paint(ui.ColorYellow, "ошибка завершения: "+res.Teardown))
	}
}

func printSummary(w io.Writer, report *scenario.Report) {
	verdict := ui.Paint(ui.ColorGreen, ui.IconCheckmark+" запуск пройден")
	if !report.OK() {
		verdict = ui.Paint(ui.ColorRed, ui.IconCross+" запуск провален")
	}
	fmt.Fprintf(w, ui.ColorBold+ui.IconChart+" Итого:"+ui.ColorReset+" пройдено %d, провалено %d, пропущено %d\n",
		report.Count(scenario.StatusPassed),
		report.Count(scenario.StatusFailed),
		report.Count(scenario.StatusSkipped))
	fmt.Fprintf(w, ui.ColorGray+ui.IconTime+" %s, запуск %s"+ui.ColorReset+"\n",
		ui.FormatDuration(report.FinishedAt.Sub(report.StartedAt)), report.RunID)
	fmt.Fprintln(w, verdict)
}
