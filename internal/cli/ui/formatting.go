package ui

import (
	"fmt"
	"time"

	"mailSuite/internal/scenario"
)

// FormatStatus возвращает иконку, цвет и текст для статуса сценария или прогона
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case string(scenario.StatusPassed):
		return IconCheckmark, ColorGreen, "пройден"
	case string(scenario.StatusFailed):
		return IconCross, ColorRed, "провален"
	case string(scenario.StatusSkipped):
		return IconSkip, ColorYellow, "пропущен"
	case "running":
		return IconPlay, ColorCyan, "выполняется"
	default:
		return IconClock, ColorGray, status
	}
}

// Paint оборачивает текст в цвет. Пустой цвет отключает раскраску.
func Paint(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + ColorReset
}

// FormatDuration округляет длительность до миллисекунд
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}
