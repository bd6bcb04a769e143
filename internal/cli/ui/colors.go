package ui

// ANSI цветовые коды
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

const (
	IconCheckmark = "✓"
	IconCross     = "✗"
	IconSkip      = "↷"
	IconPlay      = "▶"
	IconClock     = "⏳"
	IconMail      = "✉"
	IconList      = "📋"
	IconChart     = "📊"
	IconTime      = "🕐"
)
