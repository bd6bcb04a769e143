package ui

import (
	"fmt"
	"io"
	"strings"
)

const version = "0.1.0"

// PrintWelcome выводит заголовок перед запуском сьютов
func PrintWelcome(w io.Writer, target string, suites []string) {
	fmt.Fprintln(w, ColorBold+IconMail+" mailSuite v"+version+ColorReset)
	fmt.Fprintln(w, ColorGray+"UI-тесты почтового веб-интерфейса"+ColorReset)
	fmt.Fprintln(w, ColorGray+"Цель: "+target+ColorReset)
	fmt.Fprintln(w, ColorGray+"Сьюты: "+strings.Join(suites, ", ")+ColorReset)
	fmt.Fprintln(w)
}
