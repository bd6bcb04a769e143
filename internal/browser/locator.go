package browser

import (
	"fmt"
	"strings"
)

// Locator - селектор в синтаксисе playwright с явным движком (xpath=, css=).
type Locator string

func XPath(expr string) Locator {
	return Locator("xpath=" + expr)
}

func CSS(selector string) Locator {
	return Locator("css=" + selector)
}

// Name ищет элемент по атрибуту name, как By.name в Selenium.
func Name(name string) Locator {
	return CSS(fmt.Sprintf("[name=%q]", name))
}

// XPathf подставляет аргументы в xpath-шаблон в виде строковых литералов XPath.
// В шаблоне используется %s без кавычек: XPathf("//a[@title=%s]", subject).
func XPathf(format string, args ...string) Locator {
	literals := make([]any, len(args))
	for i, a := range args {
		literals[i] = XPathLiteral(a)
	}
	return XPath(fmt.Sprintf(format, literals...))
}

// XPathLiteral экранирует строку для XPath 1.0, где нет escape-последовательностей.
func XPathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		if p != "" {
			quoted = append(quoted, "'"+p+"'")
		}
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

func (l Locator) String() string {
	return string(l)
}

// Validate отсекает пустые локаторы и URL, переданные вместо селектора.
func (l Locator) Validate() error {
	s := strings.TrimSpace(string(l))
	if s == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return fmt.Errorf("селектор не может быть URL, для перехода используй Navigate. Получен URL: %s", s)
	}
	if strings.Contains(s, "://") {
		return fmt.Errorf("селектор не может содержать протокол (://). Получен: %s", s)
	}
	return nil
}
