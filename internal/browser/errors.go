package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

var (
	ErrNotLaunched     = errors.New("браузер не запущен")
	ErrElementNotFound = errors.New("элемент не найден")
	ErrTimeout         = errors.New("таймаут ожидания")
	ErrNoAlert         = errors.New("нативный диалог не появился")
)

// ElementError связывает ошибку драйвера с операцией и локатором.
type ElementError struct {
	Op      string
	Locator Locator
	Err     error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Locator, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// IsMissing сообщает, что ожидаемый элемент или диалог так и не появился.
// Только такие ошибки допустимо гасить в необязательных шагах.
func IsMissing(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrElementNotFound) || errors.Is(err, ErrNoAlert)
}

// wrap переводит ошибки playwright в таксономию пакета.
func wrap(op string, loc Locator, err error, notFound bool) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		if notFound {
			err = fmt.Errorf("%w: %v", ErrElementNotFound, err)
		} else {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
	}
	return &ElementError{Op: op, Locator: loc, Err: err}
}
