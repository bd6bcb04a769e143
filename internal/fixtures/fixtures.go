// Package fixtures хранит ожидаемые строки интерфейса и готовит тестовые письма.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessagesYAML []byte

// Messages - тексты, которые почта показывает пользователю.
type Messages struct {
	BlankLogin            string `yaml:"blank_login" validate:"required"`
	BlankInputs           string `yaml:"blank_inputs" validate:"required"`
	BlankPassword         string `yaml:"blank_password" validate:"required"`
	InvalidCredentials    string `yaml:"invalid_credentials" validate:"required"`
	EmptyLetterAlert      string `yaml:"empty_letter_alert" validate:"required"`
	InvalidAddresseeAlert string `yaml:"invalid_addressee_alert" validate:"required"`
	BlankSubject          string `yaml:"blank_subject" validate:"required"`
}

// Load читает строки из path; пустой path - встроенный messages.yaml.
func Load(path string) (*Messages, error) {
	data := defaultMessagesYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение фикстур %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Messages, error) {
	var m Messages
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("разбор фикстур: %w", err)
	}
	if err := validator.New().Struct(&m); err != nil {
		return nil, fmt.Errorf("некорректные фикстуры: %w", err)
	}
	return &m, nil
}

// Default - встроенные строки. Встроенный файл проверяется тестами, поэтому ошибка здесь невозможна.
func Default() *Messages {
	m, err := Parse(defaultMessagesYAML)
	if err != nil {
		panic(err)
	}
	return m
}
