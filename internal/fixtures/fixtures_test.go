package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMessages(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Введите имя ящика", m.BlankInputs)
	assert.Equal(t, "Введите имя ящика", m.BlankLogin)
	assert.Equal(t, "Введите пароль", m.BlankPassword)
	assert.Equal(t, "Неверное имя или пароль", m.InvalidCredentials)
	assert.Equal(t, "Вы уверены, что хотите отправить пустое письмо?", m.EmptyLetterAlert)
	assert.Equal(t, "В поле «Кому» указан некорректный адрес получателя.\nИсправьте ошибку и отправьте письмо ещё раз.", m.InvalidAddresseeAlert)
	assert.Equal(t, "<Без темы>", m.BlankSubject)
	assert.Equal(t, m, Default())
}

func TestLoadOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	data := strings.Replace(string(defaultMessagesYAML), `"<Без темы>"`, `"(no subject)"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "(no subject)", m.BlankSubject)
}

func TestLoadRejectsIncompleteFile(t *testing.T) {
	_, err := Parse([]byte("blank_login: \"Введите имя ящика\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BlankPassword")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLetters(t *testing.T) {
	a := NewLetters("tester@mail.ru", "<Без темы>")
	b := NewLetters("tester@mail.ru", "<Без темы>")

	assert.NotEqual(t, a.AllFieldsFilled.Subject(), b.AllFieldsFilled.Subject(), "темы разных прогонов различаются")
	assert.NotEqual(t, a.AllFieldsFilled.Subject(), a.Draft.Subject())

	assert.True(t, a.OnlyAddressee.HasBlankSubject())
	assert.Empty(t, a.OnlyAddressee.Body())
	assert.Equal(t, "tester@mail.ru<Без темы>", a.ReceivedBlank.String())

	assert.NotContains(t, a.InvalidAddressee.Addressee(), "@")
	assert.NotEqual(t, InvalidPassword(), InvalidPassword())
}
