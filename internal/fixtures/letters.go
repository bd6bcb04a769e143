package fixtures

import (
	"strings"

	"github.com/google/uuid"

	"mailSuite/internal/models"
)

// Letters - письма одного прогона набора. Создаются заново для каждого экземпляра набора,
// чтобы темы не пересекались с письмами прошлых запусков в том же ящике.
type Letters struct {
	AllFieldsFilled  models.Letter
	OnlyAddressee    models.Letter
	ReceivedBlank    models.Letter
	InvalidAddressee models.Letter
	Draft            models.Letter
	ToDelete         models.Letter
}

// NewLetters - addressee получает все письма, blankSubject подставляется в тему письма без темы.
func NewLetters(addressee, blankSubject string) Letters {
	return Letters{
		AllFieldsFilled:  models.NewLetter(addressee, LetterSubject(), LetterBody()),
		OnlyAddressee:    models.NewLetter(addressee, "", ""),
		ReceivedBlank:    models.NewLetter(addressee, blankSubject, ""),
		InvalidAddressee: models.NewLetter(InvalidAddressee(), LetterSubject(), LetterBody()),
		Draft:            models.NewLetter(addressee, LetterSubject(), LetterBody()),
		ToDelete:         models.NewLetter(addressee, LetterSubject(), LetterBody()),
	}
}

func LetterSubject() string {
	return "Тема " + shortID()
}

func LetterBody() string {
	return "Текст письма " + uuid.NewString()
}

// InvalidAddressee - строка без "@", которую почта не примет как адрес.
func InvalidAddressee() string {
	return "addressee" + shortID()
}

func InvalidPassword() string {
	return "pwd-" + shortID()
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
