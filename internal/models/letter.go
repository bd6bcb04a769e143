// Package models содержит бизнес-объекты тестов: письмо, пользователь, папка.
package models

// Letter - неизменяемое письмо. Сравнивается по склейке полей адресат+тема+текст.
type Letter struct {
	addressee string
	subject   string
	body      string
}

func NewLetter(addressee, subject, body string) Letter {
	return Letter{addressee: addressee, subject: subject, body: body}
}

func (l Letter) Addressee() string { return l.addressee }
func (l Letter) Subject() string   { return l.subject }
func (l Letter) Body() string      { return l.body }

func (l Letter) String() string {
	return l.addressee + l.subject + l.body
}

func (l Letter) Equal(other Letter) bool {
	return l.String() == other.String()
}

func (l Letter) HasBlankSubject() bool {
	return l.subject == ""
}
