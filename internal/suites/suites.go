// Package suites объявляет наборы UI-сценариев почты поверх сервисов.
package suites

import (
	"context"
	"fmt"
	"sort"

	"mailSuite/internal/fixtures"
	"mailSuite/internal/models"
	"mailSuite/internal/pages"
	"mailSuite/internal/scenario"
	"mailSuite/internal/service"
)

// Mailer - почтовые операции, которые используют сценарии. Реализуется service.MailService.
type Mailer interface {
	SendLetter(ctx context.Context, l models.Letter) (*pages.MailStatusPage, error)
	SendLetterConfirmingEmpty(ctx context.Context, l models.Letter) (service.ConfirmOutcome, error)
	ConfirmSendingLetterOnAlert(ctx context.Context) (*pages.MailStatusPage, error)
	EmptyLetterAlertMessage(ctx context.Context) (string, error)
	InvalidAddresseeAlertMessage(ctx context.Context) (string, error)
	DoesAddresseeInSuccessfulSendLetterMessageMatchExpected(ctx context.Context, l models.Letter) (bool, error)

	MoveLetterToSpam(ctx context.Context, l models.Letter) (bool, error)
	MoveLetterFromSpam(ctx context.Context, l models.Letter) (bool, error)
	DeleteLetter(ctx context.Context, f models.Folder, l models.Letter) (bool, error)
	SaveLetterAsDraft(ctx context.Context, l models.Letter) error

	IsLetterVisibleIn(ctx context.Context, f models.Folder, l models.Letter) (bool, error)
	GetSentLetter(ctx context.Context, l models.Letter) (models.Letter, error)
	GetReceivedLetter(ctx context.Context, l models.Letter) (models.Letter, error)
	GetSentLetterWithBlankSubject(ctx context.Context) (models.Letter, error)
	GetReceivedLetterWithBlankSubject(ctx context.Context) (models.Letter, error)
}

// Authorizer реализуется service.AuthorizationService.
type Authorizer interface {
	DoLogin(ctx context.Context, u models.User) error
	DoesUserLoginAfterAuthorizationMatchExpected(ctx context.Context, u models.User) (bool, error)
	InvalidCredentialsErrorMessage(ctx context.Context) (string, error)
	DoLogout(ctx context.Context) error
}

var (
	_ Mailer     = (*service.MailService)(nil)
	_ Authorizer = (*service.AuthorizationService)(nil)
)

// Deps - все, что нужно наборам. Addressee - адрес ящика User, письма отправляются самому себе.
type Deps struct {
	Mail      Mailer
	Auth      Authorizer
	User      models.User
	Addressee string
	Messages  *fixtures.Messages
}

type builder func(Deps) scenario.Suite

var registry = map[string]builder{
	LoginSuiteName:      Login,
	CommonMailSuiteName: CommonMail,
}

// Names - имена наборов в алфавитном порядке.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build собирает наборы по именам; без имен - все наборы.
func Build(d Deps, names ...string) ([]scenario.Suite, error) {
	if len(names) == 0 {
		names = Names()
	}
	out := make([]scenario.Suite, 0, len(names))
	for _, name := range names {
		b, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("неизвестный набор %q, доступны: %v", name, Names())
		}
		out = append(out, b(d))
	}
	return out, nil
}
