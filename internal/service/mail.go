// Package service собирает действия page objects в бизнес-операции почты:
// отправка письма, перенос в спам и обратно, проверка наличия письма в папке.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mailSuite/internal/browser"
	"mailSuite/internal/models"
	"mailSuite/internal/pages"
)

// ConfirmOutcome - чем закончился необязательный шаг подтверждения пустого письма.
type ConfirmOutcome int

const (
	DialogConfirmed ConfirmOutcome = iota
	DialogAbsent
)

func (o ConfirmOutcome) String() string {
	switch o {
	case DialogConfirmed:
		return "dialog confirmed"
	case DialogAbsent:
		return "dialog absent"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type MailService struct {
	driver       browser.Driver
	log          *zap.Logger
	blankSubject string
}

type MailOption func(*MailService)

// WithBlankSubjectPlaceholder задает текст, которым список писем подменяет пустую тему.
func WithBlankSubjectPlaceholder(s string) MailOption {
	return func(m *MailService) {
		if s != "" {
			m.blankSubject = s
		}
	}
}

func NewMailService(d browser.Driver, log *zap.Logger, opts ...MailOption) *MailService {
	if log == nil {
		log = zap.NewNop()
	}
	m := &MailService{
		driver:       d,
		log:          log,
		blankSubject: pages.NoSubjectPlaceholder,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendLetter открывает форму, заполняет все поля и нажимает "Отправить".
// Диалог пустого письма здесь не подтверждается.
func (m *MailService) SendLetter(ctx context.Context, l models.Letter) (*pages.MailStatusPage, error) {
	m.log.Info("Отправка письма",
		zap.String("addressee", l.Addressee()),
		zap.String("subject", l.Subject()))

	compose, err := pages.NewHeaderMenuPage(m.driver).ClickNewLetterButton(ctx)
	if err != nil {
		return nil, fmt.Errorf("открытие формы письма: %w", err)
	}
	if _, err := compose.FillAllLetterInputs(ctx, l.Addressee(), l.Subject(), l.Body()); err != nil {
		return nil, fmt.Errorf("заполнение письма: %w", err)
	}
	status, err := compose.SendMail(ctx)
	if err != nil {
		return nil, fmt.Errorf("отправка письма: %w", err)
	}
	return status, nil
}

// SendLetterConfirmingEmpty отправляет письмо и подтверждает диалог пустого письма, если он появился.
// Отсутствием диалога считается только не найденная или так и не ставшая доступной кнопка подтверждения.
func (m *MailService) SendLetterConfirmingEmpty(ctx context.Context, l models.Letter) (ConfirmOutcome, error) {
	if _, err := m.SendLetter(ctx, l); err != nil {
		return DialogAbsent, err
	}

	_, err := pages.NewComposePage(m.driver).ConfirmSendingLetterOnAlert(ctx)
	switch {
	case err == nil:
		m.log.Debug("Диалог пустого письма подтвержден")
		return DialogConfirmed, nil
	case isConfirmButtonMissing(err):
		m.log.Debug("Диалог пустого письма не появился", zap.Error(err))
		return DialogAbsent, nil
	default:
		return DialogAbsent, fmt.Errorf("подтверждение пустого письма: %w", err)
	}
}

func isConfirmButtonMissing(err error) bool {
	var elErr *browser.ElementError
	if !errors.As(err, &elErr) || elErr.Locator != pages.AlertConfirmButtonLocator {
		return false
	}
	return errors.Is(err, browser.ErrTimeout) || errors.Is(err, browser.ErrElementNotFound)
}

func (m *MailService) ConfirmSendingLetterOnAlert(ctx context.Context) (*pages.MailStatusPage, error) {
	return pages.NewComposePage(m.driver).ConfirmSendingLetterOnAlert(ctx)
}

// EmptyLetterAlertMessage читает текст всплывающего окна "отправить пустое письмо?".
func (m *MailService) EmptyLetterAlertMessage(ctx context.Context) (string, error) {
	return pages.NewComposePage(m.driver).GetEmptyLetterBodyAlertMessage(ctx)
}

func (m *MailService) InvalidAddresseeAlertMessage(ctx context.Context) (string, error) {
	return pages.NewComposePage(m.driver).GetInvalidAddresseeAlertMessage(ctx)
}

func (m *MailService) DoesAddresseeInSuccessfulSendLetterMessageMatchExpected(ctx context.Context, l models.Letter) (bool, error) {
	addressee, err := pages.NewMailStatusPage(m.driver).GetAddresseeFromSuccessfulSendLetterMessage(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(addressee, l.Addressee()), nil
}

// MoveLetterToSpam переносит письмо из входящих в спам и возвращает, видно ли оно во входящих после этого.
func (m *MailService) MoveLetterToSpam(ctx context.Context, l models.Letter) (bool, error) {
	return m.moveLetter(ctx, models.Inbox, l, (*pages.MailListPage).ClickSpamButton)
}

// MoveLetterFromSpam возвращает письмо из спама; результат - видимость письма в папке спама.
func (m *MailService) MoveLetterFromSpam(ctx context.Context, l models.Letter) (bool, error) {
	return m.moveLetter(ctx, models.Spam, l, (*pages.MailListPage).ClickNoSpamButton)
}

// DeleteLetter удаляет письмо из папки f; результат - видимость письма в f.
func (m *MailService) DeleteLetter(ctx context.Context, f models.Folder, l models.Letter) (bool, error) {
	return m.moveLetter(ctx, f, l, (*pages.MailListPage).ClickDeleteButton)
}

type listAction func(p *pages.MailListPage, ctx context.Context, subject string) (*pages.MailListPage, error)

func (m *MailService) moveLetter(ctx context.Context, from models.Folder, l models.Letter, action listAction) (bool, error) {
	m.log.Info("Перенос письма",
		zap.String("from", from.String()),
		zap.String("subject", l.Subject()))

	list, err := pages.NewLeftMenuPage(m.driver).OpenFolder(ctx, from)
	if err != nil {
		return false, err
	}
	if _, err := list.ClickLetterCheckbox(ctx, l.Subject()); err != nil {
		return false, fmt.Errorf("выбор письма %q: %w", l.Subject(), err)
	}
	if _, err := action(list, ctx, l.Subject()); err != nil {
		return false, err
	}
	return list.IsLetterVisible(ctx, l.Subject())
}

// SaveLetterAsDraft заполняет форму и сохраняет письмо в черновики, не отправляя его.
func (m *MailService) SaveLetterAsDraft(ctx context.Context, l models.Letter) error {
	compose, err := pages.NewHeaderMenuPage(m.driver).ClickNewLetterButton(ctx)
	if err != nil {
		return fmt.Errorf("открытие формы письма: %w", err)
	}
	if _, err := compose.FillAllLetterInputs(ctx, l.Addressee(), l.Subject(), l.Body()); err != nil {
		return fmt.Errorf("заполнение письма: %w", err)
	}
	if _, err := compose.SaveDraftMail(ctx); err != nil {
		return err
	}
	m.log.Info("Письмо сохранено в черновики", zap.String("subject", l.Subject()))
	return nil
}

// IsLetterVisibleIn открывает папку и проверяет строку письма не дольше неявного ожидания.
func (m *MailService) IsLetterVisibleIn(ctx context.Context, f models.Folder, l models.Letter) (bool, error) {
	list, err := pages.NewLeftMenuPage(m.driver).OpenFolder(ctx, f)
	if err != nil {
		return false, err
	}
	return list.IsLetterVisible(ctx, l.Subject())
}

func (m *MailService) IsLetterVisibleInInboxFolder(ctx context.Context, l models.Letter) (bool, error) {
	return m.IsLetterVisibleIn(ctx, models.Inbox, l)
}

func (m *MailService) IsLetterVisibleInSentFolder(ctx context.Context, l models.Letter) (bool, error) {
	return m.IsLetterVisibleIn(ctx, models.Sent, l)
}

func (m *MailService) IsLetterVisibleInSpamFolder(ctx context.Context, l models.Letter) (bool, error) {
	return m.IsLetterVisibleIn(ctx, models.Spam, l)
}

func (m *MailService) IsLetterVisibleInTrashFolder(ctx context.Context, l models.Letter) (bool, error) {
	return m.IsLetterVisibleIn(ctx, models.Trash, l)
}

func (m *MailService) IsLetterVisibleInDraftsFolder(ctx context.Context, l models.Letter) (bool, error) {
	return m.IsLetterVisibleIn(ctx, models.Drafts, l)
}

func (m *MailService) GetLetterBySubject(ctx context.Context, f models.Folder, l models.Letter) (models.Letter, error) {
	list, err := pages.NewLeftMenuPage(m.driver).OpenFolder(ctx, f)
	if err != nil {
		return models.Letter{}, err
	}
	letter, err := list.OpenLetterBySubject(ctx, l.Subject())
	if err != nil {
		return models.Letter{}, fmt.Errorf("письмо %q в папке %s: %w", l.Subject(), f, err)
	}
	return letter.GetLetter(ctx)
}

func (m *MailService) GetSentLetter(ctx context.Context, l models.Letter) (models.Letter, error) {
	return m.GetLetterBySubject(ctx, models.Sent, l)
}

func (m *MailService) GetReceivedLetter(ctx context.Context, l models.Letter) (models.Letter, error) {
	return m.GetLetterBySubject(ctx, models.Inbox, l)
}

// GetLetterWithBlankSubject читает единственное письмо без темы в папке f.
// Ни одного такого письма - browser.ErrElementNotFound, несколько - pages.ErrAmbiguousMatch.
func (m *MailService) GetLetterWithBlankSubject(ctx context.Context, f models.Folder) (models.Letter, error) {
	list, err := pages.NewLeftMenuPage(m.driver).OpenFolder(ctx, f)
	if err != nil {
		return models.Letter{}, err
	}
	letter, err := list.OpenLetterWithoutSubject(ctx, m.blankSubject)
	if err != nil {
		return models.Letter{}, fmt.Errorf("письмо без темы в папке %s: %w", f, err)
	}
	return letter.GetLetter(ctx)
}

func (m *MailService) GetSentLetterWithBlankSubject(ctx context.Context) (models.Letter, error) {
	return m.GetLetterWithBlankSubject(ctx, models.Sent)
}

func (m *MailService) GetReceivedLetterWithBlankSubject(ctx context.Context) (models.Letter, error) {
	return m.GetLetterWithBlankSubject(ctx, models.Inbox)
}
