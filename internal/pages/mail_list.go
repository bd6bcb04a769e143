package pages

import (
	"context"
	"fmt"

	"mailSuite/internal/browser"
)

// NoSubjectPlaceholder - так список писем показывает письмо без темы.
const NoSubjectPlaceholder = "<Без темы>"

const (
	SpamButtonLocator   browser.Locator = "xpath=//div[@data-name='spam']"
	NoSpamButtonLocator browser.Locator = "xpath=//div[@data-name='noSpam']"
	DeleteButtonLocator browser.Locator = "xpath=//div[@data-name='remove']"
)

const letterRowTemplate = "//a[contains(@class, 'js-letter-list-item')][.//div[contains(@class, 'b-datalist__item__subj') and normalize-space(text())=%s]]"

func LetterRowLocator(subject string) browser.Locator {
	return browser.XPathf(letterRowTemplate, subject)
}

func LetterCheckboxLocator(subject string) browser.Locator {
	return browser.XPathf(letterRowTemplate+"//div[contains(@class, 'js-item-checkbox')]", subject)
}

type MailListPage struct {
	driver browser.Driver
}

func NewMailListPage(d browser.Driver) *MailListPage {
	return &MailListPage{driver: d}
}

// IsLetterVisible ищет строку письма не дольше неявного ожидания драйвера.
func (p *MailListPage) IsLetterVisible(ctx context.Context, subject string) (bool, error) {
	return p.driver.IsVisible(ctx, LetterRowLocator(subject))
}

func (p *MailListPage) ClickLetterCheckbox(ctx context.Context, subject string) (*MailListPage, error) {
	if err := p.driver.Click(ctx, LetterCheckboxLocator(subject)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *MailListPage) ClickSpamButton(ctx context.Context, subject string) (*MailListPage, error) {
	return p.clickAndWaitGone(ctx, SpamButtonLocator, subject)
}

func (p *MailListPage) ClickNoSpamButton(ctx context.Context, subject string) (*MailListPage, error) {
	return p.clickAndWaitGone(ctx, NoSpamButtonLocator, subject)
}

func (p *MailListPage) ClickDeleteButton(ctx context.Context, subject string) (*MailListPage, error) {
	return p.clickAndWaitGone(ctx, DeleteButtonLocator, subject)
}

// clickAndWaitGone нажимает кнопку тулбара и ждет, пока строка письма исчезнет из текущего списка.
func (p *MailListPage) clickAndWaitGone(ctx context.Context, button browser.Locator, subject string) (*MailListPage, error) {
	if err := p.driver.Click(ctx, button); err != nil {
		return nil, err
	}
	if err := p.driver.WaitHidden(ctx, LetterRowLocator(subject)); err != nil {
		return nil, fmt.Errorf("письмо %q осталось в списке: %w", subject, err)
	}
	return p, nil
}

func (p *MailListPage) OpenLetterBySubject(ctx context.Context, subject string) (*LetterPage, error) {
	if err := p.driver.Click(ctx, LetterRowLocator(subject)); err != nil {
		return nil, err
	}
	return NewLetterPage(p.driver), nil
}

// OpenLetterWithoutSubject открывает единственное письмо без темы; несколько таких писем - ошибка.
func (p *MailListPage) OpenLetterWithoutSubject(ctx context.Context, placeholder string) (*LetterPage, error) {
	row := LetterRowLocator(placeholder)

	n, err := p.driver.Count(ctx, row)
	if err != nil {
		return nil, err
	}
	switch {
	case n == 0:
		return nil, &browser.ElementError{Op: "open letter without subject", Locator: row, Err: browser.ErrElementNotFound}
	case n > 1:
		return nil, &browser.ElementError{Op: "open letter without subject", Locator: row, Err: fmt.Errorf("%w: %d писем без темы", ErrAmbiguousMatch, n)}
	}

	return p.OpenLetterBySubject(ctx, placeholder)
}
