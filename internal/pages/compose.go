package pages

import (
	"context"
	"fmt"

	"mailSuite/internal/browser"
)

const (
	AddresseeInputLocator     browser.Locator = "xpath=//*[@data-original-name='To']"
	SubjectInputLocator       browser.Locator = `css=[name="Subject"]`
	MailBodyInputLocator      browser.Locator = "css=#tinymce"
	ComposeFrameLocator       browser.Locator = "xpath=//iframe[contains(@id, 'composeEditor')]"
	SendButtonLocator         browser.Locator = "xpath=//div[@data-name='send']"
	SaveDraftButtonLocator    browser.Locator = "xpath=//div[contains(@data-name, 'saveDraft')]"
	EmptyBodyAlertLocator     browser.Locator = "xpath=//div[contains(@class,'empty')]//div[@class='popup__desc']"
	AlertConfirmButtonLocator browser.Locator = "xpath=//div[@class='is-compose-empty_in']//button[contains(@class, 'confirm-ok')]"
	SavedAsDraftLocator       browser.Locator = "xpath=//div[@class='b-toolbar__message']/a"
)

// ComposePage - форма нового письма.
type ComposePage struct {
	driver browser.Driver
}

func NewComposePage(d browser.Driver) *ComposePage {
	return &ComposePage{driver: d}
}

// FillAllLetterInputs заполняет адресата и тему, затем текст письма внутри iframe редактора.
func (p *ComposePage) FillAllLetterInputs(ctx context.Context, addressee, subject, body string) (*ComposePage, error) {
	if err := p.driver.Type(ctx, AddresseeInputLocator, addressee); err != nil {
		return nil, fmt.Errorf("поле «Кому»: %w", err)
	}
	if err := p.driver.Type(ctx, SubjectInputLocator, subject); err != nil {
		return nil, fmt.Errorf("поле «Тема»: %w", err)
	}

	err := browser.WithinFrame(ctx, p.driver, ComposeFrameLocator, func() error {
		return p.driver.Type(ctx, MailBodyInputLocator, body)
	})
	if err != nil {
		return nil, fmt.Errorf("текст письма: %w", err)
	}
	return p, nil
}

func (p *ComposePage) SaveDraftMail(ctx context.Context) (*ComposePage, error) {
	if err := p.driver.Click(ctx, SaveDraftButtonLocator); err != nil {
		return nil, err
	}
	if err := p.driver.WaitEnabled(ctx, SavedAsDraftLocator); err != nil {
		return nil, fmt.Errorf("черновик не сохранился: %w", err)
	}
	return p, nil
}

func (p *ComposePage) SendMail(ctx context.Context) (*MailStatusPage, error) {
	if err := p.driver.Click(ctx, SendButtonLocator); err != nil {
		return nil, err
	}
	return NewMailStatusPage(p.driver), nil
}

func (p *ComposePage) GetEmptyLetterBodyAlertMessage(ctx context.Context) (string, error) {
	return p.driver.Text(ctx, EmptyBodyAlertLocator)
}

func (p *ComposePage) ConfirmSendingLetterOnAlert(ctx context.Context) (*MailStatusPage, error) {
	if err := p.driver.WaitEnabled(ctx, AlertConfirmButtonLocator); err != nil {
		return nil, err
	}
	if err := p.driver.Click(ctx, AlertConfirmButtonLocator); err != nil {
		return nil, err
	}
	if err := p.driver.WaitVisible(ctx, MailAddresseeLocator); err != nil {
		return nil, err
	}
	return NewMailStatusPage(p.driver), nil
}

// GetInvalidAddresseeAlertMessage читает текст нативного диалога и закрывает его,
// чтобы заблокированная диалогом страница не мешала следующим сценариям.
func (p *ComposePage) GetInvalidAddresseeAlertMessage(ctx context.Context) (string, error) {
	alert, err := p.driver.WaitForAlert(ctx)
	if err != nil {
		return "", err
	}
	text := alert.Text()
	if err := alert.Accept(); err != nil {
		return text, fmt.Errorf("не удалось закрыть диалог: %w", err)
	}
	return text, nil
}
