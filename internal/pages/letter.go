package pages

import (
	"context"
	"fmt"

	"mailSuite/internal/browser"
	"mailSuite/internal/models"
)

const (
	LetterSubjectLocator   browser.Locator = "xpath=//div[contains(@class, 'b-letter__head__subj__text')]"
	LetterAddresseeLocator browser.Locator = "xpath=//div[contains(@class, 'b-letter__head__addrs__value')]//span[contains(@class, 'b-contact-informer-target')]"
	LetterBodyLocator      browser.Locator = "xpath=//div[contains(@class, 'b-letter__body')]"
)

// LetterPage - открытое письмо.
type LetterPage struct {
	driver browser.Driver
}

func NewLetterPage(d browser.Driver) *LetterPage {
	return &LetterPage{driver: d}
}

// GetLetter собирает письмо из отрисованной страницы.
func (p *LetterPage) GetLetter(ctx context.Context) (models.Letter, error) {
	subject, err := p.driver.Text(ctx, LetterSubjectLocator)
	if err != nil {
		return models.Letter{}, fmt.Errorf("тема письма: %w", err)
	}
	addressee, err := p.driver.Text(ctx, LetterAddresseeLocator)
	if err != nil {
		return models.Letter{}, fmt.Errorf("адресат письма: %w", err)
	}
	// пустое тело письма не имеет размера, поэтому видимости не ждем
	body, err := p.driver.TextContent(ctx, LetterBodyLocator)
	if err != nil {
		return models.Letter{}, fmt.Errorf("текст письма: %w", err)
	}
	return models.NewLetter(addressee, subject, body), nil
}
