package pages

import (
	"context"

	"mailSuite/internal/browser"
)

const MailAddresseeLocator browser.Locator = "xpath=//div[@class='message-sent__title']/following-sibling::div//span[@class='message-sent__info']"

// MailStatusPage - экран "Ваше письмо отправлено".
type MailStatusPage struct {
	driver browser.Driver
}

func NewMailStatusPage(d browser.Driver) *MailStatusPage {
	return &MailStatusPage{driver: d}
}

func (p *MailStatusPage) GetAddresseeFromSuccessfulSendLetterMessage(ctx context.Context) (string, error) {
	return p.driver.Text(ctx, MailAddresseeLocator)
}
