package pages

import (
	"context"

	"mailSuite/internal/browser"
)

const (
	UserEmailLocator       browser.Locator = "xpath=//i[@id='PH_user-email']"
	LogoutLinkLocator      browser.Locator = "xpath=//a[@id='PH_logoutLink']"
	NewLetterButtonLocator browser.Locator = "xpath=//a[@data-name='compose']"
)

// HeaderMenuPage - шапка почты: адрес ящика, выход, кнопка "Написать письмо".
type HeaderMenuPage struct {
	driver browser.Driver
}

func NewHeaderMenuPage(d browser.Driver) *HeaderMenuPage {
	return &HeaderMenuPage{driver: d}
}

func (p *HeaderMenuPage) GetUserEmail(ctx context.Context) (string, error) {
	return p.driver.Text(ctx, UserEmailLocator)
}

func (p *HeaderMenuPage) IsLoggedIn(ctx context.Context) (bool, error) {
	return p.driver.IsVisible(ctx, LogoutLinkLocator)
}

func (p *HeaderMenuPage) ClickNewLetterButton(ctx context.Context) (*ComposePage, error) {
	if err := p.driver.Click(ctx, NewLetterButtonLocator); err != nil {
		return nil, err
	}
	return NewComposePage(p.driver), nil
}

func (p *HeaderMenuPage) Logout(ctx context.Context) (*LoginPage, error) {
	if err := p.driver.Click(ctx, LogoutLinkLocator); err != nil {
		return nil, err
	}
	if err := p.driver.WaitVisible(ctx, LoginInputLocator); err != nil {
		return nil, err
	}
	return NewLoginPage(p.driver), nil
}
