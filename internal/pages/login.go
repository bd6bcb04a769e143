// Package pages описывает экраны почты как page objects: локаторы и действия над ними.
// Page object хранит только ссылку на драйвер и создается заново при каждом обращении;
// конструктор не проверяет, что экран открыт, каждая операция ждет свои элементы сама.
package pages

import (
	"context"
	"errors"
	"fmt"

	"mailSuite/internal/browser"
)

// ErrAmbiguousMatch - локатору, который должен быть уникальным, соответствует несколько строк.
var ErrAmbiguousMatch = errors.New("найдено несколько подходящих элементов")

const (
	LoginInputLocator    browser.Locator = "xpath=//input[@id='mailbox:login']"
	PasswordInputLocator browser.Locator = "xpath=//input[@id='mailbox:password']"
	LoginSubmitLocator   browser.Locator = "xpath=//input[@id='mailbox:submit']"
	LoginErrorLocator    browser.Locator = "xpath=//div[@id='mailbox:error']"
)

type LoginPage struct {
	driver browser.Driver
}

func NewLoginPage(d browser.Driver) *LoginPage {
	return &LoginPage{driver: d}
}

func (p *LoginPage) Open(ctx context.Context, url string) (*LoginPage, error) {
	if err := p.driver.Navigate(ctx, url); err != nil {
		return nil, err
	}
	if err := p.driver.WaitVisible(ctx, LoginInputLocator); err != nil {
		return nil, fmt.Errorf("форма входа не появилась: %w", err)
	}
	return p, nil
}

func (p *LoginPage) FillCredentials(ctx context.Context, login, password string) (*LoginPage, error) {
	if err := p.driver.Type(ctx, LoginInputLocator, login); err != nil {
		return nil, err
	}
	if err := p.driver.Type(ctx, PasswordInputLocator, password); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *LoginPage) Submit(ctx context.Context) error {
	return p.driver.Click(ctx, LoginSubmitLocator)
}

func (p *LoginPage) GetErrorMessage(ctx context.Context) (string, error) {
	return p.driver.Text(ctx, LoginErrorLocator)
}
