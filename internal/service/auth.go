package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mailSuite/internal/browser"
	"mailSuite/internal/models"
	"mailSuite/internal/pages"
)

type AuthorizationService struct {
	driver  browser.Driver
	log     *zap.Logger
	baseURL string
	domain  string
}

// NewAuthorizationService - baseURL страница с формой входа, domain дописывается к логину без "@".
func NewAuthorizationService(d browser.Driver, log *zap.Logger, baseURL, domain string) *AuthorizationService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthorizationService{driver: d, log: log, baseURL: baseURL, domain: domain}
}

// DoLogin открывает форму входа и отправляет учетные данные. Успех входа не проверяется.
func (a *AuthorizationService) DoLogin(ctx context.Context, u models.User) error {
	a.log.Info("Вход в почту", zap.String("login", u.Login()))

	login, err := pages.NewLoginPage(a.driver).Open(ctx, a.baseURL)
	if err != nil {
		return err
	}
	if _, err := login.FillCredentials(ctx, u.Login(), u.Password()); err != nil {
		return fmt.Errorf("ввод учетных данных: %w", err)
	}
	return login.Submit(ctx)
}

// DoesUserLoginAfterAuthorizationMatchExpected сравнивает адрес в шапке с адресом пользователя.
func (a *AuthorizationService) DoesUserLoginAfterAuthorizationMatchExpected(ctx context.Context, u models.User) (bool, error) {
	email, err := pages.NewHeaderMenuPage(a.driver).GetUserEmail(ctx)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(email), u.Email(a.domain)), nil
}

func (a *AuthorizationService) InvalidCredentialsErrorMessage(ctx context.Context) (string, error) {
	return pages.NewLoginPage(a.driver).GetErrorMessage(ctx)
}

// DoLogout выходит из ящика; если пользователь не вошел, ничего не делает.
func (a *AuthorizationService) DoLogout(ctx context.Context) error {
	header := pages.NewHeaderMenuPage(a.driver)
	loggedIn, err := header.IsLoggedIn(ctx)
	if err != nil {
		return err
	}
	if !loggedIn {
		a.log.Debug("Выход не нужен: пользователь не авторизован")
		return nil
	}
	if _, err := header.Logout(ctx); err != nil {
		return fmt.Errorf("выход из почты: %w", err)
	}
	a.log.Info("Выход из почты выполнен")
	return nil
}
