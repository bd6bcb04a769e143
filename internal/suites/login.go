package suites

import (
	"context"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailSuite/internal/fixtures"
	"mailSuite/internal/models"
	"mailSuite/internal/scenario"
)

const LoginSuiteName = "login"

type credentials struct {
	user models.User
	want string
}

// Login проверяет вход с верными данными и сообщения об ошибке для неверных.
// После каждой строки выполняется выход из ящика.
func Login(d Deps) scenario.Suite {
	rows := []scenario.Row[credentials]{
		{Name: "blank login and password", Data: credentials{models.NewUser("", ""), d.Messages.BlankInputs}},
		{Name: "blank password", Data: credentials{models.NewUser(d.User.Login(), ""), d.Messages.BlankPassword}},
		{Name: "wrong password", Data: credentials{models.NewUser(d.User.Login(), fixtures.InvalidPassword()), d.Messages.InvalidCredentials}},
		{Name: "unknown login", Data: credentials{models.NewUser(fixtures.InvalidAddressee(), d.User.Password()), d.Messages.InvalidCredentials}},
		{Name: "blank login", Data: credentials{models.NewUser("", d.User.Password()), d.Messages.BlankLogin}},
	}

	return scenario.Suite{
		Name:        LoginSuiteName,
		Description: "Вход в почту",
		Scenarios: []scenario.Scenario{
			{
				Name:        "login-with-valid-credentials",
				Description: "После входа в шапке отображается адрес пользователя",
				Run: func(t *scenario.T) {
					ctx := t.Context()
					require.NoError(t, d.Auth.DoLogin(ctx, d.User))
					match, err := d.Auth.DoesUserLoginAfterAuthorizationMatchExpected(ctx, d.User)
					require.NoError(t, err)
					assert.True(t, match, "Login wasn't successful")
				},
			},
			scenario.Parameterized("login-with-invalid-credentials",
				"Сообщение об ошибке соответствует введенным данным", rows,
				func(t *scenario.T, row credentials) {
					ctx := t.Context()
					require.NoError(t, d.Auth.DoLogin(ctx, row.user))
					msg, err := d.Auth.InvalidCredentialsErrorMessage(ctx)
					require.NoError(t, err)
					assert.Equal(t, row.want, msg, "Error message doesn't match")
				}),
		},
		AfterEach: func(ctx context.Context) error {
			return d.Auth.DoLogout(ctx)
		},
	}
}
