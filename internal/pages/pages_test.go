package pages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailSuite/internal/browser"
	"mailSuite/internal/browser/browsertest"
	"mailSuite/internal/models"
)

func TestLoginPageFillAndError(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().
		Set(LoginInputLocator, browsertest.Element{}).
		Set(PasswordInputLocator, browsertest.Element{}).
		Set(LoginSubmitLocator, browsertest.Element{}).
		OnClick(LoginSubmitLocator, func(d *browsertest.Driver) {
			d.Set(LoginErrorLocator, browsertest.Element{Text: "Введите пароль"})
		})

	page, err := NewLoginPage(d).Open(ctx, "https://mail.ru")
	require.NoError(t, err)
	assert.Equal(t, "https://mail.ru", d.URL)

	_, err = page.FillCredentials(ctx, "tester", "")
	require.NoError(t, err)
	require.NoError(t, page.Submit(ctx))

	msg, err := page.GetErrorMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Введите пароль", msg)

	login, _ := d.Element(LoginInputLocator)
	assert.Equal(t, "tester", login.Value)
}

func TestReadWithoutElementFailsInsteadOfEmpty(t *testing.T) {
	d := browsertest.New()

	msg, err := NewLoginPage(d).GetErrorMessage(context.Background())
	assert.ErrorIs(t, err, browser.ErrTimeout)
	assert.Empty(t, msg)
}

func TestComposeFillUsesFrameAndRestoresContext(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().
		Set(AddresseeInputLocator, browsertest.Element{}).
		Set(SubjectInputLocator, browsertest.Element{}).
		Set(ComposeFrameLocator, browsertest.Element{}).
		SetIn(ComposeFrameLocator, MailBodyInputLocator, browsertest.Element{})

	_, err := NewComposePage(d).FillAllLetterInputs(ctx, "tester@mail.ru", "Тема", "Текст")
	require.NoError(t, err)

	body, ok := d.ElementIn(ComposeFrameLocator, MailBodyInputLocator)
	require.True(t, ok)
	assert.Equal(t, "Текст", body.Value)
	assert.Equal(t, browser.Locator(""), d.CurrentFrame())

	var bodyAction browsertest.Action
	for _, a := range d.Actions() {
		if a.Locator == MailBodyInputLocator {
			bodyAction = a
		}
	}
	assert.Equal(t, ComposeFrameLocator, bodyAction.Frame)
}

func TestComposeFillRestoresContextWhenBodyMissing(t *testing.T) {
	d := browsertest.New().
		Set(AddresseeInputLocator, browsertest.Element{}).
		Set(SubjectInputLocator, browsertest.Element{}).
		Set(ComposeFrameLocator, browsertest.Element{})

	_, err := NewComposePage(d).FillAllLetterInputs(context.Background(), "a", "b", "c")
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
	assert.Equal(t, browser.Locator(""), d.CurrentFrame())
}

func TestConfirmSendingLetterOnAlert(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().
		Set(AlertConfirmButtonLocator, browsertest.Element{}).
		OnClick(AlertConfirmButtonLocator, func(d *browsertest.Driver) {
			d.Set(MailAddresseeLocator, browsertest.Element{Text: "tester@mail.ru"})
		})

	status, err := NewComposePage(d).ConfirmSendingLetterOnAlert(ctx)
	require.NoError(t, err)

	addressee, err := status.GetAddresseeFromSuccessfulSendLetterMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tester@mail.ru", addressee)
}

func TestConfirmSendingLetterWithoutDialogTimesOut(t *testing.T) {
	_, err := NewComposePage(browsertest.New()).ConfirmSendingLetterOnAlert(context.Background())
	assert.ErrorIs(t, err, browser.ErrTimeout)
}

func TestInvalidAddresseeAlertIsReadAndAccepted(t *testing.T) {
	d := browsertest.New()
	alert := d.OpenAlert("В поле «Кому» указан некорректный адрес получателя.")

	text, err := NewComposePage(d).GetInvalidAddresseeAlertMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "В поле «Кому» указан некорректный адрес получателя.", text)
	assert.True(t, alert.Accepted())
}

func TestInvalidAddresseeAlertAbsent(t *testing.T) {
	_, err := NewComposePage(browsertest.New()).GetInvalidAddresseeAlertMessage(context.Background())
	assert.ErrorIs(t, err, browser.ErrNoAlert)
}

func TestOpenFolderWaitsForActiveFolder(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().Set(FolderLinkLocator(models.Spam), browsertest.Element{})

	_, err := NewLeftMenuPage(d).OpenSpamFolder(ctx)
	assert.ErrorIs(t, err, browser.ErrTimeout)

	d.OnClick(FolderLinkLocator(models.Spam), func(d *browsertest.Driver) {
		d.Set(ActiveFolderLocator(models.Spam), browsertest.Element{})
	})
	list, err := NewLeftMenuPage(d).OpenSpamFolder(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
}

func TestClickSpamButtonWaitsForRowToDisappear(t *testing.T) {
	ctx := context.Background()
	subject := "Письмо для спама"
	d := browsertest.New().
		Set(LetterRowLocator(subject), browsertest.Element{}).
		Set(LetterCheckboxLocator(subject), browsertest.Element{}).
		Set(SpamButtonLocator, browsertest.Element{})

	list := NewMailListPage(d)
	_, err := list.ClickLetterCheckbox(ctx, subject)
	require.NoError(t, err)

	_, err = list.ClickSpamButton(ctx, subject)
	assert.ErrorIs(t, err, browser.ErrTimeout, "row still present")

	d.OnClick(SpamButtonLocator, func(d *browsertest.Driver) {
		d.Remove(LetterRowLocator(subject))
	})
	_, err = list.ClickSpamButton(ctx, subject)
	require.NoError(t, err)

	visible, err := list.IsLetterVisible(ctx, subject)
	require.NoError(t, err)
	assert.False(t, visible)
}

func TestOpenLetterWithoutSubject(t *testing.T) {
	ctx := context.Background()
	row := LetterRowLocator(NoSubjectPlaceholder)

	t.Run("none", func(t *testing.T) {
		_, err := NewMailListPage(browsertest.New()).OpenLetterWithoutSubject(ctx, NoSubjectPlaceholder)
		assert.ErrorIs(t, err, browser.ErrElementNotFound)
	})

	t.Run("several", func(t *testing.T) {
		d := browsertest.New().Set(row, browsertest.Element{}).SetCount(row, 2)
		_, err := NewMailListPage(d).OpenLetterWithoutSubject(ctx, NoSubjectPlaceholder)
		assert.ErrorIs(t, err, ErrAmbiguousMatch)
		assert.False(t, d.Clicked(row))
	})

	t.Run("single", func(t *testing.T) {
		d := browsertest.New().
			Set(row, browsertest.Element{}).
			OnClick(row, func(d *browsertest.Driver) {
				d.Set(LetterSubjectLocator, browsertest.Element{Text: NoSubjectPlaceholder})
				d.Set(LetterAddresseeLocator, browsertest.Element{Text: "tester@mail.ru"})
				d.Set(LetterBodyLocator, browsertest.Element{ZeroSize: true})
			})

		letterPage, err := NewMailListPage(d).OpenLetterWithoutSubject(ctx, NoSubjectPlaceholder)
		require.NoError(t, err)

		letter, err := letterPage.GetLetter(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.NewLetter("tester@mail.ru", NoSubjectPlaceholder, ""), letter)
	})
}

func TestHeaderLogout(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().
		Set(LogoutLinkLocator, browsertest.Element{}).
		OnClick(LogoutLinkLocator, func(d *browsertest.Driver) {
			d.Remove(LogoutLinkLocator)
			d.Set(LoginInputLocator, browsertest.Element{})
		})

	header := NewHeaderMenuPage(d)
	loggedIn, err := header.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, loggedIn)

	_, err = header.Logout(ctx)
	require.NoError(t, err)

	loggedIn, err = header.IsLoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, loggedIn)
}

func TestGetLetterWithEmptyBody(t *testing.T) {
	ctx := context.Background()
	d := browsertest.New().
		Set(LetterSubjectLocator, browsertest.Element{Text: "Тема"}).
		Set(LetterAddresseeLocator, browsertest.Element{Text: "tester@mail.ru"}).
		Set(LetterBodyLocator, browsertest.Element{ZeroSize: true})

	// пустой блок тела в браузере не виден
	_, err := d.Text(ctx, LetterBodyLocator)
	require.ErrorIs(t, err, browser.ErrTimeout)

	letter, err := NewLetterPage(d).GetLetter(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.NewLetter("tester@mail.ru", "Тема", ""), letter)
}

func TestGetLetterWithoutBodyBlock(t *testing.T) {
	d := browsertest.New().
		Set(LetterSubjectLocator, browsertest.Element{Text: "Тема"}).
		Set(LetterAddresseeLocator, browsertest.Element{Text: "tester@mail.ru"})

	_, err := NewLetterPage(d).GetLetter(context.Background())
	assert.ErrorIs(t, err, browser.ErrElementNotFound)
}
