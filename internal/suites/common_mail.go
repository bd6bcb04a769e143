package suites

import (
	"context"
	"errors"
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailSuite/internal/browser"
	"mailSuite/internal/fixtures"
	"mailSuite/internal/models"
	"mailSuite/internal/scenario"
	"mailSuite/internal/service"
)

const CommonMailSuiteName = "common-mail"

const (
	sendAllFields          = "send-letter-with-all-fields"
	sentInSentFolder       = "letter-in-sent-folder"
	receivedInInbox        = "letter-in-inbox-folder"
	markAsSpam             = "mark-letter-as-spam"
	inSpamFolder           = "letter-in-spam-folder"
	markAsNoSpam           = "mark-letter-as-no-spam"
	backInInbox            = "no-spam-letter-back-in-inbox"
	emptyLetterAlert       = "empty-letter-alert"
	sendEmptyLetter        = "send-letter-with-only-addressee"
	blankLetterInSent      = "blank-letter-in-sent-folder"
	blankLetterInInbox     = "blank-letter-in-inbox-folder"
	invalidAddresseeAlert  = "invalid-addressee-alert"
	sendWithoutEmptyDialog = "send-letter-without-empty-dialog"
	deleteFromInbox        = "delete-letter-from-inbox"
	saveDraft              = "save-letter-as-draft"
)

// CommonMail - цепочка сценариев отправки и раскладки писем по папкам.
// Письма создаются заново при каждом вызове, поэтому повторные запуски не видят чужих писем.
func CommonMail(d Deps) scenario.Suite {
	letters := fixtures.NewLetters(d.Addressee, d.Messages.BlankSubject)
	m := d.Mail

	return scenario.Suite{
		Name:        CommonMailSuiteName,
		Description: "Отправка писем и работа с папками",
		Scenarios: []scenario.Scenario{
			{
				Name:        sendAllFields,
				Description: "Check the possibility to create new letter and send it",
				Run: func(t *scenario.T) {
					ctx := t.Context()
					require.NoError(t, d.Auth.DoLogin(ctx, d.User))
					_, err := m.SendLetter(ctx, letters.AllFieldsFilled)
					require.NoError(t, err)
					match, err := m.DoesAddresseeInSuccessfulSendLetterMessageMatchExpected(ctx, letters.AllFieldsFilled)
					require.NoError(t, err)
					assert.True(t, match, "Addressee of the sent letter doesn't match")
				},
			},
			{
				Name:        sentInSentFolder,
				Description: "Check that letter presents in the Sent Folder",
				DependsOn:   []string{sendAllFields},
				Run: func(t *scenario.T) {
					actual, err := m.GetSentLetter(t.Context(), letters.AllFieldsFilled)
					require.NoError(t, err)
					assert.Equal(t, letters.AllFieldsFilled.String(), actual.String(), "Letter is not in the Sent Folder")
				},
			},
			{
				Name:        receivedInInbox,
				Description: "Check that letter presents in the Inbox Folder",
				DependsOn:   []string{sentInSentFolder},
				Run: func(t *scenario.T) {
					actual, err := m.GetReceivedLetter(t.Context(), letters.AllFieldsFilled)
					require.NoError(t, err)
					assert.Equal(t, letters.AllFieldsFilled.String(), actual.String(), "Letter is not in the Inbox folder")
				},
			},
			{
				Name:        markAsSpam,
				Description: "Check spam letter is removed from Inbox folder",
				DependsOn:   []string{receivedInInbox},
				Run: func(t *scenario.T) {
					ctx := t.Context()
					_, err := m.MoveLetterToSpam(ctx, letters.AllFieldsFilled)
					require.NoError(t, err)
					assertVisibility(t, m, models.Inbox, letters.AllFieldsFilled, false, "Letter is still in the Inbox Folder")
				},
			},
			{
				Name:        inSpamFolder,
				Description: "Check spam letter is in Spam folder",
				DependsOn:   []string{markAsSpam},
				Run: func(t *scenario.T) {
					assertVisibility(t, m, models.Spam, letters.AllFieldsFilled, true, "Letter is not in the Spam Folder")
				},
			},
			{
				Name:        markAsNoSpam,
				Description: "Check letter disappeared from Spam Folder",
				DependsOn:   []string{inSpamFolder},
				Run: func(t *scenario.T) {
					_, err := m.MoveLetterFromSpam(t.Context(), letters.AllFieldsFilled)
					require.NoError(t, err)
					assertVisibility(t, m, models.Spam, letters.AllFieldsFilled, false, "Letter is still in the Spam Folder")
				},
			},
			{
				Name:        backInInbox,
				Description: "Check letter returned to Inbox Folder",
				DependsOn:   []string{markAsNoSpam},
				Run: func(t *scenario.T) {
					assertVisibility(t, m, models.Inbox, letters.AllFieldsFilled, true, "Letter is not in the Inbox Folder")
				},
			},
			{
				Name:        emptyLetterAlert,
				Description: "Check alert message while sending letter without subject and body",
				DependsOn:   []string{backInInbox},
				Run: func(t *scenario.T) {
					ctx := t.Context()
					_, err := m.SendLetter(ctx, letters.OnlyAddressee)
					require.NoError(t, err)
					msg, err := m.EmptyLetterAlertMessage(ctx)
					require.NoError(t, err)
					assert.Equal(t, d.Messages.EmptyLetterAlert, msg, "Alert message doesn't match")
				},
			},
			{
				Name:        sendEmptyLetter,
				Description: "Check that sending mail with no subject and body was successful",
				DependsOn:   []string{emptyLetterAlert},
				Run: func(t *scenario.T) {
					ctx := t.Context()
					_, err := m.ConfirmSendingLetterOnAlert(ctx)
					require.NoError(t, err)
					match, err := m.DoesAddresseeInSuccessfulSendLetterMessageMatchExpected(ctx, letters.OnlyAddressee)
					require.NoError(t, err)
					assert.True(t, match, "Addressee of the sent letter doesn't match")
				},
			},
			{
				Name:        blankLetterInSent,
				Description: "Check that letter without Subject and Body presents in the Sent Folder",
				DependsOn:   []string{sendEmptyLetter},
				Run: func(t *scenario.T) {
					actual, err := m.GetSentLetterWithBlankSubject(t.Context())
					require.NoError(t, err)
					assert.Equal(t, letters.ReceivedBlank.String(), actual.String(), "Letter is not in the Sent Folder")
				},
			},
			{
				Name:        blankLetterInInbox,
				Description: "Check that letter without Subject and Body presents in the Inbox Folder",
				DependsOn:   []string{blankLetterInSent},
				Run: func(t *scenario.T) {
					actual, err := m.GetReceivedLetterWithBlankSubject(t.Context())
					require.NoError(t, err)
					assert.Equal(t, letters.ReceivedBlank.String(), actual.String(), "Letter is not in the Inbox Folder")
				},
			},
			{
				Name:        invalidAddresseeAlert,
				Description: "Check invalid Addressee alert message",
				DependsOn:   []string{blankLetterInInbox},
				Run: func(t *scenario.T) {
					ctx := t.Context()
					_, err := m.SendLetter(ctx, letters.InvalidAddressee)
					require.NoError(t, err)
					msg, err := m.InvalidAddresseeAlertMessage(ctx)
					require.NoError(t, err)
					assert.Equal(t, d.Messages.InvalidAddresseeAlert, msg, "Text of alert doesn't match")
				},
			},
			{
				Name:        sendWithoutEmptyDialog,
				Description: "Letter with subject and body is sent without the empty letter dialog",
				DependsOn:   []string{sendAllFields},
				Run: func(t *scenario.T) {
					ctx := t.Context()
					outcome, err := m.SendLetterConfirmingEmpty(ctx, letters.ToDelete)
					require.NoError(t, err)
					assert.Equal(t, service.DialogAbsent, outcome)
					match, err := m.DoesAddresseeInSuccessfulSendLetterMessageMatchExpected(ctx, letters.ToDelete)
					require.NoError(t, err)
					assert.True(t, match, "Addressee of the sent letter doesn't match")
				},
			},
			{
				Name:        deleteFromInbox,
				Description: "Deleted letter moves from Inbox to Trash",
				DependsOn:   []string{sendWithoutEmptyDialog},
				Run: func(t *scenario.T) {
					visible, err := m.DeleteLetter(t.Context(), models.Inbox, letters.ToDelete)
					require.NoError(t, err)
					assert.False(t, visible, "Letter is still in the Inbox Folder")
					assertVisibility(t, m, models.Trash, letters.ToDelete, true, "Letter is not in the Trash Folder")
				},
			},
			{
				Name:        saveDraft,
				Description: "Saved draft presents in the Drafts Folder",
				DependsOn:   []string{sendAllFields},
				Run: func(t *scenario.T) {
					require.NoError(t, m.SaveLetterAsDraft(t.Context(), letters.Draft))
					assertVisibility(t, m, models.Drafts, letters.Draft, true, "Letter is not in the Drafts Folder")
				},
			},
		},
		// Письмо без темы ищется по заглушке и должно быть единственным в папке,
		// поэтому перед выходом оно удаляется из отправленных и входящих.
		AfterAll: func(ctx context.Context) error {
			var errs []error
			for _, f := range []models.Folder{models.Sent, models.Inbox} {
				if _, err := m.DeleteLetter(ctx, f, letters.ReceivedBlank); err != nil && !browser.IsMissing(err) {
					errs = append(errs, fmt.Errorf("удаление письма без темы из %s: %w", f, err))
				}
			}
			errs = append(errs, d.Auth.DoLogout(ctx))
			return errors.Join(errs...)
		},
	}
}

func assertVisibility(t *scenario.T, m Mailer, f models.Folder, l models.Letter, want bool, msg string) {
	t.Helper()
	visible, err := m.IsLetterVisibleIn(t.Context(), f, l)
	require.NoError(t, err)
	assert.Equal(t, want, visible, msg)
}
