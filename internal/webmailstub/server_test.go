package webmailstub

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailSuite/internal/fixtures"
)

const (
	testLogin    = "tester"
	testPassword = "secret"
	testEmail    = "tester@mail.ru"
)

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T) *client {
	t.Helper()
	srv := New(Config{
		Domain:   "mail.ru",
		Accounts: map[string]string{testLogin: testPassword},
		Messages: *fixtures.Default(),
	}, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: ts.URL, http: &http.Client{Jar: jar}}
}

func (c *client) doc(resp *http.Response, err error) *goquery.Document {
	c.t.Helper()
	require.NoError(c.t, err)
	defer resp.Body.Close()
	require.Equal(c.t, http.StatusOK, resp.StatusCode)
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(c.t, err)
	return doc
}

func (c *client) get(path string) *goquery.Document {
	c.t.Helper()
	return c.doc(c.http.Get(c.base + path))
}

func (c *client) post(path string, form url.Values) *goquery.Document {
	c.t.Helper()
	return c.doc(c.http.PostForm(c.base+path, form))
}

func (c *client) login() *goquery.Document {
	c.t.Helper()
	return c.post("/login", url.Values{"Login": {testLogin}, "Password": {testPassword}})
}

func (c *client) send(to, subject, body string) *goquery.Document {
	c.t.Helper()
	return c.post("/compose/send", url.Values{"To": {to}, "Subject": {subject}, "Body": {body}})
}

func subjects(doc *goquery.Document) []string {
	var out []string
	doc.Find(".js-letter-list-item .b-datalist__item__subj").Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func letterID(t *testing.T, doc *goquery.Document, subject string) string {
	t.Helper()
	var id string
	doc.Find(".js-letter-list-item").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Find(".b-datalist__item__subj").Text()) == subject {
			id, _ = s.Find(".js-item-checkbox").Attr("data-id")
		}
	})
	require.NotEmpty(t, id, "письмо %q не найдено", subject)
	return id
}

func TestLoginErrors(t *testing.T) {
	msgs := fixtures.Default()
	cases := []struct {
		name, login, password, want string
	}{
		{"blank inputs", "", "", msgs.BlankInputs},
		{"blank login", "", testPassword, msgs.BlankLogin},
		{"blank password", testLogin, "", msgs.BlankPassword},
		{"wrong password", testLogin, "nope", msgs.InvalidCredentials},
		{"unknown login", "nobody", testPassword, msgs.InvalidCredentials},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t)
			doc := c.post("/login", url.Values{"Login": {tc.login}, "Password": {tc.password}})
			assert.Equal(t, tc.want, strings.TrimSpace(doc.Find(`[id="mailbox:error"]`).Text()))
			assert.Equal(t, 1, doc.Find(`input[id="mailbox:login"]`).Length())
		})
	}
}

func TestLoginShowsHeaderAndLogout(t *testing.T) {
	c := newClient(t)

	doc := c.login()
	assert.Equal(t, testEmail, doc.Find("#PH_user-email").Text())
	assert.Equal(t, 1, doc.Find("#PH_logoutLink").Length())
	assert.True(t, doc.Find(`a[href="/messages/inbox/"]`).HasClass("b-nav__link_active"))
	assert.False(t, doc.Find(`a[href="/messages/sent/"]`).HasClass("b-nav__link_active"))

	doc = c.get("/logout")
	assert.Equal(t, 1, doc.Find(`input[id="mailbox:login"]`).Length())

	// после выхода ящик недоступен
	doc = c.get("/messages/inbox/")
	assert.Equal(t, 0, doc.Find("#PH_user-email").Length())
}

func TestFullEmailLogin(t *testing.T) {
	c := newClient(t)
	doc := c.post("/login", url.Values{"Login": {"Tester@Mail.ru"}, "Password": {testPassword}})
	assert.Equal(t, testEmail, doc.Find("#PH_user-email").Text())
}

func TestSendLetterToSelf(t *testing.T) {
	c := newClient(t)
	c.login()

	doc := c.send(testEmail, "Тема 1", "Текст 1")
	assert.Equal(t, "Ваше письмо отправлено", doc.Find(".message-sent__title").Text())
	assert.Equal(t, testEmail, doc.Find(".message-sent__title ~ div .message-sent__info").Text())

	assert.Equal(t, []string{"Тема 1"}, subjects(c.get("/messages/sent/")))
	inbox := c.get("/messages/inbox/")
	assert.Equal(t, []string{"Тема 1"}, subjects(inbox))

	letter := c.get("/message/" + letterID(t, inbox, "Тема 1") + "/")
	assert.Equal(t, "Тема 1", letter.Find(".b-letter__head__subj__text").Text())
	assert.Equal(t, testEmail, letter.Find(".b-letter__head__addrs__value .b-contact-informer-target").Text())
	assert.Equal(t, "Текст 1", letter.Find(".b-letter__body").Text())
}

func TestBlankSubjectPlaceholder(t *testing.T) {
	c := newClient(t)
	c.login()
	c.send(testEmail, "", "")

	inbox := c.get("/messages/inbox/")
	assert.Equal(t, []string{"<Без темы>"}, subjects(inbox))

	letter := c.get("/message/" + letterID(t, inbox, "<Без темы>") + "/")
	assert.Equal(t, "<Без темы>", letter.Find(".b-letter__head__subj__text").Text())
	assert.Empty(t, letter.Find(".b-letter__body").Text())
}

func TestRejectsAddresseeWithoutAt(t *testing.T) {
	c := newClient(t)
	c.login()

	resp, err := c.http.PostForm(c.base+"/compose/send", url.Values{"To": {"nobody"}, "Subject": {"x"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, subjects(c.get("/messages/sent/")))
}

func TestSpamRoundTripAndDelete(t *testing.T) {
	c := newClient(t)
	c.login()
	c.send(testEmail, "Спамное", "текст")

	id := letterID(t, c.get("/messages/inbox/"), "Спамное")

	inbox := c.post("/messages/inbox/action", url.Values{"action": {"spam"}, "ids": {id}})
	assert.Empty(t, subjects(inbox))
	spam := c.get("/messages/spam/")
	assert.Equal(t, []string{"Спамное"}, subjects(spam))
	assert.Equal(t, 1, spam.Find(`[data-name="noSpam"]`).Length())
	assert.Equal(t, 0, spam.Find(`[data-name="spam"]`).Length())

	spam = c.post("/messages/spam/action", url.Values{"action": {"noSpam"}, "ids": {id}})
	assert.Empty(t, subjects(spam))
	assert.Equal(t, []string{"Спамное"}, subjects(c.get("/messages/inbox/")))

	c.post("/messages/inbox/action", url.Values{"action": {"remove"}, "ids": {id}})
	assert.Empty(t, subjects(c.get("/messages/inbox/")))
	assert.Equal(t, []string{"Спамное"}, subjects(c.get("/messages/trash/")))

	trash := c.post("/messages/trash/action", url.Values{"action": {"remove"}, "ids": {id}})
	assert.Empty(t, subjects(trash))
}

func TestSaveDraft(t *testing.T) {
	c := newClient(t)
	c.login()

	doc := c.post("/compose/draft", url.Values{"To": {testEmail}, "Subject": {"Черновик"}, "Body": {"текст"}})
	link := doc.Find(".b-toolbar__message a")
	assert.Equal(t, 1, link.Length())
	draftID, _ := doc.Find(`input[name="draft_id"]`).Attr("value")
	require.NotEmpty(t, draftID)

	drafts := c.get("/messages/drafts/")
	assert.Equal(t, []string{"Черновик"}, subjects(drafts))

	editor := c.get("/compose/editor?draft=" + draftID)
	assert.Equal(t, "текст", editor.Find("#tinymce").Text())

	// отправка черновика убирает его из папки
	c.post("/compose/send", url.Values{"To": {testEmail}, "Subject": {"Черновик"}, "Body": {"текст"}, "draft_id": {draftID}})
	assert.Empty(t, subjects(c.get("/messages/drafts/")))
}

func TestComposeMarkup(t *testing.T) {
	c := newClient(t)
	c.login()

	doc := c.get("/compose/")
	assert.Equal(t, 1, doc.Find(`input[data-original-name="To"]`).Length())
	assert.Equal(t, 1, doc.Find(`input[name="Subject"]`).Length())
	assert.Equal(t, 1, doc.Find(`iframe[id*="composeEditor"]`).Length())
	assert.Equal(t, 1, doc.Find(`div[data-name="send"]`).Length())

	popup := doc.Find(".is-compose-empty_in")
	assert.Equal(t, fixtures.Default().EmptyLetterAlert, popup.Find(".popup__desc").Text())
	assert.Equal(t, 1, popup.Find("button.confirm-ok").Length())

	script := doc.Find("script").Text()
	assert.Contains(t, script, "invalidAddresseeAlert")
}

func TestEmptyEditorHasNoText(t *testing.T) {
	c := newClient(t)
	c.login()

	editor := c.get("/compose/editor")
	assert.Equal(t, "", editor.Find("#tinymce").Text())
}
