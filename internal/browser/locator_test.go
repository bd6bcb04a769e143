package browser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocatorConstructors(t *testing.T) {
	assert.Equal(t, Locator("xpath=//div[@data-name='send']"), XPath("//div[@data-name='send']"))
	assert.Equal(t, Locator("css=#tinymce"), CSS("#tinymce"))
	assert.Equal(t, Locator(`css=[name="Subject"]`), Name("Subject"))
}

func TestXPathLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Тема письма", "'Тема письма'"},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "x"`, `concat('it', "'", 's "x"')`},
		{`'`, `"'"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPathLiteral(tt.in), tt.in)
	}
}

func TestXPathf(t *testing.T) {
	loc := XPathf("//a[.//div[normalize-space(text())=%s]]", "O'Brien")
	assert.Equal(t, Locator(`xpath=//a[.//div[normalize-space(text())="O'Brien"]]`), loc)
}

func TestLocatorValidate(t *testing.T) {
	assert.NoError(t, XPath("//a").Validate())
	assert.Error(t, Locator("").Validate())
	assert.Error(t, Locator("https://mail.ru").Validate())
	assert.Error(t, Locator("ftp://x").Validate())
}

func TestIsMissing(t *testing.T) {
	err := &ElementError{Op: "wait visible", Locator: CSS("#x"), Err: ErrTimeout}
	assert.True(t, IsMissing(err))
	assert.True(t, IsMissing(fmt.Errorf("confirm: %w", &ElementError{Op: "click", Err: ErrElementNotFound})))
	assert.True(t, IsMissing(ErrNoAlert))
	assert.False(t, IsMissing(errors.New("target closed")))
	assert.False(t, IsMissing(ErrNotLaunched))
}
