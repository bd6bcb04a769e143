package pages

import (
	"context"
	"fmt"

	"mailSuite/internal/browser"
	"mailSuite/internal/models"
)

var folderPaths = map[models.Folder]string{
	models.Inbox:  "/messages/inbox/",
	models.Sent:   "/messages/sent/",
	models.Spam:   "/messages/spam/",
	models.Trash:  "/messages/trash/",
	models.Drafts: "/messages/drafts/",
}

func FolderLinkLocator(f models.Folder) browser.Locator {
	return browser.XPathf("//a[@href=%s]", folderPaths[f])
}

// ActiveFolderLocator совпадает со ссылкой папки, только когда папка уже открыта.
func ActiveFolderLocator(f models.Folder) browser.Locator {
	return browser.XPathf("//a[@href=%s and contains(@class, 'b-nav__link_active')]", folderPaths[f])
}

type LeftMenuPage struct {
	driver browser.Driver
}

func NewLeftMenuPage(d browser.Driver) *LeftMenuPage {
	return &LeftMenuPage{driver: d}
}

// OpenFolder открывает папку и ждет, пока она станет активной, чтобы не читать строки прежнего списка.
func (p *LeftMenuPage) OpenFolder(ctx context.Context, f models.Folder) (*MailListPage, error) {
	if _, ok := folderPaths[f]; !ok {
		return nil, fmt.Errorf("неизвестная папка %s", f)
	}
	if err := p.driver.Click(ctx, FolderLinkLocator(f)); err != nil {
		return nil, fmt.Errorf("открытие папки %s: %w", f, err)
	}
	if err := p.driver.WaitVisible(ctx, ActiveFolderLocator(f)); err != nil {
		return nil, fmt.Errorf("папка %s не открылась: %w", f, err)
	}
	return NewMailListPage(p.driver), nil
}

func (p *LeftMenuPage) OpenInboxFolder(ctx context.Context) (*MailListPage, error) {
	return p.OpenFolder(ctx, models.Inbox)
}

func (p *LeftMenuPage) OpenSentFolder(ctx context.Context) (*MailListPage, error) {
	return p.OpenFolder(ctx, models.Sent)
}

func (p *LeftMenuPage) OpenSpamFolder(ctx context.Context) (*MailListPage, error) {
	return p.OpenFolder(ctx, models.Spam)
}

func (p *LeftMenuPage) OpenDeletedFolder(ctx context.Context) (*MailListPage, error) {
	return p.OpenFolder(ctx, models.Trash)
}

func (p *LeftMenuPage) OpenDraftsFolder(ctx context.Context) (*MailListPage, error) {
	return p.OpenFolder(ctx, models.Drafts)
}
