package browser

import (
	"context"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Driver - живая сессия браузера, над которой работают page objects.
// Локаторы разрешаются заново при каждом вызове, ссылки на элементы не кэшируются.
type Driver interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, loc Locator) error
	Type(ctx context.Context, loc Locator, text string) error
	Text(ctx context.Context, loc Locator) (string, error)
	TextContent(ctx context.Context, loc Locator) (string, error)
	Count(ctx context.Context, loc Locator) (int, error)
	WaitVisible(ctx context.Context, loc Locator) error
	WaitEnabled(ctx context.Context, loc Locator) error
	WaitHidden(ctx context.Context, loc Locator) error
	IsVisible(ctx context.Context, loc Locator) (bool, error)
	SwitchToFrame(ctx context.Context, frame Locator) error
	SwitchToDefaultContent()
	WaitForAlert(ctx context.Context) (Alert, error)
}

// Alert - нативный диалог браузера (alert/confirm).
type Alert interface {
	Text() string
	Accept() error
	Dismiss() error
}

type PageSnapshot struct {
	URL      string
	Title    string
	Elements []ElementInfo
}

type ElementInfo struct {
	Tag         string `json:"tag"`
	Text        string `json:"text"`
	Selector    string `json:"selector"`
	Visible     bool   `json:"visible"`
	Interactive bool   `json:"interactive"`
	Role        string `json:"role"`
	Label       string `json:"label"`
}

type PlaywrightBrowser struct {
	pw            *playwright.Playwright
	browser       playwright.Browser
	context       playwright.BrowserContext
	page          playwright.Page
	frame         Locator
	cfg           Config
	popupDetector PopupDetector
	dialogs       *dialogQueue
	mu            sync.RWMutex
}

type Config struct {
	Engine          string
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	Display         string
	SlowMo          time.Duration
	Timeout         time.Duration
	ImplicitWait    time.Duration
	ActionTimeout   time.Duration
	NavigateTimeout time.Duration
}
