package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

var _ Driver = (*PlaywrightBrowser)(nil)

func New(cfg Config) *PlaywrightBrowser {
	// Установка дефолтных таймаутов
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ImplicitWait == 0 {
		cfg.ImplicitWait = 5 * time.Second
	}
	if cfg.NavigateTimeout == 0 {
		cfg.NavigateTimeout = 60 * time.Second // Navigate обычно дольше
	}
	if cfg.ActionTimeout == 0 {
		cfg.ActionTimeout = 10 * time.Second
	}
	if cfg.Engine == "" {
		cfg.Engine = "firefox"
	}

	return &PlaywrightBrowser{
		cfg:     cfg,
		dialogs: newDialogQueue(),
	}
}

func (b *PlaywrightBrowser) SetPopupDetector(detector PopupDetector) {
	b.popupDetector = detector
}

// getPage безопасно возвращает текущую страницу с read lock
func (b *PlaywrightBrowser) getPage() playwright.Page {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.page
}

// setPage безопасно устанавливает страницу с write lock
func (b *PlaywrightBrowser) setPage(page playwright.Page) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = page
	b.frame = ""
	page.SetDefaultTimeout(float64(b.cfg.Timeout.Milliseconds()))
	page.OnDialog(b.dialogs.push)
}

func (b *PlaywrightBrowser) browserType(pw *playwright.Playwright) playwright.BrowserType {
	if b.cfg.Engine == "chromium" {
		return pw.Chromium
	}
	return pw.Firefox
}

func (b *PlaywrightBrowser) getBrowserArgs() []string {
	if b.cfg.Engine == "chromium" {
		return []string{"--no-sandbox"}
	}
	return nil
}

func (b *PlaywrightBrowser) getEnvMap() map[string]string {
	if b.cfg.Display != "" {
		return map[string]string{
			"DISPLAY": b.cfg.Display,
		}
	}
	return nil
}

func (b *PlaywrightBrowser) launchPersistent(pw *playwright.Playwright) error {
	opts := playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
		SlowMo:   playwright.Float(float64(b.cfg.SlowMo.Milliseconds())),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browserContext, err := b.browserType(pw).LaunchPersistentContext(b.cfg.UserDataDir, opts)
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.context = browserContext
	b.mu.Unlock()

	pages := browserContext.Pages()
	var page playwright.Page
	if len(pages) == 0 {
		page, err = browserContext.NewPage()
		if err != nil {
			return err
		}
	} else {
		page = pages[0]
	}

	b.setPage(page)
	return nil
}

func (b *PlaywrightBrowser) launchStandard(pw *playwright.Playwright) error {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.cfg.Headless),
		Args:     b.getBrowserArgs(),
		SlowMo:   playwright.Float(float64(b.cfg.SlowMo.Milliseconds())),
	}

	if env := b.getEnvMap(); env != nil {
		opts.Env = env
	}

	browser, err := b.browserType(pw).Launch(opts)
	if err != nil {
		return err
	}

	browserContext, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 900},
		Locale:   playwright.String("ru-RU"),
	})
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.browser = browser
	b.context = browserContext
	b.mu.Unlock()

	page, err := browserContext.NewPage()
	if err != nil {
		return err
	}

	b.setPage(page)
	return nil
}

func (b *PlaywrightBrowser) Launch(ctx context.Context) error {
	if b.cfg.BrowsersPath != "" {
		os.Setenv("PLAYWRIGHT_BROWSERS_PATH", b.cfg.BrowsersPath)
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("не удалось запустить playwright: %w", err)
	}
	b.pw = pw

	if b.cfg.UserDataDir != "" {
		return b.launchPersistent(pw)
	}

	return b.launchStandard(pw)
}

func (b *PlaywrightBrowser) Navigate(ctx context.Context, url string) error {
	page := b.getPage()
	if page == nil {
		return ErrNotLaunched
	}

	// Создаем context с timeout для navigate операции
	navCtx, cancel := context.WithTimeout(ctx, b.cfg.NavigateTimeout)
	defer cancel()

	// Channel для получения результата
	errChan := make(chan error, 1)
	go func() {
		_, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(float64(b.cfg.NavigateTimeout.Milliseconds())),
		})
		errChan <- err
	}()

	// Ждем результат или timeout
	select {
	case <-navCtx.Done():
		return fmt.Errorf("%w: переход на %s дольше %v", ErrTimeout, url, b.cfg.NavigateTimeout)
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("ошибка перехода на %s: %w", url, err)
		}
	}

	b.SwitchToDefaultContent()

	if err := b.ClosePopups(ctx); err != nil {
		return fmt.Errorf("ошибка закрытия попапов после навигации: %w", err)
	}

	return nil
}

// Click ждет появления элемента и кликает по нему. Если клик открыл нативный
// диалог, playwright не завершит действие до его закрытия, поэтому клик
// выполняется в отдельной горутине и считается выполненным при появлении диалога.
func (b *PlaywrightBrowser) Click(ctx context.Context, loc Locator) error {
	target, err := b.attached(ctx, "click", loc)
	if err != nil {
		return err
	}
	b.dialogs.drain()

	errChan := make(chan error, 1)
	go func() {
		errChan <- target.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(b.bound(ctx, b.cfg.ActionTimeout)),
		})
	}()

	select {
	case <-ctx.Done():
		return wrap("click", loc, ctx.Err(), false)
	case <-b.dialogs.opened():
		return nil
	case err := <-errChan:
		return wrap("click", loc, err, false)
	}
}

// Type дописывает текст в поле посимвольно, как sendKeys.
func (b *PlaywrightBrowser) Type(ctx context.Context, loc Locator, text string) error {
	target, err := b.attached(ctx, "type", loc)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	err = target.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Timeout: playwright.Float(b.bound(ctx, b.cfg.ActionTimeout)),
	})
	return wrap("type", loc, err, false)
}

// Screenshot сохраняет снимок текущей страницы, создавая каталог при необходимости.
func (b *PlaywrightBrowser) Screenshot(path string) error {
	page := b.getPage()
	if page == nil {
		return ErrNotLaunched
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (b *PlaywrightBrowser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.context != nil {
		if err := b.context.Close(); err != nil {
			return err
		}
	}
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			return err
		}
	}
	if b.pw != nil {
		return b.pw.Stop()
	}
	return nil
}
