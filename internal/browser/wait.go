package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const enabledPollInterval = 100 * time.Millisecond

// bound ограничивает таймаут оставшимся временем контекста, результат в миллисекундах.
func (b *PlaywrightBrowser) bound(ctx context.Context, d time.Duration) float64 {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d < 0 {
		d = 0
	}
	return float64(d.Milliseconds())
}

// locate разрешает локатор в текущем контексте: странице или выбранном фрейме.
func (b *PlaywrightBrowser) locate(loc Locator) (playwright.Locator, error) {
	if err := loc.Validate(); err != nil {
		return nil, fmt.Errorf("невалидный селектор: %w", err)
	}

	b.mu.RLock()
	page, frame := b.page, b.frame
	b.mu.RUnlock()

	if page == nil {
		return nil, ErrNotLaunched
	}
	if frame != "" {
		return page.FrameLocator(string(frame)).Locator(string(loc)).First(), nil
	}
	return page.Locator(string(loc)).First(), nil
}

// attached ждет появления элемента в DOM. Таймаут здесь означает, что элемента нет.
func (b *PlaywrightBrowser) attached(ctx context.Context, op string, loc Locator) (playwright.Locator, error) {
	target, err := b.locate(loc)
	if err != nil {
		return nil, &ElementError{Op: op, Locator: loc, Err: err}
	}

	err = target.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(b.bound(ctx, b.cfg.ActionTimeout)),
	})
	if err != nil {
		return nil, wrap(op, loc, err, true)
	}
	return target, nil
}

func (b *PlaywrightBrowser) waitState(ctx context.Context, op string, loc Locator, state *playwright.WaitForSelectorState, timeout time.Duration) (playwright.Locator, error) {
	target, err := b.locate(loc)
	if err != nil {
		return nil, &ElementError{Op: op, Locator: loc, Err: err}
	}

	err = target.WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(b.bound(ctx, timeout)),
	})
	if err != nil {
		return nil, wrap(op, loc, err, false)
	}
	return target, nil
}

func (b *PlaywrightBrowser) WaitVisible(ctx context.Context, loc Locator) error {
	_, err := b.waitState(ctx, "wait visible", loc, playwright.WaitForSelectorStateVisible, b.cfg.Timeout)
	return err
}

func (b *PlaywrightBrowser) WaitHidden(ctx context.Context, loc Locator) error {
	_, err := b.waitState(ctx, "wait hidden", loc, playwright.WaitForSelectorStateHidden, b.cfg.Timeout)
	return err
}

// WaitEnabled ждет видимости элемента, затем опрашивает disabled до истечения таймаута.
func (b *PlaywrightBrowser) WaitEnabled(ctx context.Context, loc Locator) error {
	deadline := time.Now().Add(b.cfg.Timeout)

	target, err := b.waitState(ctx, "wait enabled", loc, playwright.WaitForSelectorStateVisible, b.cfg.Timeout)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(enabledPollInterval)
	defer ticker.Stop()

	for {
		enabled, err := target.IsEnabled()
		if err != nil {
			return wrap("wait enabled", loc, err, false)
		}
		if enabled {
			return nil
		}
		if time.Now().After(deadline) {
			return &ElementError{Op: "wait enabled", Locator: loc, Err: ErrTimeout}
		}

		select {
		case <-ctx.Done():
			return &ElementError{Op: "wait enabled", Locator: loc, Err: ctx.Err()}
		case <-ticker.C:
		}
	}
}

// IsVisible ждет видимости не дольше неявного ожидания; таймаут означает "не виден".
func (b *PlaywrightBrowser) IsVisible(ctx context.Context, loc Locator) (bool, error) {
	_, err := b.waitState(ctx, "is visible", loc, playwright.WaitForSelectorStateVisible, b.cfg.ImplicitWait)
	if err == nil {
		return true, nil
	}
	if IsMissing(err) {
		return false, nil
	}
	return false, err
}

// Text ждет видимости элемента и возвращает его видимый текст.
func (b *PlaywrightBrowser) Text(ctx context.Context, loc Locator) (string, error) {
	target, err := b.waitState(ctx, "get text", loc, playwright.WaitForSelectorStateVisible, b.cfg.Timeout)
	if err != nil {
		return "", err
	}

	text, err := target.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(b.bound(ctx, b.cfg.ActionTimeout)),
	})
	if err != nil {
		return "", wrap("get text", loc, err, false)
	}
	return strings.TrimSpace(text), nil
}

// TextContent ждет только появления элемента в DOM и возвращает его текст.
// Подходит для блоков, которые могут быть пустыми и потому не иметь размера.
func (b *PlaywrightBrowser) TextContent(ctx context.Context, loc Locator) (string, error) {
	target, err := b.attached(ctx, "get text content", loc)
	if err != nil {
		return "", err
	}

	text, err := target.TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(b.bound(ctx, b.cfg.ActionTimeout)),
	})
	if err != nil {
		return "", wrap("get text content", loc, err, false)
	}
	return strings.TrimSpace(text), nil
}

func (b *PlaywrightBrowser) Count(ctx context.Context, loc Locator) (int, error) {
	if err := loc.Validate(); err != nil {
		return 0, fmt.Errorf("невалидный селектор: %w", err)
	}

	b.mu.RLock()
	page, frame := b.page, b.frame
	b.mu.RUnlock()

	if page == nil {
		return 0, ErrNotLaunched
	}

	var n int
	var err error
	if frame != "" {
		n, err = page.FrameLocator(string(frame)).Locator(string(loc)).Count()
	} else {
		n, err = page.Locator(string(loc)).Count()
	}
	if err != nil {
		return 0, wrap("count", loc, err, false)
	}
	return n, nil
}

func (b *PlaywrightBrowser) WaitForLoadState(ctx context.Context, state string) error {
	page := b.getPage()
	if page == nil {
		return ErrNotLaunched
	}

	var loadState *playwright.LoadState
	switch strings.ToLower(state) {
	case "load":
		loadState = playwright.LoadStateLoad
	case "domcontentloaded":
		loadState = playwright.LoadStateDomcontentloaded
	case "networkidle":
		loadState = playwright.LoadStateNetworkidle
	default:
		loadState = playwright.LoadStateLoad
	}

	return page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   loadState,
		Timeout: playwright.Float(b.bound(ctx, b.cfg.NavigateTimeout)),
	})
}
