package browser

import (
	"context"
)

// SwitchToFrame переключает контекст поиска элементов внутрь iframe.
func (b *PlaywrightBrowser) SwitchToFrame(ctx context.Context, frame Locator) error {
	if _, err := b.attached(ctx, "switch to frame", frame); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = frame
	return nil
}

func (b *PlaywrightBrowser) SwitchToDefaultContent() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame = ""
}

// WithinFrame выполняет fn внутри фрейма и всегда возвращает драйвер
// к основному документу, в том числе когда fn завершилась ошибкой.
func WithinFrame(ctx context.Context, d Driver, frame Locator, fn func() error) error {
	if err := d.SwitchToFrame(ctx, frame); err != nil {
		return err
	}
	defer d.SwitchToDefaultContent()

	return fn()
}
