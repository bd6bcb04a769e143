package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

type PopupDetector interface {
	DetectPopup(ctx context.Context, pageSnapshot *PageSnapshot) (*PopupInfo, error)
}

type PopupInfo struct {
	HasPopup         bool   `json:"has_popup"`
	CloseSelector    string `json:"close_selector"`
	PopupDescription string `json:"popup_description"`
	Reasoning        string `json:"reasoning"`
}

type LLMPopupDetector struct {
	llmClient LLMClient
}

type LLMClient interface {
	AnalyzePopup(ctx context.Context, elements string) (*PopupInfo, error)
}

func NewLLMPopupDetector(llmClient LLMClient) *LLMPopupDetector {
	return &LLMPopupDetector{
		llmClient: llmClient,
	}
}

func (d *LLMPopupDetector) DetectPopup(ctx context.Context, pageSnapshot *PageSnapshot) (*PopupInfo, error) {
	if pageSnapshot == nil || len(pageSnapshot.Elements) == 0 {
		return &PopupInfo{HasPopup: false}, nil
	}

	elementsJSON, err := json.Marshal(pageSnapshot.Elements)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal elements: %w", err)
	}

	return d.llmClient.AnalyzePopup(ctx, string(elementsJSON))
}

// Рекламные и промо-окна почты, которые перекрывают интерфейс после перехода.
var popupCloseSelectors = []string{
	"[role='dialog'] button[aria-label*='close' i]",
	"[role='dialog'] button[aria-label*='закрыть' i]",
	".promo-popup .js-close",
	".b-panel__close",
	"[data-dismiss='modal']",
	"[aria-label='Close']",
	"[aria-label='Закрыть']",
}

// ClosePopups закрывает перекрывающие окна. Вызывается только после навигации:
// диалоги письма (например, подтверждение пустого письма) закрывать нельзя.
func (b *PlaywrightBrowser) ClosePopups(ctx context.Context) error {
	page := b.getPage()
	if page == nil {
		return ErrNotLaunched
	}

	if b.popupDetector == nil {
		return b.closePopupsLegacy(page)
	}

	snapshot, err := b.GetPageSnapshot(ctx)
	if err != nil {
		return b.closePopupsLegacy(page)
	}

	popupInfo, err := b.popupDetector.DetectPopup(ctx, snapshot)
	if err != nil {
		return b.closePopupsLegacy(page)
	}

	if !popupInfo.HasPopup || popupInfo.CloseSelector == "" {
		return nil
	}

	closeButton := page.Locator(popupInfo.CloseSelector).First()
	if visible, err := closeButton.IsVisible(); err != nil || !visible {
		return nil
	}

	if err := closeButton.Click(); err == nil {
		time.Sleep(500 * time.Millisecond)
	}

	return nil
}

func (b *PlaywrightBrowser) closePopupsLegacy(page playwright.Page) error {
	for _, selector := range popupCloseSelectors {
		buttons, err := page.Locator(selector).All()
		if err != nil {
			continue
		}

		for _, button := range buttons {
			visible, err := button.IsVisible()
			if err != nil || !visible {
				continue
			}

			if err := button.Click(); err == nil {
				time.Sleep(500 * time.Millisecond)
			}
		}
	}

	return nil
}

const snapshotScript = `() => {
	const interactive = 'button, a, input, [role=button], [onclick]';
	const out = [];
	document.querySelectorAll('[role=dialog], .popup, .modal, [class*=overlay], ' + interactive).forEach(el => {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		if (style.display === 'none' || style.visibility === 'hidden' || rect.width === 0 || rect.height === 0) return;

		let selector = el.tagName.toLowerCase();
		if (el.id) selector = '#' + CSS.escape(el.id);
		else if (el.getAttribute('aria-label')) selector += '[aria-label="' + el.getAttribute('aria-label') + '"]';
		else if (el.classList.length > 0) selector += '.' + CSS.escape(el.classList[0]);

		out.push({
			tag: el.tagName.toLowerCase(),
			text: (el.textContent || '').trim().substring(0, 120),
			selector: selector,
			visible: true,
			interactive: el.matches(interactive),
			role: el.getAttribute('role') || '',
			label: el.getAttribute('aria-label') || el.getAttribute('title') || ''
		});
	});
	return JSON.stringify(out.slice(0, 150));
}`

// GetPageSnapshot собирает видимые интерактивные элементы и контейнеры окон для детектора попапов.
func (b *PlaywrightBrowser) GetPageSnapshot(ctx context.Context) (*PageSnapshot, error) {
	page := b.getPage()
	if page == nil {
		return nil, ErrNotLaunched
	}

	if err := b.WaitForLoadState(ctx, "networkidle"); err != nil {
		return nil, fmt.Errorf("ошибка ожидания загрузки страницы: %w", err)
	}

	raw, err := page.Evaluate(snapshotScript)
	if err != nil {
		return nil, fmt.Errorf("ошибка извлечения snapshot: %w", err)
	}

	encoded, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("неверный формат snapshot: %T", raw)
	}

	var elements []ElementInfo
	if err := json.Unmarshal([]byte(encoded), &elements); err != nil {
		return nil, fmt.Errorf("ошибка разбора snapshot: %w", err)
	}

	title, _ := page.Title()
	return &PageSnapshot{
		URL:      page.URL(),
		Title:    title,
		Elements: elements,
	}, nil
}
