package browser

import (
	"context"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// dialogQueue копит нативные диалоги страницы до тех пор, пока их не заберет WaitForAlert.
// Пока диалог в очереди, страница заблокирована.
type dialogQueue struct {
	mu      sync.Mutex
	pending []playwright.Dialog
	notify  chan struct{}
}

func newDialogQueue() *dialogQueue {
	return &dialogQueue{notify: make(chan struct{}, 1)}
}

func (q *dialogQueue) push(d playwright.Dialog) {
	q.mu.Lock()
	q.pending = append(q.pending, d)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *dialogQueue) pop() (playwright.Dialog, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil, false
	}
	d := q.pending[0]
	q.pending = q.pending[1:]
	return d, true
}

func (q *dialogQueue) opened() <-chan struct{} {
	return q.notify
}

// drain сбрасывает устаревшее уведомление перед новым действием.
func (q *dialogQueue) drain() {
	select {
	case <-q.notify:
	default:
	}
}

// WaitForAlert ждет нативный диалог не дольше явного ожидания.
func (b *PlaywrightBrowser) WaitForAlert(ctx context.Context) (Alert, error) {
	if b.getPage() == nil {
		return nil, ErrNotLaunched
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()

	for {
		if d, ok := b.dialogs.pop(); ok {
			return &playwrightAlert{dialog: d}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrNoAlert
		case <-b.dialogs.opened():
		}
	}
}

type playwrightAlert struct {
	dialog playwright.Dialog
}

func (a *playwrightAlert) Text() string {
	return a.dialog.Message()
}

func (a *playwrightAlert) Accept() error {
	return a.dialog.Accept()
}

func (a *playwrightAlert) Dismiss() error {
	return a.dialog.Dismiss()
}
