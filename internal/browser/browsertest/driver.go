// Package browsertest предоставляет Driver в памяти для юнит-тестов page objects и сервисов.
// Элементы задаются по точному значению локатора, клики могут менять состояние через хуки.
package browsertest

import (
	"context"
	"fmt"
	"sync"

	"mailSuite/internal/browser"
)

// Element - элемент страницы. ZeroSize - элемент в DOM без размера (например, пустой блок):
// для браузера он не виден, но его текст читается.
type Element struct {
	Text     string
	Value    string
	Hidden   bool
	ZeroSize bool
	Disabled bool
}

type Action struct {
	Kind    string
	Frame   browser.Locator
	Locator browser.Locator
	Text    string
}

type Driver struct {
	mu       sync.Mutex
	URL      string
	frame    browser.Locator
	scopes   map[browser.Locator]map[browser.Locator]*Element
	counts   map[browser.Locator]int
	onClick  map[browser.Locator]func(d *Driver)
	alerts   []*Alert
	actions  []Action
	failures map[browser.Locator]error
}

var _ browser.Driver = (*Driver)(nil)

func New() *Driver {
	return &Driver{
		scopes:   map[browser.Locator]map[browser.Locator]*Element{"": {}},
		counts:   map[browser.Locator]int{},
		onClick:  map[browser.Locator]func(d *Driver){},
		failures: map[browser.Locator]error{},
	}
}

// Set кладет элемент в основной документ.
func (d *Driver) Set(loc browser.Locator, el Element) *Driver {
	return d.SetIn("", loc, el)
}

// SetIn кладет элемент внутрь фрейма frame.
func (d *Driver) SetIn(frame, loc browser.Locator, el Element) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()

	scope, ok := d.scopes[frame]
	if !ok {
		scope = map[browser.Locator]*Element{}
		d.scopes[frame] = scope
	}
	e := el
	scope[loc] = &e
	return d
}

func (d *Driver) Remove(loc browser.Locator) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.scopes[""], loc)
	return d
}

func (d *Driver) Hide(loc browser.Locator) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	if el, ok := d.scopes[""][loc]; ok {
		el.Hidden = true
	}
	return d
}

// SetCount задает число совпадений локатора для Count, не зависящее от Set.
func (d *Driver) SetCount(loc browser.Locator, n int) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[loc] = n
	return d
}

// OnClick регистрирует реакцию страницы на клик по локатору.
func (d *Driver) OnClick(loc browser.Locator, fn func(d *Driver)) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onClick[loc] = fn
	return d
}

// Fail заставляет любую операцию с локатором вернуть err.
func (d *Driver) Fail(loc browser.Locator, err error) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[loc] = err
	return d
}

// OpenAlert имитирует появление нативного диалога.
func (d *Driver) OpenAlert(text string) *Alert {
	d.mu.Lock()
	defer d.mu.Unlock()
	a := &Alert{text: text}
	d.alerts = append(d.alerts, a)
	return a
}

func (d *Driver) Element(loc browser.Locator) (Element, bool) {
	return d.ElementIn("", loc)
}

func (d *Driver) ElementIn(frame, loc browser.Locator) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.scopes[frame][loc]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

func (d *Driver) Actions() []Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Action(nil), d.actions...)
}

// Clicked сообщает, был ли клик по локатору.
func (d *Driver) Clicked(loc browser.Locator) bool {
	for _, a := range d.Actions() {
		if a.Kind == "click" && a.Locator == loc {
			return true
		}
	}
	return false
}

func (d *Driver) CurrentFrame() browser.Locator {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

func (d *Driver) record(kind string, loc browser.Locator, text string) {
	d.actions = append(d.actions, Action{Kind: kind, Frame: d.frame, Locator: loc, Text: text})
}

func (d *Driver) lookup(op string, loc browser.Locator) (*Element, error) {
	if err, ok := d.failures[loc]; ok {
		return nil, &browser.ElementError{Op: op, Locator: loc, Err: err}
	}
	el, ok := d.scopes[d.frame][loc]
	if !ok {
		return nil, &browser.ElementError{Op: op, Locator: loc, Err: browser.ErrElementNotFound}
	}
	return el, nil
}

func (d *Driver) Navigate(ctx context.Context, url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.URL = url
	d.frame = ""
	d.record("navigate", "", url)
	return nil
}

func (d *Driver) Click(ctx context.Context, loc browser.Locator) error {
	d.mu.Lock()
	if _, err := d.lookup("click", loc); err != nil {
		d.mu.Unlock()
		return err
	}
	d.record("click", loc, "")
	hook := d.onClick[loc]
	d.mu.Unlock()

	if hook != nil {
		hook(d)
	}
	return nil
}

func (d *Driver) Type(ctx context.Context, loc browser.Locator, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.lookup("type", loc)
	if err != nil {
		return err
	}
	el.Value += text
	d.record("type", loc, text)
	return nil
}

func (d *Driver) Text(ctx context.Context, loc browser.Locator) (string, error) {
	if err := d.WaitVisible(ctx, loc); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	el, err := d.lookup("get text", loc)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (d *Driver) TextContent(ctx context.Context, loc browser.Locator) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.lookup("get text content", loc)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (d *Driver) Count(ctx context.Context, loc browser.Locator) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, ok := d.counts[loc]; ok {
		return n, nil
	}
	if _, ok := d.scopes[d.frame][loc]; ok {
		return 1, nil
	}
	return 0, nil
}

// Ожидания в фейке мгновенные: условие проверяется один раз.
func (d *Driver) WaitVisible(ctx context.Context, loc browser.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, err := d.lookup("wait visible", loc)
	if err != nil {
		if browser.IsMissing(err) {
			return &browser.ElementError{Op: "wait visible", Locator: loc, Err: browser.ErrTimeout}
		}
		return err
	}
	if el.Hidden || el.ZeroSize {
		return &browser.ElementError{Op: "wait visible", Locator: loc, Err: browser.ErrTimeout}
	}
	return nil
}

func (d *Driver) WaitEnabled(ctx context.Context, loc browser.Locator) error {
	if err := d.WaitVisible(ctx, loc); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scopes[d.frame][loc].Disabled {
		return &browser.ElementError{Op: "wait enabled", Locator: loc, Err: browser.ErrTimeout}
	}
	return nil
}

func (d *Driver) WaitHidden(ctx context.Context, loc browser.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err, ok := d.failures[loc]; ok {
		return &browser.ElementError{Op: "wait hidden", Locator: loc, Err: err}
	}
	if el, ok := d.scopes[d.frame][loc]; ok && !el.Hidden && !el.ZeroSize {
		return &browser.ElementError{Op: "wait hidden", Locator: loc, Err: browser.ErrTimeout}
	}
	return nil
}

func (d *Driver) IsVisible(ctx context.Context, loc browser.Locator) (bool, error) {
	err := d.WaitVisible(ctx, loc)
	if err == nil {
		return true, nil
	}
	if browser.IsMissing(err) {
		return false, nil
	}
	return false, err
}

func (d *Driver) SwitchToFrame(ctx context.Context, frame browser.Locator) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.lookup("switch to frame", frame); err != nil {
		return err
	}
	d.frame = frame
	d.record("switch to frame", frame, "")
	return nil
}

func (d *Driver) SwitchToDefaultContent() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frame = ""
	d.record("switch to default", "", "")
}

func (d *Driver) WaitForAlert(ctx context.Context) (browser.Alert, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, a := range d.alerts {
		if !a.Closed() {
			return a, nil
		}
	}
	return nil, browser.ErrNoAlert
}

type Alert struct {
	mu       sync.Mutex
	text     string
	accepted bool
	closed   bool
}

func (a *Alert) Text() string {
	return a.text
}

func (a *Alert) Accept() error {
	return a.close(true)
}

func (a *Alert) Dismiss() error {
	return a.close(false)
}

func (a *Alert) close(accept bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return fmt.Errorf("диалог %q уже закрыт", a.text)
	}
	a.closed = true
	a.accepted = accept
	return nil
}

func (a *Alert) Closed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closed
}

func (a *Alert) Accepted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accepted
}
