package scenario

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// failNow - значение panic, которым T.FailNow прерывает тело сценария.
type failNow struct{}

// T передается в тело сценария. Реализует assert.TestingT и require.TestingT,
// поэтому проверки пишутся через testify так же, как в обычных тестах.
type T struct {
	ctx  context.Context
	name string
	log  *zap.Logger

	mu       sync.Mutex
	failed   bool
	failures []string
}

func newT(ctx context.Context, name string, log *zap.Logger) *T {
	return &T{ctx: ctx, name: name, log: log}
}

// Context ограничен таймаутом сценария.
func (t *T) Context() context.Context {
	return t.ctx
}

func (t *T) Name() string {
	return t.name
}

func (t *T) Errorf(format string, args ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	t.mu.Lock()
	t.failed = true
	t.failures = append(t.failures, msg)
	t.mu.Unlock()

	t.log.Debug("Проверка не прошла", zap.String("scenario", t.name), zap.String("message", msg))
}

func (t *T) FailNow() {
	t.mu.Lock()
	t.failed = true
	t.mu.Unlock()
	panic(failNow{})
}

// Fatalf записывает ошибку и прерывает сценарий.
func (t *T) Fatalf(format string, args ...interface{}) {
	t.Errorf(format, args...)
	t.FailNow()
}

func (t *T) Logf(format string, args ...interface{}) {
	t.log.Info(fmt.Sprintf(format, args...), zap.String("scenario", t.name))
}

func (t *T) Helper() {}

func (t *T) Failed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

func (t *T) Failures() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.failures...)
}
