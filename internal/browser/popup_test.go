package browser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	got  string
	info *PopupInfo
}

func (s *stubLLM) AnalyzePopup(ctx context.Context, elements string) (*PopupInfo, error) {
	s.got = elements
	return s.info, nil
}

func TestLLMPopupDetectorEmptySnapshot(t *testing.T) {
	llm := &stubLLM{info: &PopupInfo{HasPopup: true}}
	detector := NewLLMPopupDetector(llm)

	info, err := detector.DetectPopup(context.Background(), &PageSnapshot{})
	require.NoError(t, err)
	assert.False(t, info.HasPopup)
	assert.Empty(t, llm.got, "LLM must not be called without elements")
}

func TestLLMPopupDetectorSendsElements(t *testing.T) {
	llm := &stubLLM{info: &PopupInfo{HasPopup: true, CloseSelector: ".b-panel__close"}}
	detector := NewLLMPopupDetector(llm)

	snapshot := &PageSnapshot{Elements: []ElementInfo{{Tag: "button", Text: "Закрыть", Selector: ".b-panel__close", Interactive: true}}}
	info, err := detector.DetectPopup(context.Background(), snapshot)
	require.NoError(t, err)
	assert.Equal(t, ".b-panel__close", info.CloseSelector)

	var sent []ElementInfo
	require.NoError(t, json.Unmarshal([]byte(llm.got), &sent))
	assert.Equal(t, snapshot.Elements, sent)
}

func TestNotLaunchedBrowser(t *testing.T) {
	b := New(Config{})
	ctx := context.Background()

	assert.ErrorIs(t, b.Navigate(ctx, "https://mail.ru"), ErrNotLaunched)
	assert.ErrorIs(t, b.Click(ctx, CSS("#send")), ErrNotLaunched)
	_, err := b.IsVisible(ctx, CSS("#send"))
	assert.ErrorIs(t, err, ErrNotLaunched)
	_, err = b.WaitForAlert(ctx)
	assert.ErrorIs(t, err, ErrNotLaunched)
	assert.NoError(t, b.Close())
}
