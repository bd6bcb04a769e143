package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"mailSuite/internal/browser"
)

var _ browser.LLMClient = (*Client)(nil)

const popupSystemPrompt = "You are an expert at analyzing web mail interfaces and identifying promo popups, modals and overlays together with their close buttons."

// AnalyzePopup просит модель найти перекрывающее окно среди элементов страницы.
// Диалоги самого письма (подтверждение отправки) окном не считаются.
func (c *Client) AnalyzePopup(ctx context.Context, elements string) (*browser.PopupInfo, error) {
	prompt := fmt.Sprintf(`Analyze the page elements and determine if there is a promo popup, modal, or overlay that should be closed.
Do NOT treat letter dialogs (send confirmation, empty letter warning) as popups.

Elements data:
%s

Respond in JSON format:
{
  "has_popup": true/false,
  "close_selector": "CSS selector of the close button",
  "popup_description": "brief description",
  "reasoning": "your analysis"
}`, elements)

	resp, err := c.createChatCompletionWithRateLimit(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: popupSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка анализа попапа: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("пустой ответ LLM")
	}

	content := resp.Choices[0].Message.Content
	c.logRequest(ctx, openai.ChatMessageRoleSystem, prompt, content, resp.Usage.TotalTokens)

	var result browser.PopupInfo
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа LLM: %w", err)
	}
	return &result, nil
}
