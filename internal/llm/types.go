// Package llm подключает OpenAI для распознавания перекрывающих окон почты.
// Запросы ограничены по частоте и пишутся в журнал прогонов.
package llm

import "context"

// Logger сохраняет запросы к LLM. Реализуется database.RunRepository.
type Logger interface {
	LogLLMRequest(ctx context.Context, role, promptText, responseText, model string, tokensUsed int) error
}
