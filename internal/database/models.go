// Package database хранит журнал прогонов сценариев в PostgreSQL через GORM.
// Журнал содержит только исходы проверок, состояние почты в нем не хранится.
package database

import "time"

const (
	RunStatusRunning = "running"
	RunStatusPassed  = "passed"
	RunStatusFailed  = "failed"
)

// Run - один запуск mailsuite run.
type Run struct {
	ID         string     `gorm:"type:varchar(36);primaryKey"` // uuid запуска
	Suites     string     `gorm:"type:text;not null"`          // Имена наборов через запятую
	Status     string     `gorm:"type:varchar(16);not null"`   // running, passed, failed
	Passed     int        `gorm:"not null"`
	Failed     int        `gorm:"not null"`
	Skipped    int        `gorm:"not null"`
	StartedAt  time.Time  `gorm:"not null"`
	FinishedAt *time.Time `gorm:"column:finished_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
}

// ScenarioResult - исход одной строки сценария.
type ScenarioResult struct {
	ID         uint      `gorm:"primaryKey"`
	RunID      string    `gorm:"type:varchar(36);index;not null"`
	Suite      string    `gorm:"type:varchar(64);not null"`
	Scenario   string    `gorm:"type:varchar(128);not null"`
	CaseName   string    `gorm:"column:case_name;type:varchar(128)"` // Строка параметризованного сценария
	Status     string    `gorm:"type:varchar(16);not null"`
	Failures   string    `gorm:"type:text"` // Сообщения проверок, по одному на строку
	SkipReason string    `gorm:"type:text"`
	Teardown   string    `gorm:"type:text"` // Ошибка AfterEach
	DurationMs int64     `gorm:"not null"`
	StartedAt  time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// LlmLog представляет лог запроса к LLM при поиске всплывающих окон.
// Сохраняет промпт, ответ, модель и количество использованных токенов.
type LlmLog struct {
	ID           uint      `gorm:"primaryKey"`
	Role         string    `gorm:"type:varchar(16);not null"` // Роль (user, assistant, system)
	PromptText   string    `gorm:"type:text;not null"`        // Текст промпта
	ResponseText string    `gorm:"type:text"`                 // Текст ответа
	Model        string    `gorm:"type:varchar(64)"`          // Модель (gpt-4o)
	TokensUsed   int                                          // Количество токенов
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
