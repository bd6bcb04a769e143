package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Cfg struct {
	Database   Database
	Logger     Logger
	OpenAI     OpenAI
	Browser    Browser
	Mail       Mail
	Suite      Suite
	Migrations Migrations
}

type Database struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Enabled сообщает, настроен ли журнал прогонов в PostgreSQL.
func (d Database) Enabled() bool {
	return d.Host != "" && d.Name != ""
}

func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type Migrations struct {
	Enabled bool
}

type Logger struct {
	Env   string
	Level string
}

type OpenAI struct {
	KeyAI             string
	Model             string
	RequestsPerMinute int `validate:"gte=0"`
}

type Browser struct {
	Engine          string `validate:"oneof=firefox chromium"`
	Display         string
	Headless        bool
	UserDataDir     string
	BrowsersPath    string
	SlowMo          time.Duration
	Timeout         time.Duration
	ImplicitWait    time.Duration
	ActionTimeout   time.Duration
	NavigateTimeout time.Duration
	ScreenshotsDir  string
}

// Mail описывает почтовый сервис под тестом и рабочую учетную запись.
type Mail struct {
	BaseURL  string `validate:"required,url"`
	Domain   string
	Login    string
	Password string
}

type Suite struct {
	ScenarioTimeout time.Duration `validate:"gt=0"`
	TeardownTimeout time.Duration `validate:"gt=0"`
	FixturesPath    string
}

func Load() (*Cfg, error) {
	_ = godotenv.Load()

	cfg := &Cfg{
		Database: Database{
			Host:     os.Getenv("DB_HOST"),
			Port:     env("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASS"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Logger: Logger{
			Env:   env("ENV", "dev"),
			Level: env("LOG_LEVEL", "info"),
		},
		OpenAI: OpenAI{
			KeyAI:             os.Getenv("OPENAI_API_KEY"),
			Model:             env("OPENAI_MODEL", "gpt-4o"),
			RequestsPerMinute: envInt("OPENAI_RPM", 20),
		},
		Browser: Browser{
			Engine:          env("PW_ENGINE", "firefox"),
			Display:         os.Getenv("DISPLAY"),
			Headless:        envBool("PW_HEADLESS"),
			UserDataDir:     os.Getenv("PW_USER_DATA_DIR"),
			BrowsersPath:    env("PLAYWRIGHT_BROWSERS_PATH", ""),
			SlowMo:          envDuration("PW_SLOW_MO", 0),
			Timeout:         envDuration("PW_TIMEOUT", 10*time.Second),
			ImplicitWait:    envDuration("PW_IMPLICIT_WAIT", 5*time.Second),
			ActionTimeout:   envDuration("PW_ACTION_TIMEOUT", 10*time.Second),
			NavigateTimeout: envDuration("PW_NAVIGATE_TIMEOUT", 60*time.Second),
			ScreenshotsDir:  env("SCREENSHOTS_DIR", "./test-results/screenshots"),
		},
		Mail: Mail{
			BaseURL:  env("MAIL_BASE_URL", "https://mail.ru"),
			Domain:   env("MAIL_DOMAIN", "mail.ru"),
			Login:    os.Getenv("MAIL_LOGIN"),
			Password: os.Getenv("MAIL_PASSWORD"),
		},
		Suite: Suite{
			ScenarioTimeout: envDuration("SCENARIO_TIMEOUT", 2*time.Minute),
			TeardownTimeout: envDuration("TEARDOWN_TIMEOUT", 30*time.Second),
			FixturesPath:    os.Getenv("FIXTURES_PATH"),
		},
		Migrations: Migrations{
			Enabled: envBoolDefault("MIGRATIONS_ENABLED", true),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("неверная конфигурация: %w", err)
	}

	return cfg, nil
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}

func envBoolDefault(key string, defaultValue bool) bool {
	if os.Getenv(key) == "" {
		return defaultValue
	}
	return envBool(key)
}

// envDuration принимает как "5s", так и число миллисекунд.
func envDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
