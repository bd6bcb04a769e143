package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mailSuite/internal/browser"
	"mailSuite/internal/cli/commands"
	"mailSuite/internal/cli/ui"
	"mailSuite/internal/database"
	"mailSuite/internal/fixtures"
	"mailSuite/internal/llm"
	"mailSuite/internal/migrations"
	"mailSuite/internal/models"
	"mailSuite/internal/scenario"
	"mailSuite/internal/service"
	"mailSuite/internal/suites"
	"mailSuite/internal/webmailstub"
)

// Учетная запись заглушки, если MAIL_LOGIN не задан.
const (
	stubLogin    = "tester"
	stubPassword = "secret"
)

var errRunFailed = errors.New("есть проваленные сценарии")

var runCmd = &cobra.Command{
	Use:   "run [suite...]",
	Short: "Запустить наборы сценариев (по умолчанию все)",
	RunE:  runSuites,
}

var (
	useStub  bool
	stubSMTP string
)

func init() {
	runCmd.Flags().BoolVar(&useStub, "stub", false, "Запустить сценарии против встроенной заглушки почты")
	runCmd.Flags().StringVar(&stubSMTP, "stub-smtp", "", "Адрес приема писем заглушкой по SMTP, например 127.0.0.1:2525")
}

func runSuites(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	messages, err := fixtures.Load(cfg.Suite.FixturesPath)
	if err != nil {
		return err
	}

	if useStub {
		if err := startStub(ctx, messages); err != nil {
			return err
		}
	}

	var (
		recorder scenario.Recorder
		llmLog   llm.Logger
	)
	if cfg.Database.Enabled() {
		if err := migrations.Run(cfg, log); err != nil {
			return err
		}
		db, err := database.New(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close(log)

		repo := database.NewRunRepository(db.DB)
		recorder, llmLog = repo, repo
	}

	br := browser.New(browser.Config{
		Engine:          cfg.Browser.Engine,
		Headless:        cfg.Browser.Headless,
		UserDataDir:     cfg.Browser.UserDataDir,
		BrowsersPath:    cfg.Browser.BrowsersPath,
		Display:         cfg.Browser.Display,
		SlowMo:          cfg.Browser.SlowMo,
		Timeout:         cfg.Browser.Timeout,
		ImplicitWait:    cfg.Browser.ImplicitWait,
		ActionTimeout:   cfg.Browser.ActionTimeout,
		NavigateTimeout: cfg.Browser.NavigateTimeout,
	})
	if cfg.OpenAI.KeyAI != "" {
		client := llm.NewClient(cfg.OpenAI.KeyAI, cfg.OpenAI.Model, llmLog, cfg.OpenAI.RequestsPerMinute)
		br.SetPopupDetector(browser.NewLLMPopupDetector(client))
	}
	if err := br.Launch(ctx); err != nil {
		return err
	}
	defer func() {
		if err := br.Close(); err != nil {
			log.Warn("Ошибка закрытия браузера", zap.Error(err))
		}
	}()

	user := models.NewUser(cfg.Mail.Login, cfg.Mail.Password)
	deps := suites.Deps{
		Mail:      service.NewMailService(br, log.Logger, service.WithBlankSubjectPlaceholder(messages.BlankSubject)),
		Auth:      service.NewAuthorizationService(br, log.Logger, cfg.Mail.BaseURL, cfg.Mail.Domain),
		User:      user,
		Addressee: user.Email(cfg.Mail.Domain),
		Messages:  messages,
	}
	selected, err := suites.Build(deps, args...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(selected))
	for _, s := range selected {
		names = append(names, s.Name)
	}
	ui.PrintWelcome(cmd.OutOrStdout(), cfg.Mail.BaseURL, names)

	runner := scenario.NewRunner(log.Logger, scenario.Options{
		ScenarioTimeout: cfg.Suite.ScenarioTimeout,
		TeardownTimeout: cfg.Suite.TeardownTimeout,
		Recorder:        recorder,
		OnFailure:       screenshotOnFailure(br, cfg.Browser.ScreenshotsDir),
	})
	report, err := runner.Run(ctx, selected...)
	if err != nil {
		return err
	}

	commands.PrintReport(cmd.OutOrStdout(), report)
	if !report.OK() {
		return errRunFailed
	}
	return nil
}

// startStub поднимает заглушку почты и перенаправляет на нее конфигурацию.
func startStub(ctx context.Context, messages *fixtures.Messages) error {
	if cfg.Mail.Login == "" {
		cfg.Mail.Login, cfg.Mail.Password = stubLogin, stubPassword
	}
	stub := webmailstub.New(webmailstub.Config{
		Domain:   cfg.Mail.Domain,
		Accounts: map[string]string{cfg.Mail.Login: cfg.Mail.Password},
		Messages: *messages,
	}, log.Logger)

	baseURL, err := stub.Listen(ctx, "127.0.0.1:0")
	if err != nil {
		return err
	}
	cfg.Mail.BaseURL = baseURL

	if stubSMTP != "" {
		if _, err := stub.ListenSMTP(ctx, stubSMTP); err != nil {
			return err
		}
	}
	return nil
}

func screenshotOnFailure(br *browser.PlaywrightBrowser, dir string) func(context.Context, scenario.Result) {
	if dir == "" {
		return nil
	}
	name := strings.NewReplacer("/", "_", " ", "_")
	return func(_ context.Context, res scenario.Result) {
		path := filepath.Join(dir, name.Replace(res.FullName())+"-"+time.Now().Format("20060102-150405")+".png")
		if err := br.Screenshot(path); err != nil {
			log.Warn("Не удалось сохранить скриншот", zap.String("scenario", res.FullName()), zap.Error(err))
			return
		}
		log.Info("Скриншот упавшего сценария", zap.String("path", path))
	}
}
