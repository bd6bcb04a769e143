// Package webmailstub - учебная почта, повторяющая разметку боевого веб-интерфейса.
// Нужна для прогона сьютов без доступа к настоящему ящику.
package webmailstub

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mailSuite/internal/fixtures"
	"mailSuite/internal/models"
)

//go:embed templates/*.html
var templates embed.FS

const sessionCookie = "mpop"

type Config struct {
	Domain   string
	Accounts map[string]string // логин или полный адрес -> пароль
	Messages fixtures.Messages
}

type Server struct {
	cfg      Config
	log      *zap.Logger
	store    *store
	accounts map[string]string // полный адрес -> пароль

	mu       sync.Mutex
	sessions map[string]string // токен -> адрес
}

func New(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	accounts := make(map[string]string, len(cfg.Accounts))
	for login, password := range cfg.Accounts {
		accounts[boxKey(models.NewUser(login, password).Email(cfg.Domain))] = password
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		store:    newStore(),
		accounts: accounts,
		sessions: make(map[string]string),
	}
}

// Handler собирает роутер gin со всеми страницами почты.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.html")))

	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("HTTP",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.loginPage)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)

	box := r.Group("/", s.requireSession)
	box.GET("/messages/:folder/", s.folderPage)
	box.POST("/messages/:folder/action", s.folderAction)
	box.GET("/message/:id/", s.letterPage)
	box.GET("/compose/", s.composePage)
	box.GET("/compose/editor", s.editorPage)
	box.POST("/compose/send", s.send)
	box.POST("/compose/draft", s.saveDraft)
	box.GET("/sendmsgok", s.sentPage)

	return r
}

// Listen поднимает сервер на addr и возвращает его базовый URL.
// Сервер останавливается при отмене ctx.
func (s *Server) Listen(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("запуск заглушки почты: %w", err)
	}

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Заглушка почты остановилась", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	baseURL := "http://" + ln.Addr().String() + "/"
	s.log.Info("Заглушка почты запущена", zap.String("url", baseURL))
	return baseURL, nil
}

func (s *Server) openSession(c *gin.Context, email string) {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = email
	s.mu.Unlock()
	c.SetCookie(sessionCookie, token, 0, "/", "", false, true)
}

func (s *Server) sessionEmail(c *gin.Context) (string, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.sessions[token]
	return email, ok
}

func (s *Server) requireSession(c *gin.Context) {
	email, ok := s.sessionEmail(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		c.Abort()
		return
	}
	c.Set("email", email)
	c.Next()
}
