package webmailstub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// ListenSMTP поднимает прием писем по SMTP на addr и возвращает фактический адрес.
// Письма попадают во "Входящие" зарегистрированных ящиков.
func (s *Server) ListenSMTP(ctx context.Context, addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("запуск SMTP заглушки: %w", err)
	}

	srv := smtp.NewServer(&smtpBackend{srv: s})
	srv.Domain = s.cfg.Domain
	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.MaxMessageBytes = 1 << 20
	srv.MaxRecipients = 10
	srv.AllowInsecureAuth = true

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, smtp.ErrServerClosed) {
			s.log.Error("SMTP заглушки остановился", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	s.log.Info("SMTP заглушки запущен", zap.String("addr", ln.Addr().String()))
	return ln.Addr().String(), nil
}

type smtpBackend struct {
	srv *Server
}

func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	b.srv.log.Debug("Новое SMTP соединение", zap.String("host", c.Hostname()))
	return &smtpSession{srv: b.srv}, nil
}

// smtpSession принимает одно письмо.
type smtpSession struct {
	srv  *Server
	from string
	to   []string
}

func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	addr := boxKey(extractAddress(to))
	if _, ok := s.srv.accounts[addr]; !ok {
		return &smtp.SMTPError{
			Code:         550,
			EnhancedCode: smtp.EnhancedCode{5, 1, 1},
			Message:      "почтовый ящик не найден",
		}
	}
	s.to = append(s.to, addr)
	return nil
}

func (s *smtpSession) Data(r io.Reader) error {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return fmt.Errorf("разбор письма: %w", err)
	}
	defer mr.Close()

	subject, err := mr.Header.Subject()
	if err != nil {
		return fmt.Errorf("разбор темы письма: %w", err)
	}
	text, err := plainText(mr)
	if err != nil {
		return fmt.Errorf("разбор тела письма: %w", err)
	}

	for _, to := range s.to {
		s.srv.store.deliver(to, subject, text)
		s.srv.log.Info("Письмо принято по SMTP",
			zap.String("from", s.from),
			zap.String("to", to),
			zap.String("subject", subject))
	}
	return nil
}

// plainText возвращает первую текстовую часть письма.
func plainText(mr *mail.Reader) (string, error) {
	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		if ct, _, _ := h.ContentType(); ct != "" && ct != "text/plain" {
			continue
		}
		body, err := io.ReadAll(p.Body)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n"), nil
	}
}

func (s *smtpSession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *smtpSession) Logout() error {
	return nil
}

// extractAddress вынимает адрес из "Имя <user@host>".
func extractAddress(v string) string {
	if a, err := mail.ParseAddress(v); err == nil {
		return a.Address
	}
	return strings.Trim(strings.TrimSpace(v), "<>")
}
