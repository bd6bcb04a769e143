package webmailstub

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailSuite/internal/models"
)

type folderLink struct {
	Name  string
	Path  string
	Title string
}

var folderLinks = []folderLink{
	{Name: models.Inbox.String(), Path: "/messages/inbox/", Title: "Входящие"},
	{Name: models.Sent.String(), Path: "/messages/sent/", Title: "Отправленные"},
	{Name: models.Drafts.String(), Path: "/messages/drafts/", Title: "Черновики"},
	{Name: models.Spam.String(), Path: "/messages/spam/", Title: "Спам"},
	{Name: models.Trash.String(), Path: "/messages/trash/", Title: "Корзина"},
}

// letterView - письмо в том виде, в каком его показывает интерфейс.
type letterView struct {
	ID      string
	To      string
	Subject string
	Body    string
}

func (s *Server) view(l letter) letterView {
	subject := l.Subject
	if strings.TrimSpace(subject) == "" {
		subject = s.cfg.Messages.BlankSubject
	}
	return letterView{ID: l.ID, To: l.To, Subject: subject, Body: l.Body}
}

// page - общие данные шапки и меню папок.
func (s *Server) page(c *gin.Context, title, active string) gin.H {
	return gin.H{
		"Title":    title,
		"Email":    c.GetString("email"),
		"Folders":  folderLinks,
		"Active":   active,
		"Messages": s.cfg.Messages,
	}
}

func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (s *Server) login(c *gin.Context) {
	login := strings.TrimSpace(c.PostForm("Login"))
	password := c.PostForm("Password")

	if msg := s.checkCredentials(login, password); msg != "" {
		s.log.Debug("Вход отклонен", zap.String("login", login), zap.String("reason", msg))
		c.HTML(http.StatusOK, "login.html", gin.H{"Login": login, "Error": msg})
		return
	}

	email := boxKey(models.NewUser(login, password).Email(s.cfg.Domain))
	s.openSession(c, email)
	c.Redirect(http.StatusSeeOther, "/messages/inbox/")
}

// checkCredentials возвращает текст ошибки формы входа или пустую строку.
func (s *Server) checkCredentials(login, password string) string {
	switch {
	case login == "" && password == "":
		return s.cfg.Messages.BlankInputs
	case login == "":
		return s.cfg.Messages.BlankLogin
	case password == "":
		return s.cfg.Messages.BlankPassword
	}
	want, ok := s.accounts[boxKey(models.NewUser(login, password).Email(s.cfg.Domain))]
	if !ok || want != password {
		return s.cfg.Messages.InvalidCredentials
	}
	return ""
}

func (s *Server) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) folderPage(c *gin.Context) {
	f, ok := models.ParseFolder(c.Param("folder"))
	if !ok {
		c.String(http.StatusNotFound, "папка не найдена")
		return
	}

	letters := s.store.list(c.GetString("email"), f)
	views := make([]letterView, 0, len(letters))
	for _, l := range letters {
		views = append(views, s.view(l))
	}

	data := s.page(c, "Почта", f.String())
	data["Letters"] = views
	c.HTML(http.StatusOK, "list.html", data)
}

func (s *Server) folderAction(c *gin.Context) {
	f, ok := models.ParseFolder(c.Param("folder"))
	if !ok {
		c.String(http.StatusNotFound, "папка не найдена")
		return
	}

	ids := strings.Split(c.PostForm("ids"), ",")
	moved, err := s.store.apply(c.GetString("email"), f, c.PostForm("action"), ids)
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.log.Debug("Действие над письмами",
		zap.String("folder", f.String()),
		zap.String("action", c.PostForm("action")),
		zap.Int("moved", moved))
	c.Redirect(http.StatusSeeOther, "/messages/"+f.String()+"/")
}

func (s *Server) letterPage(c *gin.Context) {
	l, err := s.store.get(c.GetString("email"), c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	data := s.page(c, "Письмо", "")
	data["Letter"] = s.view(l)
	c.HTML(http.StatusOK, "letter.html", data)
}

func (s *Server) composePage(c *gin.Context) {
	data := s.page(c, "Новое письмо", "")
	data["Draft"] = letterView{}
	c.HTML(http.StatusOK, "compose.html", data)
}

// editorPage - содержимое iframe редактора текста письма.
func (s *Server) editorPage(c *gin.Context) {
	body := ""
	if id := c.Query("draft"); id != "" {
		if l, err := s.store.get(c.GetString("email"), id); err == nil {
			body = l.Body
		}
	}
	c.HTML(http.StatusOK, "editor.html", gin.H{"Body": body})
}

func (s *Server) send(c *gin.Context) {
	to := strings.TrimSpace(c.PostForm("To"))
	if !strings.Contains(to, "@") {
		c.String(http.StatusBadRequest, s.cfg.Messages.InvalidAddresseeAlert)
		return
	}

	from := c.GetString("email")
	sent := s.store.send(from, to, c.PostForm("Subject"), c.PostForm("Body"), c.PostForm("draft_id"))
	s.log.Info("Письмо отправлено", zap.String("from", from), zap.String("to", to))
	c.Redirect(http.StatusSeeOther, "/sendmsgok?id="+sent.ID)
}

func (s *Server) saveDraft(c *gin.Context) {
	email := c.GetString("email")
	id := s.store.saveDraft(email, c.PostForm("draft_id"), c.PostForm("To"), c.PostForm("Subject"), c.PostForm("Body"))

	data := s.page(c, "Новое письмо", "")
	data["Draft"] = letterView{ID: id, To: c.PostForm("To"), Subject: c.PostForm("Subject")}
	data["Saved"] = time.Now().Format("15:04")
	c.HTML(http.StatusOK, "compose.html", data)
}

func (s *Server) sentPage(c *gin.Context) {
	l, err := s.store.get(c.GetString("email"), c.Query("id"))
	if err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	data := s.page(c, "Письмо отправлено", "")
	data["To"] = l.To
	c.HTML(http.StatusOK, "sent.html", data)
}
