package webmailstub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mailSuite/internal/models"
)

var ErrLetterNotFound = errors.New("письмо не найдено")

// Действия панели над выделенными письмами.
const (
	actionSpam   = "spam"
	actionNoSpam = "noSpam"
	actionRemove = "remove"
)

type letter struct {
	ID        string
	To        string
	Subject   string
	Body      string
	Folder    models.Folder
	CreatedAt time.Time
}

// store - ящики в памяти, ключ - адрес владельца в нижнем регистре.
type store struct {
	mu    sync.Mutex
	boxes map[string][]*letter
	now   func() time.Time
}

func newStore() *store {
	return &store{boxes: make(map[string][]*letter), now: time.Now}
}

func boxKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *store) put(owner string, l letter) *letter {
	l.ID = uuid.NewString()
	l.CreatedAt = s.now()
	key := boxKey(owner)
	s.boxes[key] = append(s.boxes[key], &l)
	return &l
}

// list возвращает письма папки, новые сверху.
func (s *store) list(owner string, f models.Folder) []letter {
	s.mu.Lock()
	defer s.mu.Unlock()

	box := s.boxes[boxKey(owner)]
	var out []letter
	for i := len(box) - 1; i >= 0; i-- {
		if box[i].Folder == f {
			out = append(out, *box[i])
		}
	}
	return out
}

func (s *store) get(owner, id string) (letter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.boxes[boxKey(owner)] {
		if l.ID == id {
			return *l, nil
		}
	}
	return letter{}, ErrLetterNotFound
}

// send кладет письмо в "Отправленные" отправителя и во "Входящие" адресата.
// Отправленный черновик удаляется.
func (s *store) send(from, to, subject, body, draftID string) *letter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if draftID != "" {
		s.drop(from, draftID)
	}
	sent := s.put(from, letter{To: to, Subject: subject, Body: body, Folder: models.Sent})
	s.put(to, letter{To: to, Subject: subject, Body: body, Folder: models.Inbox})
	return sent
}

// deliver кладет входящее письмо во "Входящие" адресата.
func (s *store) deliver(to, subject, body string) *letter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(to, letter{To: to, Subject: subject, Body: body, Folder: models.Inbox})
}

// saveDraft создает черновик или обновляет существующий.
func (s *store) saveDraft(owner, draftID, to, subject, body string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.boxes[boxKey(owner)] {
		if l.ID == draftID && l.Folder == models.Drafts {
			l.To, l.Subject, l.Body = to, subject, body
			return l.ID
		}
	}
	return s.put(owner, letter{To: to, Subject: subject, Body: body, Folder: models.Drafts}).ID
}

// apply выполняет действие панели над письмами папки from. Неизвестные id пропускаются.
func (s *store) apply(owner string, from models.Folder, action string, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	moved := 0
	for _, id := range ids {
		l := s.find(owner, id)
		if l == nil || l.Folder != from {
			continue
		}
		switch action {
		case actionSpam:
			l.Folder = models.Spam
		case actionNoSpam:
			l.Folder = models.Inbox
		case actionRemove:
			if l.Folder == models.Trash {
				s.drop(owner, id)
			} else {
				l.Folder = models.Trash
			}
		default:
			return moved, errors.New("неизвестное действие " + action)
		}
		moved++
	}
	return moved, nil
}

func (s *store) find(owner, id string) *letter {
	for _, l := range s.boxes[boxKey(owner)] {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (s *store) drop(owner, id string) {
	key := boxKey(owner)
	box := s.boxes[key]
	for i, l := range box {
		if l.ID == id {
			s.boxes[key] = append(box[:i], box[i+1:]...)
			return
		}
	}
}
