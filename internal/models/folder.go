package models

import "fmt"

type Folder int

const (
	Inbox Folder = iota
	Sent
	Spam
	Trash
	Drafts
)

func (f Folder) String() string {
	switch f {
	case Inbox:
		return "inbox"
	case Sent:
		return "sent"
	case Spam:
		return "spam"
	case Trash:
		return "trash"
	case Drafts:
		return "drafts"
	default:
		return fmt.Sprintf("folder(%d)", int(f))
	}
}

// ParseFolder - обратное к String для путей вида /messages/inbox/.
func ParseFolder(name string) (Folder, bool) {
	for f := Inbox; f <= Drafts; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}
