package client

import (
	"sync"

	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
)

// LinkList список ссылок, который видит пользователь. Владелец создаёт его
// явно и передаёт по указателю тем, кто его читает и меняет.
type LinkList struct {
	mu    sync.RWMutex
	links []*model.ShortenedLink
}

// NewLinkList создаёт список с начальным содержимым.
func NewLinkList(initial ...*model.ShortenedLink) *LinkList {
	l := &LinkList{}
	for _, link := range initial {
		l.Add(link)
	}
	return l
}

// Add добавляет ссылку в конец списка.
func (l *LinkList) Add(link *model.ShortenedLink) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.links = append(l.links, link.Clone())
}

// Remove удаляет ссылку по id. Возвращает false, если ссылки не было.
func (l *LinkList) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, link := range l.links {
		if link.ID == id {
			l.links = append(l.links[:i], l.links[i+1:]...)
			return true
		}
	}
	return false
}

// Links возвращает копию текущего содержимого.
func (l *LinkList) Links() []*model.ShortenedLink {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*model.ShortenedLink, len(l.links))
	for i, link := range l.links {
		out[i] = link.Clone()
	}
	return out
}

// Len количество ссылок в списке.
func (l *LinkList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.links)
}
