package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Totarae/brevly/internal/model"
	"github.com/Totarae/brevly/pkg/client"
	"github.com/google/uuid"
)

// session состояние клиента: API, пейджер и список, который видит пользователь.
// Создание и удаление меняют список и сбрасывают пейджер.
type session struct {
	api   *client.Client
	pager *client.Pager
	links *client.LinkList
}

func newSession(api *client.Client, pageSize int) *session {
	return &session{
		api:   api,
		pager: client.NewPager(api, pageSize),
		links: client.NewLinkList(),
	}
}

// loadPage загружает следующую страницу в список.
func (s *session) loadPage(ctx context.Context) (int, error) {
	items, err := s.pager.Next(ctx)
	if err != nil {
		return 0, err
	}
	for _, link := range items {
		s.links.Add(link)
	}
	return len(items), nil
}

func (s *session) create(ctx context.Context, req model.CreateLinkRequest) (*model.ShortenedLink, error) {
	link, err := s.api.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.links.Add(link)
	s.pager.Reset()
	return link, nil
}

func (s *session) delete(ctx context.Context, shortURL string) (uuid.UUID, error) {
	id, err := s.api.Delete(ctx, shortURL)
	if err != nil {
		return uuid.Nil, err
	}
	s.links.Remove(id)
	s.pager.Reset()
	return id, nil
}

func printLinks(w io.Writer, links []*model.ShortenedLink, total int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHORT URL\tORIGINAL URL\tACCESSES\tCREATED")
	for _, link := range links {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n",
			link.ShortURL, link.OriginalURL, link.AccessCount, link.CreatedAt.Local().Format(time.DateTime))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d links\n", len(links), total)
	return err
}
