package client

import (
	"context"
	"strconv"
	"sync"

	"github.com/Totarae/brevly/internal/model"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Lister источник страниц ссылок.
type Lister interface {
	List(ctx context.Context, cursor *uuid.UUID, pageSize int) (*model.LinksPage, error)
}

// Pager бесконечная прокрутка списка ссылок. Одновременные вызовы Next
// объединяются в один запрос, так что страницы не запрашиваются дважды.
type Pager struct {
	lister   Lister
	pageSize int

	mu         sync.Mutex
	pages      []*model.LinksPage
	generation uint64

	group singleflight.Group
}

// NewPager создаёт пейджер. pageSize 0 означает размер по умолчанию на сервере.
func NewPager(lister Lister, pageSize int) *Pager {
	return &Pager{lister: lister, pageSize: pageSize}
}

// HasNext сообщает, есть ли ещё страницы.
func (p *Pager) HasNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hasNextLocked()
}

func (p *Pager) hasNextLocked() bool {
	return len(p.pages) == 0 || p.pages[len(p.pages)-1].NextCursor != nil
}

// cursorLocked курсор следующей страницы, nil для первой.
func (p *Pager) cursorLocked() *uuid.UUID {
	if len(p.pages) == 0 {
		return nil
	}
	return p.pages[len(p.pages)-1].NextCursor
}

// Next загружает следующую страницу и возвращает её элементы.
// Когда страниц больше нет, возвращает пустой срез.
func (p *Pager) Next(ctx context.Context) ([]*model.ShortenedLink, error) {
	p.mu.Lock()
	if !p.hasNextLocked() {
		p.mu.Unlock()
		return []*model.ShortenedLink{}, nil
	}
	generation := p.generation
	position := len(p.pages)
	p.mu.Unlock()

	// Запрос общий для всех ожидающих, поэтому отмена ctx одного вызова его
	// не прерывает: вызов просто перестаёт ждать. Срок запроса ограничивает
	// таймаут http.Client.
	key := strconv.FormatUint(generation, 10) + ":" + strconv.Itoa(position)
	ch := p.group.DoChan(key, func() (any, error) {
		return p.fetch(context.WithoutCancel(ctx), generation, position)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.LinksPage).Items, nil
	}
}

func (p *Pager) fetch(ctx context.Context, generation uint64, position int) (*model.LinksPage, error) {
	p.mu.Lock()
	if p.generation == generation && len(p.pages) > position {
		// страницу уже загрузил предыдущий вызов
		page := p.pages[position]
		p.mu.Unlock()
		return page, nil
	}
	cursor := p.cursorLocked()
	p.mu.Unlock()

	page, err := p.lister.List(ctx, cursor, p.pageSize)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation == generation && len(p.pages) == position {
		p.pages = append(p.pages, page)
	}
	return page, nil
}

// Items все загруженные ссылки по порядку.
func (p *Pager) Items() []*model.ShortenedLink {
	p.mu.Lock()
	defer p.mu.Unlock()

	var items []*model.ShortenedLink
	for _, page := range p.pages {
		items = append(items, page.Items...)
	}
	return items
}

// Total общее количество ссылок по последней загруженной странице.
func (p *Pager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pages) == 0 {
		return 0
	}
	return p.pages[len(p.pages)-1].Total
}

// Reset сбрасывает загруженные страницы. Ответы запросов, начатых до сброса,
// отбрасываются.
func (p *Pager) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pages = nil
	p.generation++
}
