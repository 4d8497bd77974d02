package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/cinema-ticket-desk/internal/model"
	q "github.com/iliyamo/cinema-ticket-desk/internal/queue"
	"github.com/iliyamo/cinema-ticket-desk/internal/repository"
)

type mockCinemaStore struct {
	ListCitiesFunc      func(context.Context) ([]string, error)
	ListNamesByCityFunc func(context.Context, string) ([]string, error)
}

func (m *mockCinemaStore) ListCities(ctx context.Context) ([]string, error) {
	return m.ListCitiesFunc(ctx)
}

func (m *mockCinemaStore) ListNamesByCity(ctx context.Context, city string) ([]string, error) {
	return m.ListNamesByCityFunc(ctx, city)
}

type mockScreeningStore struct {
	ListByCinemaNameFunc func(context.Context, string) ([]model.ScreeningDetail, error)
}

func (m *mockScreeningStore) ListByCinemaName(ctx context.Context, name string) ([]model.ScreeningDetail, error) {
	return m.ListByCinemaNameFunc(ctx, name)
}

// memTickets is an in-memory TicketStore that follows the repository's
// contract: one ticket per screening, ErrNotFound for unknown ids.
type memTickets struct {
	mu         sync.Mutex
	nextID     uint64
	tickets    map[uint64]model.Ticket
	screenings map[uint64]model.ScreeningDetail
	detailErr  error
}

func newMemTickets(screenings ...model.ScreeningDetail) *memTickets {
	m := &memTickets{tickets: map[uint64]model.Ticket{}, screenings: map[uint64]model.ScreeningDetail{}}
	for _, s := range screenings {
		m.screenings[s.ID] = s
	}
	return m
}

func (m *memTickets) List(ctx context.Context) ([]model.TicketDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.TicketDetail{}
	for _, t := range m.tickets {
		out = append(out, model.TicketDetail{Ticket: t, Screening: m.screenings[t.ScreeningID]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TimePurchased.Before(out[j].TimePurchased) })
	return out, nil
}

func (m *memTickets) GetDetail(ctx context.Context, id uint64) (*model.TicketDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detailErr != nil {
		return nil, m.detailErr
	}
	t, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.TicketDetail{Ticket: t, Screening: m.screenings[t.ScreeningID]}, nil
}

func (m *memTickets) ExistsForScreening(ctx context.Context, screeningID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tickets {
		if t.ScreeningID == screeningID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTickets) CreateIfAbsent(ctx context.Context, screeningID uint64, at time.Time) (*model.Ticket, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.screenings[screeningID]; !ok {
		return nil, false, repository.ErrNotFound
	}
	for _, t := range m.tickets {
		if t.ScreeningID == screeningID {
			t := t
			return &t, false, nil
		}
	}
	m.nextID++
	t := model.Ticket{ID: m.nextID, TimePurchased: at, ScreeningID: screeningID}
	m.tickets[t.ID] = t
	return &t, true, nil
}

func (m *memTickets) DeleteByID(ctx context.Context, id uint64) (*model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.tickets, id)
	return &t, nil
}

type published struct {
	queue string
	event q.TicketEvent
}

type mockPublisher struct {
	err  error
	sent []published
}

func (m *mockPublisher) Publish(ctx context.Context, queue string, ev q.TicketEvent) error {
	m.sent = append(m.sent, published{queue: queue, event: ev})
	return m.err
}

type memCache struct {
	data map[string][]byte
	sets int
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(ctx context.Context, key string, val []byte) {
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = val
	c.sets++
}
