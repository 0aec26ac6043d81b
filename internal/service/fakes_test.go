package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/failtrack/internal/domain"
	"github.com/spec-kit/failtrack/internal/events"
)

var errStoreDown = errors.New("connection refused")

// fakeTicketRepo is an in-memory TicketRepository. Setting err makes every call fail.
type fakeTicketRepo struct {
	mu      sync.Mutex
	nextID  int64
	tickets map[int64]domain.Ticket
	err     error

	inserts int
	updates int
	deletes int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{nextID: 1, tickets: make(map[int64]domain.Ticket)}
}

func (r *fakeTicketRepo) Insert(_ context.Context, t *domain.Ticket) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	id := r.nextID
	r.nextID++
	stored := *t
	stored.ID = id
	r.tickets[id] = stored
	r.inserts++
	return id, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tickets[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.tickets[t.ID] = *t
	r.updates++
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	r.deletes++
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	t, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func (r *fakeTicketRepo) rows() []domain.TicketRow {
	out := make([]domain.TicketRow, 0, len(r.tickets))
	for _, t := range r.tickets {
		out = append(out, domain.TicketRow{
			ID:               t.ID,
			ApplicantName:    t.ApplicantName,
			FaultDescription: t.FaultDescription,
			CreatedAt:        t.CreatedAt,
			UpdatedAt:        t.UpdatedAt,
			ClosedAt:         t.ClosedAt,
		})
	}
	return out
}

func (r *fakeTicketRepo) FindAll(_ context.Context, order domain.ListOrder) ([]domain.TicketRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := r.rows()
	sort.Slice(out, func(i, j int) bool {
		if order == domain.ListOrderAsc {
			return out[i].ID < out[j].ID
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeTicketRepo) FindCreationTimes(_ context.Context) ([]time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []time.Time
	for _, t := range r.tickets {
		if t.CreatedAt != nil {
			out = append(out, *t.CreatedAt)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindByPeriod(_ context.Context, from, to time.Time) ([]domain.TicketRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []domain.TicketRow
	for _, row := range r.rows() {
		if row.CreatedAt != nil && !row.CreatedAt.Before(from) && row.CreatedAt.Before(to) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(*out[j].CreatedAt) })
	return out, nil
}

// seed stores a ticket created at ts, bypassing the engine.
func (r *fakeTicketRepo) seed(ts time.Time, mutate func(*domain.Ticket)) int64 {
	t := domain.Ticket{ApplicantName: "seed", CreatedAt: &ts}
	if mutate != nil {
		mutate(&t)
	}
	id, _ := r.Insert(context.Background(), &t)
	return id
}

// fakeDispatcher records published events and can be told to fail.
type fakeDispatcher struct {
	mu        sync.Mutex
	published []events.Event
	err       error
}

func (d *fakeDispatcher) Publish(_ context.Context, e events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.published = append(d.published, e)
	return nil
}

func (d *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.published)
}

// stepClock returns t0, then advances by step on each call.
func stepClock(t0 time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := t0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(v string) *string { return &v }
