package bookings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	bookingRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/booking"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	stats    *domain.BookingStats
	statsErr error
	statsN   int
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) get(id string) domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.bookings[id]
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeBookingRepo) List(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return b, nil
}

func (r *fakeBookingRepo) GetStats(_ context.Context, _ *string) (*domain.BookingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statsN++
	return r.stats, r.statsErr
}

// fakeLedger журнал вместимости в памяти с условным резервированием
type fakeLedger struct {
	mu    sync.Mutex
	slots map[string]*domain.Slot
}

func newFakeLedger(slotList ...*domain.Slot) *fakeLedger {
	l := &fakeLedger{slots: make(map[string]*domain.Slot)}
	for _, s := range slotList {
		l.slots[s.ID] = s
	}
	return l
}

func (l *fakeLedger) booked(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slots[id].BookedSlots
}

func (l *fakeLedger) Reserve(_ context.Context, id string, guestCount int) (*domain.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[id]
	if !ok {
		return nil, slots.ErrSlotNotFound
	}
	if s.IsBlocked || s.MaxSlots-s.BookedSlots < guestCount {
		return nil, slots.ErrCapacityExceeded
	}
	s.BookedSlots += guestCount
	cp := *s
	return &cp, nil
}

func (l *fakeLedger) Release(_ context.Context, id string, guestCount int) (*domain.Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[id]
	if !ok {
		return nil, slots.ErrSlotNotFound
	}
	s.BookedSlots -= guestCount
	if s.BookedSlots < 0 {
		s.BookedSlots = 0
	}
	cp := *s
	return &cp, nil
}

type fakeCatalog struct {
	experiences map[string]*domain.Experience
}

func (c *fakeCatalog) GetExperience(_ context.Context, id string) (*domain.Experience, error) {
	e, ok := c.experiences[id]
	if !ok {
		return nil, catalogRepo.ErrExperienceNotFound
	}
	return e, nil
}

type fakeStatsCache struct {
	mu          sync.Mutex
	entries     map[string]*domain.BookingStats
	getErr      error
	invalidated int
	generation  int64

	// afterGeneration вызывается после чтения поколения, без блокировки
	afterGeneration func()
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: make(map[string]*domain.BookingStats)}
}

func (c *fakeStatsCache) Get(_ context.Context, hostID *string) (*domain.BookingStats, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	s, ok := c.entries[hostLabel(hostID)]
	return s, ok, nil
}

func (c *fakeStatsCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	gen := c.generation
	hook := c.afterGeneration
	c.mu.Unlock()
	if hook != nil {
		hook()
	}
	return gen, nil
}

func (c *fakeStatsCache) Set(_ context.Context, hostID *string, generation int64, stats *domain.BookingStats) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false, nil
	}
	c.entries[hostLabel(hostID)] = stats
	return true, nil
}

func (c *fakeStatsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries = make(map[string]*domain.BookingStats)
	c.invalidated++
	return nil
}

type fakePublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	return nil
}

func (p *fakePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// fakeTxManager сериализует транзакции, как это делает блокировка строки бронирования
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var errBroker = errors.New("broker unavailable")
