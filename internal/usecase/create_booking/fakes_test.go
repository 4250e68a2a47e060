package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	slotRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/slot"
	"github.com/kar1timmins/DineLocal/internal/service/slots"
)

// store общее in-memory хранилище бронирований и слотов
type store struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
	slots    map[string]*domain.Slot
	nextID   int

	createErr     error
	beforeReserve func(s *domain.Slot) // Вызывается под блокировкой перед условным обновлением
}

func newStore(slotList ...*domain.Slot) *store {
	st := &store{
		bookings: make(map[string]*domain.Booking),
		slots:    make(map[string]*domain.Slot),
	}
	for _, s := range slotList {
		st.slots[s.ID] = s
	}
	return st
}

func (st *store) booked(slotID string) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.slots[slotID].BookedSlots
}

func (st *store) bookingCount() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.bookings)
}

func (st *store) snapshot() (map[string]domain.Booking, map[string]domain.Slot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	bookings := make(map[string]domain.Booking, len(st.bookings))
	for id, b := range st.bookings {
		bookings[id] = *b
	}
	slotCopies := make(map[string]domain.Slot, len(st.slots))
	for id, s := range st.slots {
		slotCopies[id] = *s
	}
	return bookings, slotCopies
}

func (st *store) restore(bookings map[string]domain.Booking, slotCopies map[string]domain.Slot) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bookings = make(map[string]*domain.Booking, len(bookings))
	for id, b := range bookings {
		cp := b
		st.bookings[id] = &cp
	}
	st.slots = make(map[string]*domain.Slot, len(slotCopies))
	for id, s := range slotCopies {
		cp := s
		st.slots[id] = &cp
	}
}

// Create реализует BookingRepository
func (st *store) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.createErr != nil {
		return nil, st.createErr
	}
	st.nextID++
	cp := *b
	cp.ID = fmt.Sprintf("booking-%d", st.nextID)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	st.bookings[cp.ID] = &cp
	out := cp
	return &out, nil
}

// GetByID реализует SlotRepository
func (st *store) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

// fakeLedger повторяет семантику журнала: Check только читает, Reserve - условное обновление
type fakeLedger struct {
	st *store
}

func (l *fakeLedger) Check(_ context.Context, slotID string, guestCount int) (bool, error) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	s, ok := l.st.slots[slotID]
	if !ok {
		return false, slots.ErrSlotNotFound
	}
	return s.CanAccommodate(guestCount), nil
}

func (l *fakeLedger) Reserve(_ context.Context, slotID string, guestCount int) (*domain.Slot, error) {
	l.st.mu.Lock()
	defer l.st.mu.Unlock()
	s, ok := l.st.slots[slotID]
	if !ok {
		return nil, slots.ErrSlotNotFound
	}
	if l.st.beforeReserve != nil {
		l.st.beforeReserve(s)
	}
	if !s.CanAccommodate(guestCount) {
		return nil, slots.ErrCapacityExceeded
	}
	s.BookedSlots += guestCount
	cp := *s
	return &cp, nil
}

// fakeTxManager сериализует транзакции и откатывает хранилище при ошибке
type fakeTxManager struct {
	mu sync.Mutex
	st *store
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bookings, slotCopies := m.st.snapshot()
	if err := fn(ctx); err != nil {
		m.st.restore(bookings, slotCopies)
		return err
	}
	return nil
}

type fakeCatalog struct {
	users       map[string]bool
	experiences map[string]*domain.Experience
	userErr     error
}

func (c *fakeCatalog) UserExists(_ context.Context, id string) (bool, error) {
	if c.userErr != nil {
		return false, c.userErr
	}
	return c.users[id], nil
}

func (c *fakeCatalog) GetExperience(_ context.Context, id string) (*domain.Experience, error) {
	e, ok := c.experiences[id]
	if !ok {
		return nil, catalogRepo.ErrExperienceNotFound
	}
	cp := *e
	return &cp, nil
}

type fakeStatsCache struct {
	mu          sync.Mutex
	invalidated int
}

func (c *fakeStatsCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.BookingEvent
	keys   []string
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	if event, ok := payload.(domain.BookingEvent); ok {
		p.events = append(p.events, event)
	}
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var errDB = errors.New("connection reset")
