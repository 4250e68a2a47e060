package slots

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kar1timmins/DineLocal/internal/domain"
	catalogRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/catalog"
	slotRepo "github.com/kar1timmins/DineLocal/internal/infra/storage/slot"
	"github.com/kar1timmins/DineLocal/pkg/types"
)

// fakeSlotRepo хранит слоты в памяти; Reserve/Release повторяют условные UPDATE под мьютексом
type fakeSlotRepo struct {
	mu     sync.Mutex
	slots  map[string]*domain.Slot
	nextID int
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[string]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) get(id string) domain.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.slots[id]
}

func (r *fakeSlotRepo) insertLocked(s *domain.Slot) (*domain.Slot, bool) {
	for _, existing := range r.slots {
		if existing.ExperienceID == s.ExperienceID && existing.Date.Equal(s.Date) && existing.StartTime == s.StartTime {
			return nil, false
		}
	}
	r.nextID++
	cp := *s
	cp.ID = fmt.Sprintf("slot-%d", r.nextID)
	r.slots[cp.ID] = &cp
	out := cp
	return &out, true
}

func (r *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created, ok := r.insertLocked(s)
	if !ok {
		return nil, slotRepo.ErrSlotAlreadyExists
	}
	return created, nil
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := make([]*domain.Slot, 0)
	for _, s := range slots {
		if c, ok := r.insertLocked(s); ok {
			created = append(created, c)
		}
	}
	return created, nil
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id string) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Slot, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeSlotRepo) ExistsByKey(_ context.Context, experienceID string, date time.Time, startTime types.TimeString) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.slots {
		if s.ExperienceID == experienceID && s.Date.Equal(date) && s.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Slot, 0)
	for _, s := range r.slots {
		if filter.ExperienceID != nil && s.ExperienceID != *filter.ExperienceID {
			continue
		}
		if filter.Status != nil && s.Status() != *filter.Status {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSlotRepo) Count(ctx context.Context, filter domain.SlotFilter) (int, error) {
	slots, err := r.List(ctx, filter)
	return len(slots), err
}

func (r *fakeSlotRepo) Update(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.slots[s.ID]; !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	for id, existing := range r.slots {
		if id != s.ID && existing.ExperienceID == s.ExperienceID && existing.Date.Equal(s.Date) && existing.StartTime == s.StartTime {
			return nil, slotRepo.ErrSlotAlreadyExists
		}
	}
	cp := *s
	r.slots[s.ID] = &cp
	return s, nil
}

func (r *fakeSlotRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.BookedSlots > 0 {
		return slotRepo.ErrSlotHasBookings
	}
	delete(r.slots, id)
	return nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, id string, guestCount int) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	if s.IsBlocked || s.BookedSlots >= s.MaxSlots || s.MaxSlots-s.BookedSlots < guestCount {
		return nil, slotRepo.ErrCapacityExceeded
	}
	s.BookedSlots += guestCount
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) Release(_ context.Context, id string, guestCount int) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
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

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
