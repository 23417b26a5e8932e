package application

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/adiwinata/eventdesk/internal/domain/entity"
	"github.com/adiwinata/eventdesk/internal/domain/repository"
)

// memStore is an in-memory stand-in for the Postgres repositories. Join
// serializes on the mutex the way the real implementation serializes on the
// event row lock, and routes every attempt through repository.CheckJoin.
type memStore struct {
	mu           sync.Mutex
	seq          int
	events       map[string]*entity.Event
	participants []entity.Participant
}

func newMemStore() *memStore {
	return &memStore{events: map[string]*entity.Event{}}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return prefix + "-" + strconv.Itoa(m.seq)
}

func (m *memStore) addEvent(e entity.Event) *entity.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = m.nextID("evt")
	}
	cp := e
	m.events[e.ID] = &cp
	return &cp
}

func (m *memStore) countLocked(eventID string) int {
	n := 0
	for _, p := range m.participants {
		if p.EventID == eventID {
			n++
		}
	}
	return n
}

func (m *memStore) Create(ctx context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e.ID == "" {
		e.ID = m.nextID("evt")
	}
	e.CreatedAt = time.Now().UTC()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memStore) List(ctx context.Context) ([]entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Event, 0, len(m.events))
	for _, e := range m.events {
		cp := *e
		cp.ParticipantCount = m.countLocked(e.ID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	cp.ParticipantCount = m.countLocked(id)
	return &cp, nil
}

func (m *memStore) Update(ctx context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[e.ID]; !ok {
		return repository.ErrNotFound
	}
	e.UpdatedAt = time.Now().UTC()
	cp := *e
	m.events[e.ID] = &cp
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return repository.ErrNotFound
	}
	kept := m.participants[:0]
	for _, p := range m.participants {
		if p.EventID != id {
			kept = append(kept, p)
		}
	}
	m.participants = kept
	delete(m.events, id)
	return nil
}

func (m *memStore) Join(ctx context.Context, eventID string, p *entity.Participant) (*entity.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, found := m.events[eventID]
	capacity := 0
	alreadyJoined := false
	count := 0
	if found {
		capacity = e.Capacity
		count = m.countLocked(eventID)
		for _, existing := range m.participants {
			if existing.EventID == eventID && existing.Email == p.Email {
				alreadyJoined = true
				break
			}
		}
	}
	if err := repository.CheckJoin(found, capacity, count, alreadyJoined); err != nil {
		return nil, err
	}

	created := entity.Participant{
		ID:        m.nextID("part"),
		EventID:   eventID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		CreatedAt: time.Now().UTC(),
	}
	m.participants = append(m.participants, created)
	cp := created
	return &cp, nil
}

func (m *memStore) ListParticipants(ctx context.Context, eventID string) ([]entity.Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Participant, 0)
	for _, p := range m.participants {
		if eventID != "" && p.EventID != eventID {
			continue
		}
		cp := p
		if e, ok := m.events[p.EventID]; ok {
			cp.Event = &entity.EventSummary{ID: e.ID, Name: e.Name, Date: e.Date, Location: e.Location}
		}
		out = append(out, cp)
	}
	// newest first
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) CountByEvent(ctx context.Context, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countLocked(eventID), nil
}

// participantStore adapts memStore to the ParticipantRepository interface
// (List has a different name on the store to avoid clashing with the event
// List).
type participantStore struct{ *memStore }

func (s participantStore) List(ctx context.Context, eventID string) ([]entity.Participant, error) {
	return s.ListParticipants(ctx, eventID)
}

var (
	_ repository.EventRepository       = (*memStore)(nil)
	_ repository.ParticipantRepository = participantStore{}
)

// capturePublisher records queued jobs instead of talking to RabbitMQ.
type capturePublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (c *capturePublisher) PublishJSON(ctx context.Context, body any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, body)
	return nil
}

func (c *capturePublisher) Jobs() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]any, len(c.jobs))
	copy(out, c.jobs)
	return out
}

var _ Publisher = (*capturePublisher)(nil)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	f.seq++
	if u.ID == "" {
		u.ID = "user-" + strconv.Itoa(f.seq)
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id, role2 string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role2 = role2
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)
