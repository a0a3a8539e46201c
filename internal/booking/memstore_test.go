package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// memStore is an in-memory implementation of every store interface the
// engine needs, with hooks for injecting storage errors.
type memStore struct {
	mu           sync.Mutex
	settings     map[uint64]*model.VenueSettings
	reservations map[uint64]*model.Reservation
	tables       map[uint64]*model.Table
	games        map[uint64]*model.Game
	sessions     map[uint64]*model.Session
	nextID       uint64

	// insertErrs is popped one per Insert call; nil entries mean the
	// insert succeeds.
	insertErrs []error
	// afterInsert runs after a successful insert, before the engine's
	// post-insert verification; used to plant racing competitors.
	afterInsert func()
	updateErr   error
	deleted     []uint64
}

func newMemStore() *memStore {
	return &memStore{
		settings:     map[uint64]*model.VenueSettings{},
		reservations: map[uint64]*model.Reservation{},
		tables:       map[uint64]*model.Table{},
		games:        map[uint64]*model.Game{},
		sessions:     map[uint64]*model.Session{},
	}
}

func (m *memStore) id() uint64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) GetOrCreate(_ context.Context, venueID uint64) (*model.VenueSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.settings[venueID]; ok {
		cp := *s
		return &cp, nil
	}
	s := model.DefaultVenueSettings(venueID)
	m.settings[venueID] = &s
	cp := s
	return &cp, nil
}

func (m *memStore) Insert(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.insertErrs) > 0 {
		err := m.insertErrs[0]
		m.insertErrs = m.insertErrs[1:]
		if err != nil {
			return err
		}
	}
	r.ID = m.id()
	cp := *r
	m.reservations[r.ID] = &cp
	if m.afterInsert != nil {
		m.afterInsert()
	}
	return nil
}

func (m *memStore) Update(_ context.Context, r *model.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	cp := *r
	m.reservations[r.ID] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.reservations, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *memStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) GetByCode(_ context.Context, venueID uint64, code string) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.VenueID == venueID && r.Code == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetBySessionID(_ context.Context, sessionID uint64) (*model.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.SessionID != nil && *r.SessionID == sessionID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reservations {
		if r.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) listActive(match func(*model.Reservation) bool) []model.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Reservation
	for _, r := range m.reservations {
		if !r.Status.IsTerminal() && match(r) {
			out = append(out, *r)
		}
	}
	return out
}

func (m *memStore) ListActiveByTableDate(_ context.Context, tableID uint64, date string) ([]model.Reservation, error) {
	return m.listActive(func(r *model.Reservation) bool {
		return r.TableID == tableID && r.Date == date
	}), nil
}

func (m *memStore) ListActiveByGameDate(_ context.Context, gameID uint64, date string) ([]model.Reservation, error) {
	return m.listActive(func(r *model.Reservation) bool {
		return r.GameID != nil && *r.GameID == gameID && r.Date == date
	}), nil
}

func (m *memStore) ListActiveByVenueDate(_ context.Context, venueID uint64, date string) ([]model.Reservation, error) {
	return m.listActive(func(r *model.Reservation) bool {
		return r.VenueID == venueID && r.Date == date
	}), nil
}

func (m *memStore) addTable(venueID uint64, name string, capacity int, active bool) *model.Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &model.Table{ID: m.id(), VenueID: venueID, Name: name, Capacity: capacity, IsActive: active}
	m.tables[t.ID] = t
	return t
}

func (m *memStore) tableByID(id uint64) *model.Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[id]
	if !ok {
		return nil
	}
	cp := *t
	return &cp
}

func (m *memStore) ListActiveByVenue(_ context.Context, venueID uint64) ([]model.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Table
	for _, t := range m.tables {
		if t.VenueID == venueID && t.IsActive {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memStore) addGame(venueID uint64, title string, copies int) *model.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &model.Game{ID: m.id(), VenueID: venueID, Title: title, Copies: copies}
	m.games[g.ID] = g
	return g
}

// tablesView and gamesView adapt memStore to the narrower TableStore
// and GameStore contracts, whose GetByID signatures collide.
type tablesView struct{ *memStore }

func (v tablesView) GetByID(_ context.Context, id uint64) (*model.Table, error) {
	return v.tableByID(id), nil
}

type gamesView struct{ *memStore }

func (v gamesView) GetByID(_ context.Context, id uint64) (*model.Game, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	g, ok := v.games[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

type sessionsView struct{ *memStore }

func (v sessionsView) Insert(_ context.Context, s *model.Session) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	s.ID = v.memStore.id()
	cp := *s
	v.sessions[s.ID] = &cp
	return nil
}

func (v sessionsView) GetByID(_ context.Context, id uint64) (*model.Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (v sessionsView) GetOpenByTable(_ context.Context, tableID uint64) (*model.Session, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, s := range v.sessions {
		if s.TableID == tableID && s.EndedAt == nil {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (v sessionsView) End(_ context.Context, id uint64, at time.Time) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if s, ok := v.sessions[id]; ok && s.EndedAt == nil {
		t := at
		s.EndedAt = &t
	}
	return nil
}

// memAttempts is an in-memory AttemptStore with an injectable error.
type memAttempts struct {
	mu     sync.Mutex
	counts map[string]int
	err    error
}

func newMemAttempts() *memAttempts { return &memAttempts{counts: map[string]int{}} }

func (a *memAttempts) Incr(_ context.Context, key string, _ time.Duration) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return 0, a.err
	}
	a.counts[key]++
	return a.counts[key], nil
}

// memNotifier records published events.
type memNotifier struct {
	mu     sync.Mutex
	events []ReservationEvent
	err    error
}

func (n *memNotifier) Publish(_ context.Context, event ReservationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

// memInvalidator records invalidated view keys.
type memInvalidator struct {
	mu   sync.Mutex
	keys []string
}

func (i *memInvalidator) Invalidate(_ context.Context, keys ...string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.keys = append(i.keys, keys...)
}

// testNow is the frozen clock every engine test runs under.
var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTestEngine wires an engine over a fresh memStore with a frozen
// clock and no retry sleeping.
func newTestEngine(t *testing.T) (*Engine, *memStore) {
	t.Helper()
	ms := newMemStore()
	e := New(DefaultConfig(), ms, ms, tablesView{ms}, gamesView{ms}, sessionsView{ms})
	e.now = func() time.Time { return testNow }
	e.cfg.InsertRetry.sleep = func(time.Duration) {}
	return e, ms
}

// createReq returns a valid creation request for the given table on
// tomorrow relative to the frozen clock.
func createReq(venueID, tableID uint64) CreateRequest {
	return CreateRequest{
		VenueID:    venueID,
		TableID:    tableID,
		Date:       "2026-03-11",
		StartTime:  "18:00",
		EndTime:    "20:00",
		PartySize:  4,
		GuestName:  "Robin Vale",
		GuestEmail: "robin@example.com",
	}
}
