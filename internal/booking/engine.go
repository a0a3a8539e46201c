package booking

import (
	"context"
	"time"

	"github.com/ericfaux/gamehost-sub002/internal/model"
)

// SettingsStore resolves the per-venue booking policy, materializing a
// default row on first access.
type SettingsStore interface {
	GetOrCreate(ctx context.Context, venueID uint64) (*model.VenueSettings, error)
}

// ReservationStore is the persistence contract the engine needs for
// reservations.  Lookups return (nil, nil) when no row matches.  Insert
// must return repository.ErrDuplicate when a uniqueness constraint
// rejects the row; the creation protocol treats that as the storage
// layer's conflict signal and retries.
type ReservationStore interface {
	Insert(ctx context.Context, r *model.Reservation) error
	Update(ctx context.Context, r *model.Reservation) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	GetByCode(ctx context.Context, venueID uint64, code string) (*model.Reservation, error)
	GetBySessionID(ctx context.Context, sessionID uint64) (*model.Reservation, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListActiveByTableDate(ctx context.Context, tableID uint64, date string) ([]model.Reservation, error)
	ListActiveByGameDate(ctx context.Context, gameID uint64, date string) ([]model.Reservation, error)
	ListActiveByVenueDate(ctx context.Context, venueID uint64, date string) ([]model.Reservation, error)
}

// TableStore reads tables.  GetByID returns (nil, nil) when absent.
type TableStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Table, error)
	ListActiveByVenue(ctx context.Context, venueID uint64) ([]model.Table, error)
}

// GameStore reads game titles.  GetByID returns (nil, nil) when absent.
type GameStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Game, error)
}

// SessionStore persists live table occupancies.
type SessionStore interface {
	Insert(ctx context.Context, s *model.Session) error
	GetByID(ctx context.Context, id uint64) (*model.Session, error)
	GetOpenByTable(ctx context.Context, tableID uint64) (*model.Session, error)
	End(ctx context.Context, id uint64, at time.Time) error
}

// AttemptStore is a keyed counter with expiry backing the self-service
// lookup gate.  Incr bumps the counter for key, starting a fresh window
// of the given length when the key is new, and returns the count within
// the current window.  Implementations must be safe for concurrent use.
type AttemptStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

// Invalidator signals named read views as stale after a mutation.
// Failures are the implementation's problem; the engine fires and forgets.
type Invalidator interface {
	Invalidate(ctx context.Context, keys ...string)
}

// Notifier publishes reservation lifecycle events for downstream
// notification dispatch.  Errors are logged by the engine, never
// surfaced to the caller.
type Notifier interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

// Config carries the engine's tunables.  InsertRetry bounds the
// optimistic creation protocol; DirectSeat controls whether a party may
// be seated straight from confirmed without an arrival step.
type Config struct {
	DirectSeat     bool
	InsertRetry    Retry
	CodeAttempts   int
	LookupAttempts int
	LookupWindow   time.Duration
}

// DefaultConfig returns the production configuration: direct seating
// enabled, three insert attempts with 50ms increasing backoff, five
// code regenerations, ten lookup attempts per 15 minutes.
func DefaultConfig() Config {
	return Config{
		DirectSeat:     true,
		InsertRetry:    Retry{Attempts: 3, Backoff: 50 * time.Millisecond},
		CodeAttempts:   5,
		LookupAttempts: 10,
		LookupWindow:   15 * time.Minute,
	}
}

// Engine owns every reservation mutation.  The optional collaborators
// (Attempts, Views, Events) may be left nil; the engine degrades by
// skipping rate limiting, invalidation or event publishing respectively.
type Engine struct {
	Settings     SettingsStore
	Reservations ReservationStore
	Tables       TableStore
	Games        GameStore
	Sessions     SessionStore

	Attempts AttemptStore
	Views    Invalidator
	Events   Notifier

	cfg Config
	now func() time.Time
}

// New constructs an Engine over the required stores.  It panics when a
// required store is nil, mirroring how handlers refuse nil repositories.
func New(cfg Config, settings SettingsStore, reservations ReservationStore, tables TableStore, games GameStore, sessions SessionStore) *Engine {
	if settings == nil || reservations == nil || tables == nil || games == nil || sessions == nil {
		panic("nil store passed to booking.New")
	}
	if cfg.InsertRetry.Attempts <= 0 {
		cfg.InsertRetry = DefaultConfig().InsertRetry
	}
	if cfg.CodeAttempts <= 0 {
		cfg.CodeAttempts = DefaultConfig().CodeAttempts
	}
	if cfg.LookupAttempts <= 0 {
		cfg.LookupAttempts = DefaultConfig().LookupAttempts
	}
	if cfg.LookupWindow <= 0 {
		cfg.LookupWindow = DefaultConfig().LookupWindow
	}
	return &Engine{
		Settings:     settings,
		Reservations: reservations,
		Tables:       tables,
		Games:        games,
		Sessions:     sessions,
		cfg:          cfg,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// invalidate fires the stale-view signal when a view invalidator is
// wired.  Failure to signal is non-fatal and handled downstream.
func (e *Engine) invalidate(ctx context.Context, keys ...string) {
	if e.Views != nil {
		e.Views.Invalidate(ctx, keys...)
	}
}
