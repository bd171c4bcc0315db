package spawning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/snapshot"
)

// eventFile is the persisted world event.
type eventFile struct {
	Event domain.WorldEvent `json:"event"`
	Hour  int64             `json:"hour"`
}

// Events holds the world event of the current UTC hour.
type Events struct {
	mu      sync.RWMutex
	current domain.WorldEvent
	hour    int64

	dice ducks.Dice
	odds int
	path string
}

// NewEvents creates a holder rolling an event with probability 1/odds per
// hour. An empty path disables persistence.
func NewEvents(dice ducks.Dice, odds int, path string) *Events {
	if odds < 1 {
		odds = DefaultWorldEventOdds
	}
	return &Events{current: domain.EventNone, dice: dice, odds: odds, path: path}
}

// HourOf returns the UTC hour index of t.
func HourOf(t time.Time) int64 {
	return t.Unix() / secondsPerHour
}

// Current returns the active event.
func (e *Events) Current() domain.WorldEvent {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Hour returns the hour index the active event belongs to.
func (e *Events) Hour() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hour
}

// Set forces an event for the given hour and persists it.
func (e *Events) Set(ctx context.Context, ev domain.WorldEvent, hour int64) error {
	if !ev.Valid() {
		return fmt.Errorf("%w: world event %q", domain.ErrInvalidInput, ev)
	}
	e.mu.Lock()
	e.current = ev
	e.hour = hour
	e.mu.Unlock()
	return e.Save(ctx)
}

// Reroll draws the event for the given hour: most hours have none, the
// rest pick uniformly among the named events.
func (e *Events) Reroll(ctx context.Context, hour int64) domain.WorldEvent {
	ev := domain.EventNone
	if e.dice.IntN(e.odds) == 0 {
		ev = domain.WorldEvents[e.dice.IntN(len(domain.WorldEvents))]
	}
	if err := e.Set(ctx, ev, hour); err != nil {
		logger.FromContext(ctx).Warn(LogMsgWorldEventSaveFail, "error", err)
	}
	logger.FromContext(ctx).Info(LogMsgWorldEventRolled, "event", string(ev), "hour", hour)
	return ev
}

// Load resumes the persisted event if it belongs to the hour of now.
func (e *Events) Load(ctx context.Context, now time.Time) {
	log := logger.FromContext(ctx)
	hour := HourOf(now)
	e.mu.Lock()
	e.hour = hour
	e.mu.Unlock()
	if e.path == "" {
		return
	}

	data, err := os.ReadFile(e.path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn(LogMsgWorldEventLoadFail, "path", e.path, "error", err)
		return
	}
	var f eventFile
	if err := json.Unmarshal(data, &f); err != nil || !f.Event.Valid() {
		log.Warn(LogMsgWorldEventLoadFail, "path", e.path, "error", err)
		return
	}
	if f.Hour != hour {
		return
	}
	e.mu.Lock()
	e.current = f.Event
	e.mu.Unlock()
	log.Info(LogMsgWorldEventLoaded, "event", string(f.Event))
}

// Save persists the active event.
func (e *Events) Save(_ context.Context) error {
	if e.path == "" {
		return nil
	}
	e.mu.RLock()
	f := eventFile{Event: e.current, Hour: e.hour}
	e.mu.RUnlock()
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return snapshot.WriteFileAtomic(e.path, data)
}
