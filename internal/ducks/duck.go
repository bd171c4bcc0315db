package ducks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// ErrDuplicateDuck is returned when a duck is registered twice.
var ErrDuplicateDuck = errors.New(ErrMsgDuplicateDuck)

// Cosmetics are the flavor text indexes picked at spawn time so a duck
// looks the same after a restart.
type Cosmetics struct {
	Trace    int `json:"trace"`
	Face     int `json:"face"`
	Shout    int `json:"shout"`
	Identity int `json:"identity"`
}

// Quiz is the professor duck's pending question.
type Quiz struct {
	Question string `json:"question"`
	Answer   int    `json:"answer"`
	Anger    int    `json:"anger"`
}

// Duck is one spawned creature. The zero value is not usable; create ducks
// through a Spawner or FromState.
type Duck struct {
	ID        uuid.UUID
	ChannelID string
	Category  domain.Category
	Decoy     bool
	SpawnedAt time.Time
	Cosmetics Cosmetics

	// sem is the resolution lock; a buffered channel so acquisition can be
	// abandoned when the caller's context ends.
	sem chan struct{}

	mu         sync.Mutex
	livesTotal int
	livesLeft  int
	quiz       *Quiz
	holder     string
	// profile is the holder's profile as read under the lock.
	profile    *domain.Player
}

func newDuck(channelID string, category domain.Category, lives int, at time.Time) *Duck {
	return &Duck{
		ID:         uuid.New(),
		ChannelID:  channelID,
		Category:   category,
		SpawnedAt:  at,
		sem:        make(chan struct{}, 1),
		livesTotal: lives,
		livesLeft:  lives,
	}
}

// Acquire takes the resolution lock on behalf of holder.
func (d *Duck) Acquire(ctx context.Context, holder string) error {
	select {
	case d.sem <- struct{}{}:
		d.setHolder(holder)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes the resolution lock only if it is free.
func (d *Duck) TryAcquire(holder string) bool {
	select {
	case d.sem <- struct{}{}:
		d.setHolder(holder)
		return true
	default:
		return false
	}
}

// Release gives the resolution lock back.
func (d *Duck) Release() {
	d.setHolder("")
	<-d.sem
}

// Holder returns who holds the resolution lock, or "".
func (d *Duck) Holder() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.holder
}

// HoldFor records the holder's profile snapshot. It is ignored unless p
// belongs to the current holder.
func (d *Duck) HoldFor(p *domain.Player) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.holder == "" || p == nil || p.UserID != d.holder {
		return
	}
	d.profile = p.Clone()
}

// HolderProfile returns a copy of the holder's profile snapshot, or nil.
func (d *Duck) HolderProfile() *domain.Player {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.profile == nil {
		return nil
	}
	return d.profile.Clone()
}

func (d *Duck) setHolder(h string) {
	d.mu.Lock()
	d.holder = h
	d.profile = nil
	d.mu.Unlock()
}

// LivesTotal returns the lives the duck spawned with.
func (d *Duck) LivesTotal() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.livesTotal
}

// LivesLeft returns the remaining lives.
func (d *Duck) LivesLeft() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.livesLeft
}

// Alive reports whether the duck has lives left.
func (d *Duck) Alive() bool {
	return d.LivesLeft() > 0
}

// Hit removes damage lives, never going below zero, and returns what is
// left. Non-positive damage is a no-op.
func (d *Duck) Hit(damage int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if damage > 0 {
		d.livesLeft = max(d.livesLeft-damage, 0)
	}
	return d.livesLeft
}

// SpawnedFor returns how long the duck has been alive at now.
func (d *Duck) SpawnedFor(now time.Time) time.Duration {
	return now.Sub(d.SpawnedAt)
}

// Quiz returns a copy of the pending question, or nil.
func (d *Duck) Quiz() *Quiz {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quiz == nil {
		return nil
	}
	q := *d.quiz
	return &q
}

func (d *Duck) setQuiz(q *Quiz) {
	d.mu.Lock()
	d.quiz = q
	d.mu.Unlock()
}

// Answer checks a hunter's answer. A wrong answer raises the anger level,
// which is returned. Ducks without a quiz accept anything.
func (d *Duck) Answer(raw string) (bool, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.quiz == nil {
		return true, 0
	}
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && n == d.quiz.Answer {
		return true, d.quiz.Anger
	}
	d.quiz.Anger++
	return false, d.quiz.Anger
}

// State is the serializable form of a duck.
type State struct {
	ID         uuid.UUID
	ChannelID  string
	Category   domain.Category
	Decoy      bool
	SpawnedAt  time.Time
	LivesTotal int
	LivesLeft  int
	Cosmetics  Cosmetics
	Quiz       *Quiz
}

// State exports the duck.
func (d *Duck) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := State{
		ID:         d.ID,
		ChannelID:  d.ChannelID,
		Category:   d.Category,
		Decoy:      d.Decoy,
		SpawnedAt:  d.SpawnedAt,
		LivesTotal: d.livesTotal,
		LivesLeft:  d.livesLeft,
		Cosmetics:  d.Cosmetics,
	}
	if d.quiz != nil {
		q := *d.quiz
		s.Quiz = &q
	}
	return s
}

// FromState rebuilds a duck. The category must be known and
// 0 < LivesLeft <= LivesTotal.
func FromState(s State) (*Duck, error) {
	category, err := domain.ParseCategory(string(s.Category))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSnapshotEntry, err)
	}
	if s.LivesTotal < 1 || s.LivesLeft < 1 || s.LivesLeft > s.LivesTotal {
		return nil, fmt.Errorf("%w: lives %d/%d", domain.ErrInvalidSnapshotEntry, s.LivesLeft, s.LivesTotal)
	}
	if s.ChannelID == "" {
		return nil, fmt.Errorf("%w: missing channel", domain.ErrInvalidSnapshotEntry)
	}
	d := newDuck(s.ChannelID, category, s.LivesTotal, s.SpawnedAt)
	if s.ID != uuid.Nil {
		d.ID = s.ID
	}
	d.livesLeft = s.LivesLeft
	d.Decoy = s.Decoy
	d.Cosmetics = s.Cosmetics
	if s.Quiz != nil {
		q := *s.Quiz
		d.quiz = &q
	} else if TraitsOf(category).Quiz {
		return nil, fmt.Errorf("%w: %s duck without question", domain.ErrInvalidSnapshotEntry, category)
	}
	return d, nil
}
