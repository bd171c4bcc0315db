package spawning

import (
	"sync"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

// Budget is a channel's remaining natural spawns for the current day,
// split between the day and night windows.
type Budget struct {
	Day   int
	Night int

	plan planKey
}

// Total returns the remaining spawns in both windows.
func (b Budget) Total() int {
	return b.Day + b.Night
}

// Left returns the remaining spawns of one window.
func (b Budget) Left(night bool) int {
	if night {
		return b.Night
	}
	return b.Day
}

// planKey holds the configuration a budget was derived from; a change
// forces a replan.
type planKey struct {
	ducksPerDay  int
	nightStartAt int
	nightEndAt   int
}

func keyOf(cfg domain.ChannelConfig) planKey {
	return planKey{cfg.DucksPerDay, cfg.NightStartAt, cfg.NightEndAt}
}

// PlanBudget pro-rates the channel's daily quota over the rest of the day
// starting at secondOfDay, then splits it by the night seconds left.
func PlanBudget(cfg domain.ChannelConfig, secondOfDay int) Budget {
	b := Budget{plan: keyOf(cfg)}
	secondsLeft := domain.SecondsPerDay - secondOfDay
	if secondsLeft <= 0 || cfg.DucksPerDay <= 0 {
		return b
	}
	total := secondsLeft * cfg.DucksPerDay / domain.SecondsPerDay
	if !cfg.HasNight() {
		b.Day = total
		return b
	}
	b.Night = total * cfg.WindowSecondsLeft(secondOfDay, true) / secondsLeft
	b.Day = total - b.Night
	return b
}

// ShouldSpawn is the per second Bernoulli trial: with left spawns to place
// in windowSeconds seconds, spawn iff roll(1..windowSeconds) < left.
func ShouldSpawn(dice ducks.Dice, windowSeconds, left int) bool {
	if windowSeconds <= 0 || left <= 0 {
		return false
	}
	return dice.IntN(windowSeconds)+1 < left
}

// Budgets tracks every enabled channel's budget. The loop is its only
// writer apart from admin replans.
type Budgets struct {
	mu sync.Mutex
	m  map[string]Budget
}

// NewBudgets creates an empty tracker.
func NewBudgets() *Budgets {
	return &Budgets{m: make(map[string]Budget)}
}

// Plan recomputes and stores the channel's budget.
func (b *Budgets) Plan(cfg domain.ChannelConfig, secondOfDay int) Budget {
	planned := PlanBudget(cfg, secondOfDay)
	b.mu.Lock()
	b.m[cfg.ChannelID] = planned
	b.mu.Unlock()
	return planned
}

// Ensure returns the channel's budget, planning it if it is missing or
// the relevant configuration changed since it was planned.
func (b *Budgets) Ensure(cfg domain.ChannelConfig, secondOfDay int) Budget {
	b.mu.Lock()
	cur, ok := b.m[cfg.ChannelID]
	b.mu.Unlock()
	if ok && cur.plan == keyOf(cfg) {
		return cur
	}
	return b.Plan(cfg, secondOfDay)
}

// Set overrides a channel's budget.
func (b *Budgets) Set(cfg domain.ChannelConfig, day, night int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.m[cfg.ChannelID] = Budget{Day: day, Night: night, plan: keyOf(cfg)}
}

// Consume takes one spawn from the window. Returns false if it was empty.
func (b *Budgets) Consume(channelID string, night bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.m[channelID]
	if !ok || cur.Left(night) <= 0 {
		return false
	}
	if night {
		cur.Night--
	} else {
		cur.Day--
	}
	b.m[channelID] = cur
	return true
}

// Get returns the channel's budget.
func (b *Budgets) Get(channelID string) (Budget, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.m[channelID]
	return cur, ok
}

// Drop forgets a channel.
func (b *Budgets) Drop(channelID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.m, channelID)
}

// Retain drops every channel not in keep.
func (b *Budgets) Retain(keep map[string]bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id := range b.m {
		if !keep[id] {
			delete(b.m, id)
		}
	}
}

// Total sums the remaining spawns of every channel.
func (b *Budgets) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, cur := range b.m {
		n += cur.Total()
	}
	return n
}
