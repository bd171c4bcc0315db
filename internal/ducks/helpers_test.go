package ducks

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

// constDice always rolls v, clamped into [0, n).
type constDice int

func (d constDice) IntN(n int) int {
	return min(int(d), n-1)
}

// scriptedDice replays rolls in order, then keeps returning the fallback.
type scriptedDice struct {
	mu       sync.Mutex
	rolls    []int
	fallback int
}

func (d *scriptedDice) IntN(n int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	v := d.fallback
	if len(d.rolls) > 0 {
		v, d.rolls = d.rolls[0], d.rolls[1:]
	}
	return min(v, n-1)
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	cfg      domain.ChannelConfig
	registry *Registry
	sender   *MockSender
	spawner  *Spawner
	hunt     *Hunt
	channels *repository.MemoryChannels
	players  *repository.MemoryPlayers
	now      time.Time
}

func newFixture(t *testing.T, cfg domain.ChannelConfig, dice Dice) *fixture {
	t.Helper()
	catalog, err := content.Default()
	require.NoError(t, err)

	f := &fixture{
		cfg:      cfg,
		registry: NewRegistry(),
		sender:   &MockSender{},
		channels: repository.NewMemoryChannels(cfg),
		players:  repository.NewMemoryPlayers(),
		now:      testNow,
	}
	f.sender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	clock := func() time.Time { return f.now }
	f.spawner = NewSpawner(f.registry, f.sender, catalog, dice, StaticEvent(domain.EventNone), clock)
	f.hunt = NewHunt(HuntDeps{
		Spawner:  f.spawner,
		Channels: f.channels,
		Players:  f.players,
		Catalog:  catalog,
		Dice:     dice,
		Gate:     concurrency.NewLockManager(),
		Prestige: DefaultPrestigeCurve(),
		Friends:  []string{"friend"},
		Now:      clock,
	})
	return f
}

func (f *fixture) spawn(t *testing.T, c domain.Category) *Duck {
	t.Helper()
	d, err := f.spawner.Spawn(context.Background(), f.cfg, c, SpawnOptions{})
	require.NoError(t, err)
	return d
}

func testChannel() domain.ChannelConfig {
	cfg := domain.DefaultChannelConfig("c1", "g1")
	cfg.FrightenChance = 0
	return cfg
}

func shooter(user string) Action {
	return Action{ChannelID: "c1", UserID: user, Mention: "<@" + user + ">"}
}
