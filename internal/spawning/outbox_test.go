package spawning

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/worker"
)

// gatedSender blocks deliveries to channels in hold until release is closed
// and fails deliveries to channels in gone.
type gatedSender struct {
	release chan struct{}
	hold    map[string]bool
	gone    map[string]bool

	mu   sync.Mutex
	sent map[string]int
}

func newGatedSender() *gatedSender {
	return &gatedSender{
		release: make(chan struct{}),
		hold:    make(map[string]bool),
		gone:    make(map[string]bool),
		sent:    make(map[string]int),
	}
}

func (s *gatedSender) Send(ctx context.Context, channelID string, msg ducks.Message) error {
	if s.hold[channelID] {
		select {
		case <-s.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.gone[channelID] {
		return fmt.Errorf("send: %w", domain.ErrChannelUnavailable)
	}
	s.mu.Lock()
	s.sent[channelID]++
	s.mu.Unlock()
	return nil
}

func (s *gatedSender) count(channelID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[channelID]
}

func newOutboxFixture(t *testing.T, sender ducks.Sender, cfgs ...domain.ChannelConfig) *loopFixture {
	t.Helper()
	catalog, err := content.Default()
	require.NoError(t, err)

	// "slow" and "fast" land on different workers of a 4 worker pool.
	pool := worker.NewPool(4, 8, 5*time.Second)
	pool.Start()
	t.Cleanup(func() { _ = pool.Stop(context.Background()) })
	outbox := NewOutbox(sender, pool)

	f := &loopFixture{
		registry: ducks.NewRegistry(),
		channels: repository.NewMemoryChannels(cfgs...),
		players:  repository.NewMemoryPlayers(),
		clock:    &fakeClock{now: midnight},
	}
	dice := ducks.SeededDice(5)
	events := NewEvents(dice, DefaultWorldEventOdds, "")
	f.spawner = ducks.NewSpawner(f.registry, outbox, catalog, dice, events, f.clock.Now)
	f.loop = New(Deps{
		Channels: f.channels,
		Players:  f.players,
		Spawner:  f.spawner,
		Events:   events,
		Outbox:   outbox,
		Catalog:  catalog,
		Dice:     dice,
		Clock:    f.clock,
	})
	return f
}

func TestLoop_BlockedChannelDoesNotStallTick(t *testing.T) {
	sender := newGatedSender()
	sender.hold["slow"] = true
	defer close(sender.release)

	slow := normalOnly(quietChannel("slow"))
	fast := normalOnly(quietChannel("fast"))
	slow.DucksTimeToLive = 60
	fast.DucksTimeToLive = 60
	f := newOutboxFixture(t, sender, slow, fast)
	ctx := context.Background()

	slowDuck, err := f.spawner.Spawn(ctx, slow, domain.CategoryNormal, ducks.SpawnOptions{})
	require.NoError(t, err)
	fastDuck, err := f.spawner.Spawn(ctx, fast, domain.CategoryNormal, ducks.SpawnOptions{})
	require.NoError(t, err)

	start := time.Now()
	f.tick(ctx, midnight.Add(2*time.Minute))
	assert.Less(t, time.Since(start), 500*time.Millisecond, "tick waited on a stuck channel")

	assert.False(t, f.registry.Contains(slowDuck))
	assert.False(t, f.registry.Contains(fastDuck))
	assert.Eventually(t, func() bool { return sender.count("fast") == 2 }, time.Second, 5*time.Millisecond,
		"spawn and leave announcements reach the healthy channel")
	assert.Zero(t, sender.count("slow"))
}

func TestLoop_DisablesChannelAfterFailedDelivery(t *testing.T) {
	sender := newGatedSender()
	sender.gone["bad"] = true

	bad := quietChannel("bad")
	good := quietChannel("good")
	f := newOutboxFixture(t, sender, bad, good)
	ctx := context.Background()

	_, err := f.spawner.Spawn(ctx, bad, domain.CategoryNormal, ducks.SpawnOptions{})
	require.NoError(t, err)
	_, err = f.spawner.Spawn(ctx, good, domain.CategoryNormal, ducks.SpawnOptions{})
	require.NoError(t, err)

	now := midnight.Add(time.Second)
	assert.Eventually(t, func() bool {
		f.tick(ctx, now)
		cfg, err := f.channels.GetChannel(ctx, "bad")
		return err == nil && !cfg.Enabled
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, f.registry.List("bad"))
	assert.Len(t, f.registry.List("good"), 1)
	cfg, err := f.channels.GetChannel(ctx, "good")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
}

func TestOutbox_UnavailableDrains(t *testing.T) {
	sender := newGatedSender()
	sender.gone["bad"] = true
	pool := worker.NewPool(1, 4, 0)
	pool.Start()
	outbox := NewOutbox(sender, pool)

	require.NoError(t, outbox.Send(context.Background(), "bad", ducks.Message{}))
	require.NoError(t, outbox.Send(context.Background(), "bad", ducks.Message{}))
	require.NoError(t, pool.Stop(context.Background()))

	assert.Equal(t, []string{"bad"}, outbox.Unavailable())
	assert.Nil(t, outbox.Unavailable())
}

func TestOutbox_DropsWhenStopped(t *testing.T) {
	sender := newGatedSender()
	pool := worker.NewPool(1, 1, 0)
	pool.Start()
	require.NoError(t, pool.Stop(context.Background()))
	outbox := NewOutbox(sender, pool)

	assert.NoError(t, outbox.Send(context.Background(), "c1", ducks.Message{}))
	assert.Zero(t, sender.count("c1"))
}
