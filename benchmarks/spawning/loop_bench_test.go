package spawning_bench

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/snapshot"
	"github.com/osse101/DuckHunt_Go/internal/spawning"
)

// --- Stubs (Zero-overhead mocks for benchmarking) ---

type StubSender struct{}

func (StubSender) Send(context.Context, string, ducks.Message) error { return nil }

var start = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func setup(b *testing.B, channels int) (*spawning.Loop, *ducks.Spawner, []domain.ChannelConfig) {
	b.Helper()
	catalog, err := content.Default()
	if err != nil {
		b.Fatalf("catalog: %v", err)
	}

	cfgs := make([]domain.ChannelConfig, channels)
	for i := range cfgs {
		cfgs[i] = domain.DefaultChannelConfig(fmt.Sprintf("c%d", i), "g")
		cfgs[i].DucksPerDay = 500
	}
	store := repository.NewMemoryChannels(cfgs...)
	registry := ducks.NewRegistry()
	dice := ducks.SeededDice(42)
	spawner := ducks.NewSpawner(registry, StubSender{}, catalog, dice, ducks.StaticEvent(domain.EventNone), func() time.Time { return start })

	loop := spawning.New(spawning.Deps{
		Channels: store,
		Players:  repository.NewMemoryPlayers(),
		Spawner:  spawner,
		Catalog:  catalog,
		Dice:     dice,
	})
	return loop, spawner, cfgs
}

// BenchmarkTick_ManyChannels measures one loop iteration over a large
// enabled channel set.
func BenchmarkTick_ManyChannels(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("channels=%d", n), func(b *testing.B) {
			loop, _, _ := setup(b, n)
			ctx := context.Background()
			now := start

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				now = now.Add(time.Second)
				loop.Tick(ctx, now)
			}
		})
	}
}

// BenchmarkSnapshotEncode measures serializing a busy registry on shutdown.
func BenchmarkSnapshotEncode(b *testing.B) {
	_, spawner, cfgs := setup(b, 100)
	ctx := context.Background()
	for _, cfg := range cfgs {
		for _, c := range domain.DayCategories {
			if _, err := spawner.Spawn(ctx, cfg, c, ducks.SpawnOptions{}); err != nil {
				b.Fatalf("Spawn failed: %v", err)
			}
		}
	}
	now := start.Add(time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := snapshot.Encode(spawner.Registry(), now); err != nil {
			b.Fatalf("Encode failed: %v", err)
		}
	}
}
