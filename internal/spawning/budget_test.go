package spawning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

func TestPlanBudget_NoonIsHalfTheQuota(t *testing.T) {
	cfg := domain.DefaultChannelConfig("c1", "g1")
	cfg.DucksPerDay = 96

	b := PlanBudget(cfg, 43200)
	assert.Equal(t, 48, b.Total())
	assert.Equal(t, 48, b.Day)
	assert.Zero(t, b.Night)
}

func TestPlanBudget_SplitsNight(t *testing.T) {
	cfg := domain.DefaultChannelConfig("c1", "g1")
	cfg.DucksPerDay = 96
	cfg.NightStartAt = 22 * 3600
	cfg.NightEndAt = 6 * 3600

	b := PlanBudget(cfg, 0)
	assert.Equal(t, 96, b.Total())
	assert.Equal(t, 32, b.Night)
	assert.Equal(t, 64, b.Day)

	// At noon only the 22:00-24:00 night slice is left.
	b = PlanBudget(cfg, 43200)
	assert.Equal(t, 48, b.Total())
	assert.Equal(t, 8, b.Night)
}

func TestPlanBudget_EndOfDayAndDisabledQuota(t *testing.T) {
	cfg := domain.DefaultChannelConfig("c1", "g1")
	assert.Zero(t, PlanBudget(cfg, domain.SecondsPerDay).Total())

	cfg.DucksPerDay = 0
	assert.Zero(t, PlanBudget(cfg, 0).Total())
}

func TestShouldSpawn_ConservesBudgetOverADay(t *testing.T) {
	const perDay = 96
	for seed := uint64(1); seed <= 10; seed++ {
		dice := ducks.SeededDice(seed)
		left := perDay
		spawned := 0
		for s := 0; s < domain.SecondsPerDay; s++ {
			if ShouldSpawn(dice, domain.SecondsPerDay-s, left) {
				left--
				spawned++
			}
		}
		assert.InDelta(t, perDay, spawned, 2, "seed %d", seed)
	}
}

func TestShouldSpawn_SpreadsOverTheDay(t *testing.T) {
	const perDay = 96
	dice := ducks.SeededDice(99)
	left := perDay
	firstHalf := 0
	for s := 0; s < domain.SecondsPerDay; s++ {
		if ShouldSpawn(dice, domain.SecondsPerDay-s, left) {
			left--
			if s < domain.SecondsPerDay/2 {
				firstHalf++
			}
		}
	}
	assert.InDelta(t, perDay/2, firstHalf, 20)
}

func TestShouldSpawn_Edges(t *testing.T) {
	dice := ducks.SeededDice(1)
	assert.False(t, ShouldSpawn(dice, 0, 10))
	assert.False(t, ShouldSpawn(dice, 100, 0))
	assert.True(t, ShouldSpawn(dice, 5, 10))
}

func TestBudgets_EnsureReplansOnConfigChange(t *testing.T) {
	b := NewBudgets()
	cfg := domain.DefaultChannelConfig("c1", "g1")

	got := b.Ensure(cfg, 0)
	assert.Equal(t, 96, got.Total())
	assert.True(t, b.Consume("c1", false))
	assert.Equal(t, 95, b.Ensure(cfg, 0).Total(), "unchanged config keeps the running budget")

	cfg.DucksPerDay = 48
	assert.Equal(t, 24, b.Ensure(cfg, 43200).Total())

	b.Set(cfg, 0, 0)
	assert.False(t, b.Consume("c1", false))
	assert.False(t, b.Consume("missing", false))
}
