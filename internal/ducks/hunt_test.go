package ducks

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

func TestShoot_AtMostOneKill(t *testing.T) {
	for round := 0; round < 20; round++ {
		f := newFixture(t, testChannel(), SeededDice(uint64(round)))
		f.spawn(t, domain.CategoryNormal)

		const hunters = 16
		outcomes := make([]Outcome, hunters)
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < hunters; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				<-start
				out, err := f.hunt.Shoot(context.Background(), shooter("u"+strconv.Itoa(i)), nil)
				assert.NoError(t, err)
				outcomes[i] = out
			}(i)
		}
		close(start)
		wg.Wait()

		kills := 0
		for _, out := range outcomes {
			switch out.Kind {
			case OutcomeKilled:
				kills++
			case OutcomeNoDuck, OutcomeDuckGone:
			default:
				t.Fatalf("unexpected outcome %s", out.Kind)
			}
		}
		assert.Equal(t, 1, kills, "round %d", round)
		assert.Equal(t, 0, f.registry.Count())
	}
}

func TestShoot_KillAwardsExperience(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	d := f.spawn(t, domain.CategoryNormal)
	f.now = f.now.Add(30 * time.Second)

	var replied Outcome
	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), func(ctx context.Context, o Outcome) error {
		// The lock is still held while replying.
		assert.Equal(t, "u1", d.Holder())
		if snap := d.HolderProfile(); assert.NotNil(t, snap) {
			assert.Equal(t, "u1", snap.UserID)
		}
		replied = o
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, out.Kind)
	assert.Equal(t, out.Kind, replied.Kind)
	assert.True(t, out.Prestige, "first kill of the day always gets the bonus")
	assert.Equal(t, int64(10+5), out.ExpDelta)
	assert.Contains(t, out.Text, "<@u1> killed the duck in 30.000s")
	assert.Equal(t, "", d.Holder())
	assert.Nil(t, d.HolderProfile())

	p, err := f.players.GetPlayer(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(15), p.Experience)
	assert.Equal(t, domain.MaxBullets-1, p.Bullets)
	assert.Equal(t, 1, p.Kills[domain.CategoryNormal])
	assert.Equal(t, 1, p.KillsToday)
	assert.InDelta(t, 30.0, p.BestTimeSeconds, 0.001)
}

func TestShoot_DecoyNeverPrestige(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	d, err := f.spawner.Spawn(context.Background(), f.cfg, domain.CategoryMechanical, SpawnOptions{Decoy: true})
	require.NoError(t, err)
	require.True(t, d.Decoy)

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, out.Kind)
	assert.False(t, out.Prestige)
	assert.Equal(t, int64(-10), out.ExpDelta)
	assert.Equal(t, 0, out.Player.KillsToday)
}

func TestShoot_CloverBonus(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	f.spawn(t, domain.CategoryNormal)

	p, _ := f.players.GetPlayer(context.Background(), "c1", "u1")
	p.GrantPowerup(domain.PowerupClover, f.now, time.Hour)
	require.NoError(t, f.players.SavePlayer(context.Background(), p))

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.True(t, out.Clover)
	assert.Equal(t, int64(10+5+10), out.ExpDelta)
}

func TestShoot_ArmoredResistsEveryHit(t *testing.T) {
	cfg := testChannel()
	cfg.SuperDucksMinLife = 3
	cfg.SuperDucksMaxLife = 3
	// 50 is above the frighten chance and below the armor chance.
	f := newFixture(t, cfg, constDice(50))
	d := f.spawn(t, domain.CategoryArmored)
	require.Equal(t, 3, d.LivesTotal())

	for i := 0; i < 3; i++ {
		out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
		require.NoError(t, err)
		assert.Equal(t, OutcomeResisted, out.Kind)
	}
	assert.Equal(t, 3, d.LivesLeft())
	assert.True(t, f.registry.Contains(d))
}

func TestShoot_ArmoredRollFails(t *testing.T) {
	cfg := testChannel()
	cfg.SuperDucksMinLife = 3
	cfg.SuperDucksMaxLife = 3
	// lives roll, four cosmetics, then the armor roll misses.
	dice := &scriptedDice{rolls: []int{0, 0, 0, 0, 0, 99}, fallback: 50}
	f := newFixture(t, cfg, dice)
	d := f.spawn(t, domain.CategoryArmored)

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHurt, out.Kind)
	assert.Equal(t, 2, d.LivesLeft())
	assert.Equal(t, 2, out.LivesLeft)

	out, err = f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeResisted, out.Kind)
	assert.Equal(t, 2, d.LivesLeft())
}

func TestShoot_MotherOfAllDucksSpawnsTwo(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	moad, err := FromState(State{
		ChannelID:  "c1",
		Category:   domain.CategoryMotherOfAllDucks,
		SpawnedAt:  f.now,
		LivesTotal: 2,
		LivesLeft:  1,
	})
	require.NoError(t, err)
	require.True(t, f.registry.Append(moad))

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, out.Kind)
	assert.False(t, f.registry.Contains(moad))
	assert.Len(t, out.Spawned, 2)
	assert.Len(t, f.registry.List("c1"), 2)
	for _, child := range out.Spawned {
		assert.True(t, f.registry.Contains(child))
	}
}

func TestShoot_NoDuckConfiscates(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(0))

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoDuck, out.Kind)
	assert.Equal(t, int64(-NoDuckPenalty), out.ExpDelta)

	f.spawn(t, domain.CategoryNormal)
	out, err = f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfiscated, out.Kind)
	assert.Equal(t, 1, f.registry.Count())

	_, err = f.players.Giveback(context.Background(), "c1")
	require.NoError(t, err)
	out, err = f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, out.Kind)
}

func TestShoot_EmptyGun(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	f.spawn(t, domain.CategoryNormal)

	p, _ := f.players.GetPlayer(context.Background(), "c1", "u1")
	p.Bullets = 0
	require.NoError(t, f.players.SavePlayer(context.Background(), p))

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoAmmo, out.Kind)
	assert.Equal(t, 1, f.registry.Count())

	out, err = f.hunt.Reload(context.Background(), shooter("u1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeReloaded, out.Kind)
	assert.Equal(t, domain.MaxBullets, out.Player.Bullets)
	assert.Equal(t, domain.MaxMagazines-1, out.Player.Magazines)

	out, err = f.hunt.Reload(context.Background(), shooter("u1"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeGunFull, out.Kind)
}

func TestShoot_ProfessorNeedsAnswer(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(95))
	d := f.spawn(t, domain.CategoryProfessor)

	wrong := shooter("u1")
	wrong.Answer = "1"
	out, err := f.hunt.Shoot(context.Background(), wrong, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWrongAnswer, out.Kind)
	assert.Contains(t, out.Text, "50 × 50")

	out, err = f.hunt.Shoot(context.Background(), wrong, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeWrongAnswer, out.Kind)
	assert.Contains(t, out.Text, "math class")
	assert.Equal(t, domain.MaxBullets, out.Player.Bullets, "wrong answers cost no bullet")
	assert.True(t, f.registry.Contains(d))

	right := shooter("u1")
	right.Answer = "2500"
	out, err = f.hunt.Shoot(context.Background(), right, nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeKilled, out.Kind)
	assert.Equal(t, 2, out.Player.WrongAnswers)
}

func TestShoot_Frightened(t *testing.T) {
	cfg := testChannel()
	cfg.FrightenChance = 100
	f := newFixture(t, cfg, constDice(50))
	d := f.spawn(t, domain.CategoryNormal)

	out, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFrightened, out.Kind)
	assert.False(t, f.registry.Contains(d))
	assert.Equal(t, 1, out.Player.Frightened)
}

func TestShoot_DisabledChannel(t *testing.T) {
	cfg := testChannel()
	cfg.Enabled = false
	f := newFixture(t, cfg, constDice(0))

	_, err := f.hunt.Shoot(context.Background(), shooter("u1"), nil)
	assert.ErrorIs(t, err, domain.ErrChannelDisabled)
}

func TestHug(t *testing.T) {
	f := newFixture(t, testChannel(), constDice(0))

	out, err := f.hunt.Hug(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoDuck, out.Kind)

	normal := f.spawn(t, domain.CategoryNormal)
	out, err = f.hunt.Hug(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeHugged, out.Kind)
	assert.Equal(t, -f.cfg.HugPenalty, out.ExpDelta)
	assert.True(t, f.registry.Contains(normal))

	out, err = f.hunt.Hug(context.Background(), shooter("friend"), nil)
	require.NoError(t, err)
	assert.Equal(t, f.cfg.HugPenalty, out.ExpDelta)
	assert.Contains(t, out.Text, "hugged back")

	f.registry.Clear("c1")
	baby := f.spawn(t, domain.CategoryBaby)
	out, err = f.hunt.Hug(context.Background(), shooter("u1"), nil)
	require.NoError(t, err)
	assert.Equal(t, OutcomeBabyHugged, out.Kind)
	assert.Equal(t, f.cfg.BabyHugExp, out.ExpDelta)
	assert.False(t, f.registry.Contains(baby))
	assert.Equal(t, 1, out.Player.Hugs[domain.CategoryBaby])
}
