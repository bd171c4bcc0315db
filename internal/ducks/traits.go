package ducks

import (
	"math"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// Traits are the per-category behavior switches.
type Traits struct {
	// SuperLives rolls lives in the channel's super duck range instead of 1.
	SuperLives bool
	// ExpScale multiplies the kill experience. Zero means 1.
	ExpScale float64
	// Silent ducks are not announced.
	Silent bool
	// Fearless ducks are never frightened.
	Fearless bool
	// Armored ducks usually absorb one point of damage.
	Armored bool
	// SpawnsOnKill is the number of ducks spawned when this one is killed.
	SpawnsOnKill int
	// ClearsOnLeave removes every other duck of the channel on timeout.
	ClearsOnLeave bool
	// HugReward makes hugs give experience and take the duck home.
	HugReward bool
	// Quiz ducks must be answered before they can be shot.
	Quiz bool
}

var categoryTraits = map[domain.Category]Traits{
	domain.CategoryNormal:           {},
	domain.CategorySuper:            {SuperLives: true},
	domain.CategoryBaby:             {ExpScale: -1, HugReward: true},
	domain.CategoryProfessor:        {Quiz: true},
	domain.CategoryGhost:            {Silent: true},
	domain.CategoryMotherOfAllDucks: {SuperLives: true, SpawnsOnKill: 2},
	domain.CategoryMechanical:       {ExpScale: -1},
	domain.CategoryArmored:          {SuperLives: true, Armored: true},
	domain.CategoryGolden:           {ExpScale: 2},
	domain.CategoryPlastic:          {ExpScale: 0.5},
	domain.CategoryKamikaze:         {ClearsOnLeave: true},
	domain.CategoryNight:            {},
	domain.CategorySleeping:         {Fearless: true},
}

// TraitsOf returns the behavior of a category. Unknown categories behave
// like normal ducks.
func TraitsOf(c domain.Category) Traits {
	return categoryTraits[c]
}

// RollLives picks the starting lives for a new duck.
func RollLives(cfg domain.ChannelConfig, c domain.Category, dice Dice) int {
	if !TraitsOf(c).SuperLives {
		return 1
	}
	lo := max(cfg.SuperDucksMinLife, 1)
	hi := max(cfg.SuperDucksMaxLife, lo)
	return lo + dice.IntN(hi-lo+1)
}

// ExpValue is the kill experience of a duck with livesTotal lives, before
// bonuses.
func ExpValue(cfg domain.ChannelConfig, c domain.Category, livesTotal int) int64 {
	base := cfg.BaseDuckExp + cfg.PerLifeExp*int64(max(livesTotal-1, 0))
	scale := TraitsOf(c).ExpScale
	if scale == 0 {
		return base
	}
	return int64(math.Round(float64(base) * scale))
}

// Damage returns the damage a shot from p deals to a duck of category c.
// Zero means the shot was fully absorbed by armor.
func Damage(p *domain.Player, c domain.Category, now time.Time, dice Dice) int {
	damage := DamageDefault
	switch {
	case p.HasPowerup(domain.PowerupExplosiveAmmo, now):
		damage = DamageExplosive
	case p.HasPowerup(domain.PowerupAPAmmo, now):
		damage = DamageAPAmmo
	}
	if TraitsOf(c).Armored && dice.IntN(100) < ArmorResistChance {
		damage--
	}
	return damage
}

// WillFrighten rolls whether the shot scares the duck away.
func WillFrighten(cfg domain.ChannelConfig, c domain.Category, p *domain.Player, event domain.WorldEvent, now time.Time, dice Dice) bool {
	if TraitsOf(c).Fearless || p.HasPowerup(domain.PowerupSilencer, now) {
		return false
	}
	chance := event.FrightenChance(cfg.FrightenChance)
	if chance <= 0 {
		return false
	}
	return dice.IntN(100) < chance
}
