package ducks

import (
	"context"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// OutcomeKind is the result of a hunter action.
type OutcomeKind string

// Outcome kinds
const (
	OutcomeKilled      OutcomeKind = "killed"
	OutcomeHurt        OutcomeKind = "hurt"
	OutcomeResisted    OutcomeKind = "resisted"
	OutcomeFrightened  OutcomeKind = "frightened"
	OutcomeNoDuck      OutcomeKind = "no_duck"
	OutcomeDuckGone    OutcomeKind = "duck_gone"
	OutcomeWrongAnswer OutcomeKind = "wrong_answer"
	OutcomeNoAmmo      OutcomeKind = "no_ammo"
	OutcomeConfiscated OutcomeKind = "confiscated"
	OutcomeHugged      OutcomeKind = "hugged"
	OutcomeBabyHugged  OutcomeKind = "baby_hugged"
	OutcomeReloaded    OutcomeKind = "reloaded"
	OutcomeGunFull     OutcomeKind = "gun_full"
	OutcomeNoMagazines OutcomeKind = "no_magazines"
	OutcomeCleared     OutcomeKind = "cleared"
)

// Outcome describes what a hunter action did.
type Outcome struct {
	Kind      OutcomeKind
	Duck      *Duck
	Damage    int
	LivesLeft int
	ExpDelta  int64
	Prestige  bool
	Clover    bool
	Spawned   []*Duck
	Player    *domain.Player
	// Text is the rendered in-character reply.
	Text string
}

// Removed reports whether the outcome took the duck out of the channel.
func (o Outcome) Removed() bool {
	switch o.Kind {
	case OutcomeKilled, OutcomeFrightened, OutcomeBabyHugged:
		return true
	}
	return false
}

// Reply delivers an outcome to the hunter. It runs while the duck's lock is
// still held.
type Reply func(ctx context.Context, out Outcome) error
