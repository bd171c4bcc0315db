package repository

import (
	"context"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// Player defines the interface for hunter profile persistence
type Player interface {
	// GetPlayer returns the stored profile, or a fresh one if the user never
	// played in the channel. The fresh profile is not persisted until saved.
	GetPlayer(ctx context.Context, channelID, userID string) (*domain.Player, error)
	SavePlayer(ctx context.Context, p *domain.Player) error
	// Giveback returns confiscated weapons and refills ammo for every player
	// of the channel. Returns the number of profiles touched.
	Giveback(ctx context.Context, channelID string) (int64, error)
}
