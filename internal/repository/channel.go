// Package repository defines the persistence contracts used by the game.
package repository

import (
	"context"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// Channel defines the interface for channel configuration persistence.
// Implementations return domain.ErrChannelNotFound for unknown channels.
type Channel interface {
	GetChannel(ctx context.Context, channelID string) (*domain.ChannelConfig, error)
	ListEnabledChannels(ctx context.Context) ([]domain.ChannelConfig, error)
	SaveChannel(ctx context.Context, cfg domain.ChannelConfig) error
	SetChannelEnabled(ctx context.Context, channelID string, enabled bool) error
}
