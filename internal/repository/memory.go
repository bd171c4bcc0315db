package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// MemoryChannels is a process local Channel store.
type MemoryChannels struct {
	mu       sync.RWMutex
	channels map[string]domain.ChannelConfig
}

// NewMemoryChannels creates a store seeded with cfgs.
func NewMemoryChannels(cfgs ...domain.ChannelConfig) *MemoryChannels {
	m := &MemoryChannels{channels: make(map[string]domain.ChannelConfig)}
	for _, c := range cfgs {
		m.channels[c.ChannelID] = copyChannel(c)
	}
	return m
}

func (m *MemoryChannels) GetChannel(_ context.Context, channelID string) (*domain.ChannelConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.channels[channelID]
	if !ok {
		return nil, domain.ErrChannelNotFound
	}
	c = copyChannel(c)
	return &c, nil
}

func (m *MemoryChannels) ListEnabledChannels(_ context.Context) ([]domain.ChannelConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ChannelConfig, 0, len(m.channels))
	for _, c := range m.channels {
		if c.Enabled {
			out = append(out, copyChannel(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out, nil
}

func (m *MemoryChannels) SaveChannel(_ context.Context, cfg domain.ChannelConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cfg.UpdatedAt = time.Now().UTC()
	m.channels[cfg.ChannelID] = copyChannel(cfg)
	return nil
}

func (m *MemoryChannels) SetChannelEnabled(_ context.Context, channelID string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.channels[channelID]
	if !ok {
		return domain.ErrChannelNotFound
	}
	c.Enabled = enabled
	c.UpdatedAt = time.Now().UTC()
	m.channels[channelID] = c
	return nil
}

func copyChannel(c domain.ChannelConfig) domain.ChannelConfig {
	weights := make(map[domain.Category]int, len(c.SpawnWeights))
	for k, v := range c.SpawnWeights {
		weights[k] = v
	}
	c.SpawnWeights = weights
	return c
}

// MemoryPlayers is a process local Player store.
type MemoryPlayers struct {
	mu      sync.RWMutex
	players map[string]*domain.Player
}

// NewMemoryPlayers creates an empty store.
func NewMemoryPlayers() *MemoryPlayers {
	return &MemoryPlayers{players: make(map[string]*domain.Player)}
}

func playerKey(channelID, userID string) string {
	return channelID + "/" + userID
}

func (m *MemoryPlayers) GetPlayer(_ context.Context, channelID, userID string) (*domain.Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[playerKey(channelID, userID)]; ok {
		return p.Clone(), nil
	}
	return domain.NewPlayer(channelID, userID), nil
}

func (m *MemoryPlayers) SavePlayer(_ context.Context, p *domain.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := p.Clone()
	c.UpdatedAt = time.Now().UTC()
	m.players[playerKey(p.ChannelID, p.UserID)] = c
	return nil
}

func (m *MemoryPlayers) Giveback(_ context.Context, channelID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.players {
		if p.ChannelID != channelID {
			continue
		}
		p.Confiscated = false
		p.Bullets = domain.MaxBullets
		p.Magazines = domain.MaxMagazines
		n++
	}
	return n, nil
}
