package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

// ChannelRepository stores channel configuration as JSONB, with the enabled
// flag kept in its own column so the loop's listing stays an index scan.
type ChannelRepository struct {
	db *pgxpool.Pool
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(db *pgxpool.Pool) repository.Channel {
	return &ChannelRepository{db: db}
}

func scanChannel(row pgx.Row) (*domain.ChannelConfig, error) {
	var (
		raw       []byte
		enabled   bool
		updatedAt time.Time
	)
	if err := row.Scan(&raw, &enabled, &updatedAt); err != nil {
		return nil, err
	}
	var cfg domain.ChannelConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodeConfig, err)
	}
	cfg.Enabled = enabled
	cfg.UpdatedAt = updatedAt
	return &cfg, nil
}

func (r *ChannelRepository) GetChannel(ctx context.Context, channelID string) (*domain.ChannelConfig, error) {
	query := `SELECT config, enabled, updated_at FROM channels WHERE channel_id = $1`
	cfg, err := scanChannel(r.db.QueryRow(ctx, query, channelID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChannelNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetChannel, err)
	}
	return cfg, nil
}

func (r *ChannelRepository) ListEnabledChannels(ctx context.Context) ([]domain.ChannelConfig, error) {
	query := `SELECT config, enabled, updated_at FROM channels WHERE enabled ORDER BY channel_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChannels, err)
	}
	defer rows.Close()

	var out []domain.ChannelConfig
	for rows.Next() {
		cfg, err := scanChannel(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChannels, err)
		}
		out = append(out, *cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListChannels, err)
	}
	return out, nil
}

func (r *ChannelRepository) SaveChannel(ctx context.Context, cfg domain.ChannelConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeConfig, err)
	}
	query := `
		INSERT INTO channels (channel_id, guild_id, enabled, config, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (channel_id) DO UPDATE
		SET guild_id = EXCLUDED.guild_id,
		    enabled = EXCLUDED.enabled,
		    config = EXCLUDED.config,
		    updated_at = NOW()`
	if _, err := r.db.Exec(ctx, query, cfg.ChannelID, cfg.GuildID, cfg.Enabled, raw); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveChannel, err)
	}
	return nil
}

func (r *ChannelRepository) SetChannelEnabled(ctx context.Context, channelID string, enabled bool) error {
	query := `UPDATE channels SET enabled = $2, updated_at = NOW() WHERE channel_id = $1`
	tag, err := r.db.Exec(ctx, query, channelID, enabled)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveChannel, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrChannelNotFound
	}
	return nil
}
