package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

// PlayerRepository implements repository.Player for PostgreSQL
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a new PlayerRepository
func NewPlayerRepository(db *pgxpool.Pool) repository.Player {
	return &PlayerRepository{db: db}
}

const playerColumns = `channel_id, user_id, experience, bullets, magazines, confiscated,
	powerups, kills, hugs, hurts, resists, frightened, shots_without_duck, wrong_answers,
	best_time_seconds, kills_today, kills_today_day, updated_at`

func (r *PlayerRepository) GetPlayer(ctx context.Context, channelID, userID string) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE channel_id = $1 AND user_id = $2`

	var (
		p                     domain.Player
		powerups, kills, hugs []byte
	)
	err := r.db.QueryRow(ctx, query, channelID, userID).Scan(
		&p.ChannelID, &p.UserID, &p.Experience, &p.Bullets, &p.Magazines, &p.Confiscated,
		&powerups, &kills, &hugs, &p.Hurts, &p.Resists, &p.Frightened, &p.ShotsWithoutDuck, &p.WrongAnswers,
		&p.BestTimeSeconds, &p.KillsToday, &p.KillsTodayDay, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.NewPlayer(channelID, userID), nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayer, err)
	}

	for _, m := range []struct {
		raw []byte
		dst any
	}{
		{powerups, &p.Powerups},
		{kills, &p.Kills},
		{hugs, &p.Hugs},
	} {
		if err := json.Unmarshal(m.raw, m.dst); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodePlayer, err)
		}
	}
	p.Normalize()
	return &p, nil
}

func (r *PlayerRepository) SavePlayer(ctx context.Context, p *domain.Player) error {
	p.Normalize()
	powerups, err := json.Marshal(p.Powerups)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePlayer, err)
	}
	kills, err := json.Marshal(p.Kills)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePlayer, err)
	}
	hugs, err := json.Marshal(p.Hugs)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodePlayer, err)
	}

	query := `
		INSERT INTO players (` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		ON CONFLICT (channel_id, user_id) DO UPDATE
		SET experience = EXCLUDED.experience,
		    bullets = EXCLUDED.bullets,
		    magazines = EXCLUDED.magazines,
		    confiscated = EXCLUDED.confiscated,
		    powerups = EXCLUDED.powerups,
		    kills = EXCLUDED.kills,
		    hugs = EXCLUDED.hugs,
		    hurts = EXCLUDED.hurts,
		    resists = EXCLUDED.resists,
		    frightened = EXCLUDED.frightened,
		    shots_without_duck = EXCLUDED.shots_without_duck,
		    wrong_answers = EXCLUDED.wrong_answers,
		    best_time_seconds = EXCLUDED.best_time_seconds,
		    kills_today = EXCLUDED.kills_today,
		    kills_today_day = EXCLUDED.kills_today_day,
		    updated_at = NOW()
		RETURNING updated_at`

	err = r.db.QueryRow(ctx, query,
		p.ChannelID, p.UserID, p.Experience, p.Bullets, p.Magazines, p.Confiscated,
		powerups, kills, hugs, p.Hurts, p.Resists, p.Frightened, p.ShotsWithoutDuck, p.WrongAnswers,
		p.BestTimeSeconds, p.KillsToday, p.KillsTodayDay,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePlayer, err)
	}
	return nil
}

func (r *PlayerRepository) Giveback(ctx context.Context, channelID string) (int64, error) {
	query := `
		UPDATE players
		SET confiscated = FALSE, bullets = $2, magazines = $3, updated_at = NOW()
		WHERE channel_id = $1`
	tag, err := r.db.Exec(ctx, query, channelID, domain.MaxBullets, domain.MaxMagazines)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGiveback, err)
	}
	return tag.RowsAffected(), nil
}
