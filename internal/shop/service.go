package shop

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/worker"
)

// Deps are the shop's collaborators.
type Deps struct {
	Channels repository.Channel
	Players  repository.Player
	Spawner  *ducks.Spawner
	Sender   ducks.Sender
	Tasks    *worker.Tasks
	Catalog  *content.Catalog
	Events   ducks.EventSource
	Gate     *concurrency.LockManager
	Now      func() time.Time
}

// Service sells items.
type Service struct {
	channels repository.Channel
	players  repository.Player
	spawner  *ducks.Spawner
	sender   ducks.Sender
	tasks    *worker.Tasks
	catalog  *content.Catalog
	events   ducks.EventSource
	gate     *concurrency.LockManager
	now      func() time.Time
}

// NewService wires the shop.
func NewService(deps Deps) *Service {
	s := &Service{
		channels: deps.Channels,
		players:  deps.Players,
		spawner:  deps.Spawner,
		sender:   deps.Sender,
		tasks:    deps.Tasks,
		catalog:  deps.Catalog,
		events:   deps.Events,
		gate:     deps.Gate,
		now:      deps.Now,
	}
	if s.events == nil {
		s.events = ducks.StaticEvent(domain.EventNone)
	}
	if s.gate == nil {
		s.gate = concurrency.NewLockManager()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Receipt describes a completed purchase.
type Receipt struct {
	Item    Item
	Expires time.Time
	Player  *domain.Player
}

// Buy spends the hunter's experience on an item.
func (s *Service) Buy(ctx context.Context, channelID, userID, itemName string) (Receipt, error) {
	if s.events.Current().ShopClosed() {
		return Receipt{}, domain.ErrShopClosed
	}
	item, ok := Lookup(itemName)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: %q", domain.ErrUnknownItem, itemName)
	}

	unlock := s.gate.LockUser(channelID, userID)
	defer unlock()

	cfg, err := s.channels.GetChannel(ctx, channelID)
	if err != nil {
		return Receipt{}, err
	}
	if !cfg.Enabled {
		return Receipt{}, domain.ErrChannelDisabled
	}
	p, err := s.players.GetPlayer(ctx, channelID, userID)
	if err != nil {
		return Receipt{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.Normalize()
	if p.Experience < item.Cost {
		return Receipt{}, domain.ErrNotEnoughExperience
	}

	now := s.now()
	receipt := Receipt{Item: item, Player: p}
	switch item.Kind {
	case KindMagazine:
		if p.Magazines >= domain.MaxMagazines {
			return Receipt{}, domain.ErrMagazinesFull
		}
		p.Magazines++
	case KindPowerup:
		receipt.Expires = p.GrantPowerup(item.Powerup, now, item.Duration)
	}

	p.Experience -= item.Cost
	if err := s.players.SavePlayer(ctx, p); err != nil {
		return Receipt{}, fmt.Errorf("failed to save player: %w", err)
	}

	switch item.Kind {
	case KindPowerup:
		if err := s.scheduleReminder(ctx, channelID, userID, item, receipt.Expires.Sub(now)); err != nil {
			return receipt, err
		}
	case KindDecoy:
		if err := s.scheduleDecoy(ctx, channelID, item); err != nil {
			return receipt, err
		}
	}

	metrics.Purchases.WithLabelValues(item.Name).Inc()
	logger.FromContext(ctx).Info(LogMsgPurchase, "channel_id", channelID, "user_id", userID, "item", item.Name, "cost", item.Cost)
	return receipt, nil
}

// ReminderKey is the task key of a hunter's powerup reminder.
func ReminderKey(channelID, userID string, pw domain.Powerup) string {
	return "reminder:" + channelID + ":" + userID + ":" + string(pw)
}

// scheduleReminder replaces any pending reminder for the same powerup, so
// only the reminder for the latest expiry fires.
func (s *Service) scheduleReminder(ctx context.Context, channelID, userID string, item Item, delay time.Duration) error {
	text := content.Render(s.catalog.Replies.PowerupExpired, content.Vars{"user": userID, "item": item.Name})
	return s.tasks.Schedule(ctx, ReminderKey(channelID, userID, item.Powerup), delay, func(ctx context.Context) {
		if err := s.sender.Send(ctx, channelID, ducks.Message{Content: text}); err != nil {
			logger.FromContext(ctx).Warn(LogMsgReminderFailed, "channel_id", channelID, "user_id", userID, "error", err)
		}
	})
}

func (s *Service) scheduleDecoy(ctx context.Context, channelID string, item Item) error {
	key := "decoy:" + channelID + ":" + uuid.NewString()
	return s.tasks.Schedule(ctx, key, item.Delay, func(ctx context.Context) {
		log := logger.FromContext(ctx)
		cfg, err := s.channels.GetChannel(ctx, channelID)
		if err != nil || !cfg.Enabled {
			log.Info(LogMsgDecoySkipped, "channel_id", channelID)
			return
		}
		category := item.Category
		if category == "" {
			category = s.spawner.Pick(*cfg, cfg.IsNight(domain.SecondOfDay(s.now())))
		}
		d, err := s.spawner.Spawn(ctx, *cfg, category, ducks.SpawnOptions{Decoy: true, Origin: metrics.OriginDecoy})
		if err != nil {
			log.Warn(LogMsgDecoySpawnFailed, "channel_id", channelID, "error", err)
			return
		}
		log.Info(LogMsgDecoyLanded, "channel_id", channelID, "duck_id", d.ID.String(), "category", string(category))
	})
}
