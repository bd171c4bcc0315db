package ducks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
)

// Spawner creates, announces and retires ducks.
type Spawner struct {
	registry *Registry
	sender   Sender
	catalog  *content.Catalog
	dice     Dice
	events   EventSource
	now      func() time.Time
}

// NewSpawner wires a spawner. now defaults to time.Now.
func NewSpawner(registry *Registry, sender Sender, catalog *content.Catalog, dice Dice, events EventSource, now func() time.Time) *Spawner {
	if now == nil {
		now = time.Now
	}
	if events == nil {
		events = StaticEvent(domain.EventNone)
	}
	return &Spawner{
		registry: registry,
		sender:   sender,
		catalog:  catalog,
		dice:     dice,
		events:   events,
		now:      now,
	}
}

// Registry returns the registry ducks are spawned into.
func (s *Spawner) Registry() *Registry {
	return s.registry
}

// Pick draws a category from the day or night pool using the channel's
// weights adjusted by the current world event. All-zero weights fall back
// to the normal category.
func (s *Spawner) Pick(cfg domain.ChannelConfig, night bool) domain.Category {
	pool := domain.DayCategories
	if night {
		pool = domain.NightCategories
	}
	event := s.events.Current()

	weights := make([]int, len(pool))
	total := 0
	for i, c := range pool {
		weights[i] = max(event.AdjustWeight(c, cfg.Weight(c)), 0)
		total += weights[i]
	}
	if total == 0 {
		return domain.CategoryNormal
	}

	roll := s.dice.IntN(total)
	for i, w := range weights {
		if roll < w {
			return pool[i]
		}
		roll -= w
	}
	return domain.CategoryNormal
}

// SpawnOptions tune a single spawn.
type SpawnOptions struct {
	// Decoy marks ducks planted by a shop item.
	Decoy bool
	// Origin is the metrics label; defaults to natural.
	Origin string
}

// Spawn builds a duck of category, registers it and announces it. The duck
// is registered even if the announcement fails; the error is returned so
// the caller can react to an unavailable channel.
func (s *Spawner) Spawn(ctx context.Context, cfg domain.ChannelConfig, category domain.Category, opts SpawnOptions) (*Duck, error) {
	d := newDuck(cfg.ChannelID, category, RollLives(cfg, category, s.dice), s.now())
	d.Decoy = opts.Decoy
	d.Cosmetics = Cosmetics{
		Trace:    s.dice.IntN(len(s.catalog.Traces)),
		Face:     s.dice.IntN(max(len(s.catalog.Faces), len(s.catalog.EmojiFaces))),
		Shout:    s.dice.IntN(len(s.catalog.Shouts)),
		Identity: s.dice.IntN(len(s.catalog.Identities)),
	}
	if TraitsOf(category).Quiz {
		d.setQuiz(s.newQuiz())
	}
	if !s.registry.Append(d) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateDuck, d.ID)
	}

	origin := opts.Origin
	if origin == "" {
		origin = metrics.OriginNatural
	}
	metrics.DucksSpawned.WithLabelValues(string(category), origin).Inc()
	logger.FromContext(ctx).Debug(LogMsgDuckSpawned,
		"channel_id", cfg.ChannelID, "duck_id", d.ID.String(), "category", string(category),
		"lives", d.LivesTotal(), "decoy", d.Decoy)

	if TraitsOf(category).Silent {
		return d, nil
	}
	if err := s.sender.Send(ctx, cfg.ChannelID, s.announcement(cfg, d)); err != nil {
		return d, err
	}
	return d, nil
}

// Leave retires a duck whose time is up. The caller must hold the duck's
// lock. Returns false if someone else removed it first.
func (s *Spawner) Leave(ctx context.Context, cfg domain.ChannelConfig, d *Duck) (bool, error) {
	if !s.registry.Remove(d) {
		return false, nil
	}
	metrics.DucksLeft.WithLabelValues(string(d.Category)).Inc()

	taken := 0
	if TraitsOf(d.Category).ClearsOnLeave {
		for _, other := range s.registry.Clear(cfg.ChannelID) {
			metrics.DucksResolved.WithLabelValues(string(other.Category), string(OutcomeCleared)).Inc()
			taken++
		}
		logger.FromContext(ctx).Info(LogMsgKamikazeCleared, "channel_id", cfg.ChannelID, "taken", taken)
	}
	logger.FromContext(ctx).Debug(LogMsgDuckLeft, "channel_id", cfg.ChannelID, "duck_id", d.ID.String(), "category", string(d.Category))

	text := s.catalog.Category(d.Category)
	msg := s.identity(cfg, d)
	msg.Content = content.Render(content.Pick(text.Leave, s.dice.IntN(max(len(text.Leave), 1))), content.Vars{
		"name":  text.Name,
		"taken": strconv.Itoa(taken),
	})
	return true, s.sender.Send(ctx, cfg.ChannelID, msg)
}

// Despawn removes every duck of a channel without any message.
func (s *Spawner) Despawn(channelID string) int {
	removed := s.registry.Clear(channelID)
	for _, d := range removed {
		metrics.DucksResolved.WithLabelValues(string(d.Category), string(OutcomeCleared)).Inc()
	}
	return len(removed)
}

func (s *Spawner) announcement(cfg domain.ChannelConfig, d *Duck) Message {
	text := s.catalog.Category(d.Category)
	faces := s.catalog.Faces
	if cfg.UseEmojis {
		faces = s.catalog.EmojiFaces
	}
	vars := content.Vars{
		"trace": content.Pick(s.catalog.Traces, d.Cosmetics.Trace),
		"face":  content.Pick(faces, d.Cosmetics.Face),
		"shout": content.Pick(s.catalog.Shouts, d.Cosmetics.Shout),
		"name":  text.Name,
	}
	if q := d.Quiz(); q != nil {
		vars["question"] = q.Question
	}
	msg := s.identity(cfg, d)
	msg.Content = content.Render(text.Spawn, vars)
	return msg
}

func (s *Spawner) identity(cfg domain.ChannelConfig, d *Duck) Message {
	if !cfg.UseWebhooks || len(s.catalog.Identities) == 0 {
		return Message{}
	}
	id := s.catalog.Identities[d.Cosmetics.Identity%len(s.catalog.Identities)]
	return Message{Username: id.Name, AvatarURL: id.Avatar}
}

func (s *Spawner) newQuiz() *Quiz {
	a := s.dice.IntN(QuizOperandMax) + 1
	b := s.dice.IntN(QuizOperandMax) + 1
	switch s.dice.IntN(3) {
	case 0:
		return &Quiz{Question: fmt.Sprintf("%d + %d", a, b), Answer: a + b}
	case 1:
		return &Quiz{Question: fmt.Sprintf("%d - %d", a, b), Answer: a - b}
	default:
		return &Quiz{Question: fmt.Sprintf("%d × %d", a, b), Answer: a * b}
	}
}
