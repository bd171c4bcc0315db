package ducks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

// HuntDeps are the collaborators of the hunter actions.
type HuntDeps struct {
	Spawner  *Spawner
	Channels repository.Channel
	Players  repository.Player
	Catalog  *content.Catalog
	Dice     Dice
	Events   EventSource
	Gate     *concurrency.LockManager
	Prestige PrestigeCurve
	// Friends are user ids whose hugs are welcome by any duck.
	Friends []string
	Now     func() time.Time
}

// Hunt resolves shoot, hug and reload actions.
type Hunt struct {
	spawner  *Spawner
	registry *Registry
	channels repository.Channel
	players  repository.Player
	catalog  *content.Catalog
	dice     Dice
	events   EventSource
	gate     *concurrency.LockManager
	prestige PrestigeCurve
	friends  map[string]bool
	now      func() time.Time
}

// NewHunt wires the hunter actions.
func NewHunt(deps HuntDeps) *Hunt {
	h := &Hunt{
		spawner:  deps.Spawner,
		registry: deps.Spawner.Registry(),
		channels: deps.Channels,
		players:  deps.Players,
		catalog:  deps.Catalog,
		dice:     deps.Dice,
		events:   deps.Events,
		gate:     deps.Gate,
		prestige: deps.Prestige,
		friends:  make(map[string]bool, len(deps.Friends)),
		now:      deps.Now,
	}
	for _, id := range deps.Friends {
		h.friends[id] = true
	}
	if h.dice == nil {
		h.dice = SystemDice()
	}
	if h.events == nil {
		h.events = StaticEvent(domain.EventNone)
	}
	if h.gate == nil {
		h.gate = concurrency.NewLockManager()
	}
	if h.now == nil {
		h.now = time.Now
	}
	return h
}

// Action identifies the hunter and channel of a command.
type Action struct {
	ChannelID string
	UserID    string
	// Mention is how the hunter is named in replies.
	Mention string
	// Answer is the optional reply to a professor duck's question.
	Answer string
}

// Shoot fires at the first duck of the channel.
func (h *Hunt) Shoot(ctx context.Context, a Action, reply Reply) (Outcome, error) {
	unlock := h.gate.LockUser(a.ChannelID, a.UserID)
	defer unlock()

	cfg, err := h.enabledChannel(ctx, a.ChannelID)
	if err != nil {
		return Outcome{}, err
	}

	d := h.registry.First(a.ChannelID)
	if d == nil {
		return h.shootNothing(ctx, cfg, a, reply)
	}

	if err := d.Acquire(ctx, a.UserID); err != nil {
		return Outcome{}, err
	}
	defer d.Release()

	if !h.registry.Contains(d) || !d.Alive() {
		logger.FromContext(ctx).Debug(LogMsgDuckAlreadyResolved, "duck_id", d.ID.String(), "user_id", a.UserID)
		return h.finish(ctx, reply, Outcome{Kind: OutcomeDuckGone, Duck: d, Text: h.render(h.catalog.Replies.DuckGone, a, nil)})
	}

	p, err := h.players.GetPlayer(ctx, a.ChannelID, a.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.Normalize()
	d.HoldFor(p)
	if out, blocked := h.gunCheck(a, p); blocked {
		return h.finish(ctx, reply, out)
	}

	now := h.now()
	if ok, anger := d.Answer(a.Answer); !ok {
		p.WrongAnswers++
		if err := h.players.SavePlayer(ctx, p); err != nil {
			return Outcome{}, fmt.Errorf("failed to save player: %w", err)
		}
		q := d.Quiz()
		text := h.render(h.catalog.Taunt(anger), a, content.Vars{"question": q.Question})
		return h.finish(ctx, reply, Outcome{Kind: OutcomeWrongAnswer, Duck: d, LivesLeft: d.LivesLeft(), Player: p, Text: text})
	}

	p.Bullets--
	text := h.catalog.Category(d.Category)
	out := Outcome{Duck: d, Player: p}

	switch {
	case WillFrighten(*cfg, d.Category, p, h.events.Current(), now, h.dice):
		if !h.registry.Remove(d) {
			p.Bullets++
			return h.finish(ctx, reply, Outcome{Kind: OutcomeDuckGone, Duck: d, Text: h.render(h.catalog.Replies.DuckGone, a, nil)})
		}
		p.Frightened++
		out.Kind = OutcomeFrightened
		out.Text = h.render(text.Frightened, a, content.Vars{"name": text.Name})
	default:
		out.Damage = Damage(p, d.Category, now, h.dice)
		if out.Damage == 0 {
			p.Resists++
			out.Kind = OutcomeResisted
			out.LivesLeft = d.LivesLeft()
			out.Text = h.render(text.Resisted, a, content.Vars{"name": text.Name})
			break
		}
		out.LivesLeft = d.Hit(out.Damage)
		if out.LivesLeft > 0 {
			p.Hurts++
			out.Kind = OutcomeHurt
			out.Text = h.render(text.Hurt, a, content.Vars{
				"name":       text.Name,
				"lives_left": strconv.Itoa(out.LivesLeft),
				"damage":     strconv.Itoa(out.Damage),
			})
			break
		}
		if !h.registry.Remove(d) {
			p.Bullets++
			return h.finish(ctx, reply, Outcome{Kind: OutcomeDuckGone, Duck: d, Text: h.render(h.catalog.Replies.DuckGone, a, nil)})
		}
		h.kill(ctx, cfg, d, p, a, now, &out)
	}

	if err := h.players.SavePlayer(ctx, p); err != nil {
		return Outcome{}, fmt.Errorf("failed to save player: %w", err)
	}
	return h.finish(ctx, reply, out)
}

func (h *Hunt) kill(ctx context.Context, cfg *domain.ChannelConfig, d *Duck, p *domain.Player, a Action, now time.Time, out *Outcome) {
	alive := d.SpawnedFor(now)
	killsToday := p.RecordKill(d.Category, d.Decoy, domain.DayNumber(now), alive)

	exp := ExpValue(*cfg, d.Category, d.LivesTotal())
	var bonus int64
	if !d.Decoy && h.prestige.Roll(killsToday, h.dice) {
		out.Prestige = true
		bonus += h.prestige.Bonus
	}
	if p.HasPowerup(domain.PowerupClover, now) {
		out.Clover = true
		bonus += cfg.CloverExp
	}
	out.ExpDelta = exp + bonus
	p.Experience += out.ExpDelta
	out.Kind = OutcomeKilled

	text := h.catalog.Category(d.Category)
	out.Text = h.render(text.Kill, a, content.Vars{
		"name":      text.Name,
		"time":      strconv.FormatFloat(alive.Seconds(), 'f', 3, 64),
		"exp_delta": signed(out.ExpDelta),
	})
	if out.Prestige {
		out.Text += " " + content.Render(h.catalog.Replies.Prestige, content.Vars{"bonus": strconv.FormatInt(h.prestige.Bonus, 10)})
	}
	if out.Clover {
		out.Text += " " + content.Render(h.catalog.Replies.Clover, content.Vars{"bonus": strconv.FormatInt(cfg.CloverExp, 10)})
	}

	night := cfg.IsNight(domain.SecondOfDay(now))
	for i := 0; i < TraitsOf(d.Category).SpawnsOnKill; i++ {
		child, err := h.spawner.Spawn(ctx, *cfg, h.spawner.Pick(*cfg, night), SpawnOptions{Origin: metrics.OriginChild})
		if child != nil {
			out.Spawned = append(out.Spawned, child)
		}
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgChildSpawnFailed, "channel_id", cfg.ChannelID, "error", err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgDuckResolved,
		"channel_id", cfg.ChannelID, "duck_id", d.ID.String(), "category", string(d.Category),
		"outcome", string(OutcomeKilled), "user_id", a.UserID, "exp", out.ExpDelta)
}

func (h *Hunt) shootNothing(ctx context.Context, cfg *domain.ChannelConfig, a Action, reply Reply) (Outcome, error) {
	p, err := h.players.GetPlayer(ctx, cfg.ChannelID, a.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.Normalize()
	if out, blocked := h.gunCheck(a, p); blocked {
		return h.finish(ctx, reply, out)
	}
	p.Bullets--
	p.Experience -= NoDuckPenalty
	p.Confiscated = true
	p.ShotsWithoutDuck++
	if err := h.players.SavePlayer(ctx, p); err != nil {
		return Outcome{}, fmt.Errorf("failed to save player: %w", err)
	}
	return h.finish(ctx, reply, Outcome{
		Kind:     OutcomeNoDuck,
		ExpDelta: -NoDuckPenalty,
		Player:   p,
		Text:     h.render(h.catalog.Replies.NoDuckPenalty, a, content.Vars{"exp_delta": signed(-NoDuckPenalty)}),
	})
}

func (h *Hunt) gunCheck(a Action, p *domain.Player) (Outcome, bool) {
	switch {
	case p.Confiscated:
		return Outcome{Kind: OutcomeConfiscated, Player: p, Text: h.render(h.catalog.Replies.Confiscated, a, nil)}, true
	case p.Bullets <= 0:
		return Outcome{Kind: OutcomeNoAmmo, Player: p, Text: h.render(h.catalog.Replies.Empty, a, nil)}, true
	}
	return Outcome{}, false
}

// Hug hugs the first duck of the channel.
func (h *Hunt) Hug(ctx context.Context, a Action, reply Reply) (Outcome, error) {
	unlock := h.gate.LockUser(a.ChannelID, a.UserID)
	defer unlock()

	cfg, err := h.enabledChannel(ctx, a.ChannelID)
	if err != nil {
		return Outcome{}, err
	}

	d := h.registry.First(a.ChannelID)
	if d == nil {
		return h.finish(ctx, reply, Outcome{Kind: OutcomeNoDuck, Text: h.render(h.catalog.Replies.NoDuck, a, nil)})
	}
	if err := d.Acquire(ctx, a.UserID); err != nil {
		return Outcome{}, err
	}
	defer d.Release()

	if !h.registry.Contains(d) || !d.Alive() {
		return h.finish(ctx, reply, Outcome{Kind: OutcomeDuckGone, Duck: d, Text: h.render(h.catalog.Replies.DuckGone, a, nil)})
	}

	p, err := h.players.GetPlayer(ctx, a.ChannelID, a.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.Normalize()
	d.HoldFor(p)

	text := h.catalog.Category(d.Category)
	out := Outcome{Kind: OutcomeHugged, Duck: d, Player: p, LivesLeft: d.LivesLeft()}
	tmpl := text.Hug
	switch {
	case TraitsOf(d.Category).HugReward:
		if !h.registry.Remove(d) {
			return h.finish(ctx, reply, Outcome{Kind: OutcomeDuckGone, Duck: d, Text: h.render(h.catalog.Replies.DuckGone, a, nil)})
		}
		out.Kind = OutcomeBabyHugged
		out.ExpDelta = cfg.BabyHugExp
	case h.friends[a.UserID]:
		out.ExpDelta = cfg.HugPenalty
		tmpl = h.catalog.Replies.FriendHug
	default:
		out.ExpDelta = -cfg.HugPenalty
	}
	p.Experience += out.ExpDelta
	p.Hugs[d.Category]++

	out.Text = h.render(tmpl, a, content.Vars{"name": text.Name, "exp_delta": signed(out.ExpDelta)})
	if err := h.players.SavePlayer(ctx, p); err != nil {
		return Outcome{}, fmt.Errorf("failed to save player: %w", err)
	}
	return h.finish(ctx, reply, out)
}

// Reload refills the gun from a magazine.
func (h *Hunt) Reload(ctx context.Context, a Action) (Outcome, error) {
	unlock := h.gate.LockUser(a.ChannelID, a.UserID)
	defer unlock()

	p, err := h.players.GetPlayer(ctx, a.ChannelID, a.UserID)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to get player: %w", err)
	}
	p.Normalize()

	vars := content.Vars{
		"bullets":       strconv.Itoa(p.Bullets),
		"max_bullets":   strconv.Itoa(domain.MaxBullets),
		"magazines":     strconv.Itoa(p.Magazines),
		"max_magazines": strconv.Itoa(domain.MaxMagazines),
	}
	switch {
	case p.Confiscated:
		return Outcome{Kind: OutcomeConfiscated, Player: p, Text: h.render(h.catalog.Replies.Confiscated, a, nil)}, nil
	case p.Bullets >= domain.MaxBullets:
		return Outcome{Kind: OutcomeGunFull, Player: p, Text: h.render(h.catalog.Replies.GunFull, a, vars)}, nil
	case p.Magazines <= 0:
		return Outcome{Kind: OutcomeNoMagazines, Player: p, Text: h.render(h.catalog.Replies.NoMagazines, a, vars)}, nil
	}

	p.Magazines--
	p.Bullets = domain.MaxBullets
	if err := h.players.SavePlayer(ctx, p); err != nil {
		return Outcome{}, fmt.Errorf("failed to save player: %w", err)
	}
	vars["bullets"] = strconv.Itoa(p.Bullets)
	vars["magazines"] = strconv.Itoa(p.Magazines)
	return Outcome{Kind: OutcomeReloaded, Player: p, Text: h.render(h.catalog.Replies.Reloaded, a, vars)}, nil
}

func (h *Hunt) enabledChannel(ctx context.Context, channelID string) (*domain.ChannelConfig, error) {
	cfg, err := h.channels.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, domain.ErrChannelDisabled
	}
	return cfg, nil
}

func (h *Hunt) finish(ctx context.Context, reply Reply, out Outcome) (Outcome, error) {
	metrics.Shots.WithLabelValues(string(out.Kind)).Inc()
	if out.Removed() && out.Duck != nil {
		metrics.DucksResolved.WithLabelValues(string(out.Duck.Category), string(out.Kind)).Inc()
	}
	if reply != nil {
		if err := reply(ctx, out); err != nil {
			logger.FromContext(ctx).Warn(LogMsgReplyFailed, "outcome", string(out.Kind), "error", err)
		}
	}
	return out, nil
}

func (h *Hunt) render(tmpl string, a Action, vars content.Vars) string {
	all := content.Vars{"hunter": a.Mention}
	for k, v := range vars {
		all[k] = v
	}
	return content.Render(tmpl, all)
}

func signed(n int64) string {
	if n >= 0 {
		return "+" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}
