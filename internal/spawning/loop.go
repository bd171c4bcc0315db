// Package spawning runs the once-per-second loop that spawns ducks within
// each channel's daily budget and retires ducks past their time to live.
package spawning

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/DuckHunt_Go/internal/concurrency"
	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
	"github.com/osse101/DuckHunt_Go/internal/repository"
)

// Snapshotter persists live ducks across restarts.
type Snapshotter interface {
	Save(ctx context.Context, registry *ducks.Registry, now time.Time) error
	Restore(ctx context.Context, registry *ducks.Registry, now time.Time) (int, error)
}

// UnavailableSource reports channels that refused a delivery made outside
// the tick.
type UnavailableSource interface {
	Unavailable() []string
}

// StatusSink receives operational status lines.
type StatusSink interface {
	Status(ctx context.Context, text string) error
}

// Settings tune the loop.
type Settings struct {
	MaxSpawnsPerTick int
	MaxLeavesPerTick int
	DriftWarn        time.Duration
	DriftResync      time.Duration
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		MaxSpawnsPerTick: DefaultMaxSpawnsPerTick,
		MaxLeavesPerTick: DefaultMaxLeavesPerTick,
		DriftWarn:        DefaultDriftWarn,
		DriftResync:      DefaultDriftResync,
	}
}

// Deps are the loop's collaborators. Snapshots, Status and Outbox are
// optional.
type Deps struct {
	Channels  repository.Channel
	Players   repository.Player
	Spawner   *ducks.Spawner
	Events    *Events
	Snapshots Snapshotter
	Status    StatusSink
	Outbox    UnavailableSource
	Gate      *concurrency.LockManager
	Catalog   *content.Catalog
	Dice      ducks.Dice
	Clock     Clock
	Settings  Settings
}

// Loop is the spawn scheduler. It is single writer for the budgets; hunter
// actions only remove ducks.
type Loop struct {
	channels  repository.Channel
	players   repository.Player
	spawner   *ducks.Spawner
	registry  *ducks.Registry
	budgets   *Budgets
	events    *Events
	snapshots Snapshotter
	status    StatusSink
	outbox    UnavailableSource
	gate      *concurrency.LockManager
	catalog   *content.Catalog
	dice      ducks.Dice
	clock     Clock
	settings  Settings

	running atomic.Bool
	paused  atomic.Bool

	// tickMu serializes ticks with admin entry points.
	tickMu sync.Mutex
	last   int64

	// Interactions hold admit shared while accepting is set; closing it
	// waits for them to finish.
	admit     sync.RWMutex
	accepting bool
}

// New creates a stopped loop.
func New(deps Deps) *Loop {
	l := &Loop{
		channels:  deps.Channels,
		players:   deps.Players,
		spawner:   deps.Spawner,
		registry:  deps.Spawner.Registry(),
		budgets:   NewBudgets(),
		events:    deps.Events,
		snapshots: deps.Snapshots,
		status:    deps.Status,
		outbox:    deps.Outbox,
		gate:      deps.Gate,
		catalog:   deps.Catalog,
		dice:      deps.Dice,
		clock:     deps.Clock,
		settings:  deps.Settings,
	}
	if l.dice == nil {
		l.dice = ducks.SystemDice()
	}
	if l.clock == nil {
		l.clock = SystemClock{}
	}
	if l.gate == nil {
		l.gate = concurrency.NewLockManager()
	}
	if l.events == nil {
		l.events = NewEvents(l.dice, DefaultWorldEventOdds, "")
	}
	if l.settings == (Settings{}) {
		l.settings = DefaultSettings()
	}
	return l
}

// Budgets exposes the budget tracker.
func (l *Loop) Budgets() *Budgets {
	return l.budgets
}

// Events exposes the world event holder.
func (l *Loop) Events() *Events {
	return l.events
}

// State returns StateRunning or StateStopped.
func (l *Loop) State() string {
	if l.running.Load() {
		return StateRunning
	}
	return StateStopped
}

// Pause stops natural spawning. Ducks still leave.
func (l *Loop) Pause() { l.paused.Store(true) }

// Resume restarts natural spawning.
func (l *Loop) Resume() { l.paused.Store(false) }

// Paused reports whether natural spawning is paused.
func (l *Loop) Paused() bool { return l.paused.Load() }

// Run restores the snapshot, plans budgets and ticks once per second until
// ctx is cancelled, then saves the snapshot.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return domain.ErrLoopRunning
	}
	defer l.running.Store(false)

	log := logger.FromContext(ctx)
	log.Info(LogMsgLoopStarting)

	now := l.clock.Now()
	l.events.Load(ctx, now)
	restored := l.Restore(ctx, now)
	l.Planify(ctx)
	l.reportStatus(ctx, restored)

	target := now.Truncate(time.Second)
	l.tickMu.Lock()
	l.last = target.Unix()
	l.tickMu.Unlock()

	for {
		target = target.Add(time.Second)
		if wait := target.Sub(l.clock.Now()); wait > 0 {
			select {
			case <-ctx.Done():
				return l.stop(ctx)
			case <-l.clock.After(wait):
			}
		} else if ctx.Err() != nil {
			return l.stop(ctx)
		}

		drift := l.clock.Now().Sub(target)
		metrics.LoopDrift.Set(drift.Seconds())
		switch {
		case drift > l.settings.DriftResync:
			log.Error(LogMsgLoopResync, "drift", drift.String())
			metrics.LoopResyncs.Inc()
			target = l.clock.Now().Truncate(time.Second)
		case drift > l.settings.DriftWarn:
			log.Warn(LogMsgLoopDriftWarn, "drift", drift.String())
		}

		l.Tick(ctx, target)
	}
}

// Admit reports whether hunter interactions are accepted, which is the case
// from the snapshot restore until shutdown. On true the caller must call
// done when the interaction is finished.
func (l *Loop) Admit() (done func(), ok bool) {
	l.admit.RLock()
	if !l.accepting {
		l.admit.RUnlock()
		return nil, false
	}
	return l.admit.RUnlock, true
}

func (l *Loop) setAccepting(v bool) {
	l.admit.Lock()
	l.accepting = v
	l.admit.Unlock()
}

func (l *Loop) stop(ctx context.Context) error {
	l.setAccepting(false)
	saveCtx := context.WithoutCancel(ctx)
	if l.snapshots != nil {
		if err := l.snapshots.Save(saveCtx, l.registry, l.clock.Now()); err != nil {
			logger.FromContext(ctx).Error(LogMsgSnapshotFailed, "error", err)
		}
	}
	if err := l.events.Save(saveCtx); err != nil {
		logger.FromContext(ctx).Warn(LogMsgWorldEventSaveFail, "error", err)
	}
	logger.FromContext(ctx).Info(LogMsgLoopStopped, "ducks", l.registry.Count())
	return nil
}

// Restore loads the snapshot into the registry and starts admitting
// interactions. Returns the number of ducks restored.
func (l *Loop) Restore(ctx context.Context, now time.Time) int {
	defer l.setAccepting(true)
	if l.snapshots == nil {
		return 0
	}
	n, err := l.snapshots.Restore(ctx, l.registry, now)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRestoreFailed, "error", err)
	}
	return n
}

// Planify recomputes every enabled channel's budget for the rest of today.
func (l *Loop) Planify(ctx context.Context) error {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()
	return l.planify(ctx, l.clock.Now())
}

func (l *Loop) planify(ctx context.Context, now time.Time) error {
	channels, err := l.channels.ListEnabledChannels(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgListChannelsFailed, "error", err)
		return fmt.Errorf("failed to list channels: %w", err)
	}
	sod := domain.SecondOfDay(now)
	keep := make(map[string]bool, len(channels))
	for _, cfg := range channels {
		keep[cfg.ChannelID] = true
		l.budgets.Plan(cfg, sod)
	}
	l.budgets.Retain(keep)
	metrics.SpawnBudget.Set(float64(l.budgets.Total()))
	logger.FromContext(ctx).Info(LogMsgPlanified, "channels", len(channels), "budget", l.budgets.Total())
	return nil
}

// Tick runs one iteration of the loop for the given target second.
func (l *Loop) Tick(ctx context.Context, now time.Time) {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()

	start := time.Now()
	defer func() { metrics.TickDuration.Observe(time.Since(start).Seconds()) }()

	sec := now.Unix()
	if l.last != 0 {
		if sec/domain.SecondsPerDay != l.last/domain.SecondsPerDay {
			l.freetime(ctx, now)
		}
		if sec/secondsPerHour != l.last/secondsPerHour {
			l.events.Reroll(ctx, HourOf(now))
		}
	}
	l.last = sec

	if l.outbox != nil {
		for _, channelID := range l.outbox.Unavailable() {
			l.disable(ctx, channelID)
		}
	}

	channels, err := l.channels.ListEnabledChannels(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgListChannelsFailed, "error", err)
		return
	}
	if !l.paused.Load() {
		l.spawnPhase(ctx, channels, now)
	}
	l.leavePhase(ctx, channels, now)

	metrics.DucksAlive.Set(float64(l.registry.Count()))
	metrics.SpawnBudget.Set(float64(l.budgets.Total()))
}

func (l *Loop) freetime(ctx context.Context, now time.Time) {
	log := logger.FromContext(ctx)
	channels, err := l.channels.ListEnabledChannels(ctx)
	if err != nil {
		log.Error(LogMsgListChannelsFailed, "error", err)
		return
	}
	log.Info(LogMsgFreetime, "channels", len(channels))
	sod := domain.SecondOfDay(now)
	for _, cfg := range channels {
		l.budgets.Plan(cfg, sod)
		l.giveback(ctx, cfg.ChannelID)
	}
}

// giveback runs with the channel's hunters locked out so an in-flight shot
// cannot overwrite the refill with a stale profile.
func (l *Loop) giveback(ctx context.Context, channelID string) {
	unlock := l.gate.LockChannel(channelID)
	defer unlock()
	if _, err := l.players.Giveback(ctx, channelID); err != nil {
		logger.FromContext(ctx).Error(LogMsgGivebackFailed, "channel_id", channelID, "error", err)
	}
}

func (l *Loop) spawnPhase(ctx context.Context, channels []domain.ChannelConfig, now time.Time) {
	spawned := 0
	sod := domain.SecondOfDay(now)
	for _, cfg := range channels {
		if spawned >= l.settings.MaxSpawnsPerTick {
			logger.FromContext(ctx).Warn(LogMsgSpawnCapReached, "cap", l.settings.MaxSpawnsPerTick)
			return
		}
		l.guard(ctx, PhaseSpawn, cfg.ChannelID, func() error {
			ok, err := l.spawnChannel(ctx, cfg, sod)
			if ok {
				spawned++
			}
			return err
		})
	}
}

func (l *Loop) spawnChannel(ctx context.Context, cfg domain.ChannelConfig, sod int) (bool, error) {
	night := cfg.IsNight(sod)
	budget := l.budgets.Ensure(cfg, sod)
	if !ShouldSpawn(l.dice, cfg.WindowSecondsLeft(sod, night), budget.Left(night)) {
		return false, nil
	}
	if !l.budgets.Consume(cfg.ChannelID, night) {
		return false, nil
	}
	_, err := l.spawner.Spawn(ctx, cfg, l.spawner.Pick(cfg, night), ducks.SpawnOptions{})
	return true, err
}

func (l *Loop) leavePhase(ctx context.Context, channels []domain.ChannelConfig, now time.Time) {
	enabled := make(map[string]domain.ChannelConfig, len(channels))
	for _, cfg := range channels {
		enabled[cfg.ChannelID] = cfg
	}

	all := l.registry.All()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	left := 0
	for _, channelID := range ids {
		cfg, ok := enabled[channelID]
		if !ok {
			l.spawner.Despawn(channelID)
			continue
		}
		ttl := time.Duration(cfg.DucksTimeToLive) * time.Second
		for _, d := range all[channelID] {
			if left >= l.settings.MaxLeavesPerTick {
				logger.FromContext(ctx).Warn(LogMsgLeaveCapReached, "cap", l.settings.MaxLeavesPerTick)
				return
			}
			if d.SpawnedFor(now) <= ttl {
				continue
			}
			if !d.TryAcquire(leaveHolder) {
				continue
			}
			l.guard(ctx, PhaseLeave, channelID, func() error {
				defer d.Release()
				gone, err := l.spawner.Leave(ctx, cfg, d)
				if gone {
					left++
				}
				return err
			})
		}
	}
}

// guard isolates one channel's work: errors and panics are logged and an
// unavailable channel is disabled.
func (l *Loop) guard(ctx context.Context, phase, channelID string, fn func() error) {
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			metrics.ChannelFailures.WithLabelValues(phase).Inc()
			log.Error(LogMsgChannelPanic, "phase", phase, "channel_id", channelID, "panic", r)
		}
	}()
	err := fn()
	if err == nil {
		return
	}
	metrics.ChannelFailures.WithLabelValues(phase).Inc()
	log.Warn(LogMsgChannelFailed, "phase", phase, "channel_id", channelID, "error", err)
	if errors.Is(err, domain.ErrChannelUnavailable) {
		l.disable(ctx, channelID)
	}
}

func (l *Loop) disable(ctx context.Context, channelID string) {
	log := logger.FromContext(ctx)
	if err := l.channels.SetChannelEnabled(ctx, channelID, false); err != nil {
		log.Error(LogMsgDisableFailed, "channel_id", channelID, "error", err)
	}
	l.spawner.Despawn(channelID)
	l.budgets.Drop(channelID)
	log.Warn(LogMsgChannelDisabled, "channel_id", channelID)
}

// ForgetChannel drops the channel's ducks and budget, used when an admin
// disables it.
func (l *Loop) ForgetChannel(channelID string) int {
	l.tickMu.Lock()
	defer l.tickMu.Unlock()
	l.budgets.Drop(channelID)
	return l.spawner.Despawn(channelID)
}

func (l *Loop) reportStatus(ctx context.Context, restored int) {
	if l.status == nil || l.catalog == nil {
		return
	}
	channels, err := l.channels.ListEnabledChannels(ctx)
	if err != nil {
		return
	}
	guilds := make(map[string]bool)
	for _, cfg := range channels {
		guilds[cfg.GuildID] = true
	}
	text := content.Render(l.catalog.Replies.Status, content.Vars{
		"guilds":   strconv.Itoa(len(guilds)),
		"channels": strconv.Itoa(len(channels)),
		"ducks":    strconv.Itoa(restored),
	})
	if err := l.status.Status(ctx, text); err != nil {
		logger.FromContext(ctx).Warn(LogMsgStatusFailed, "error", err)
	}
}
