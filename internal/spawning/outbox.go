package spawning

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
	"github.com/osse101/DuckHunt_Go/internal/worker"
)

// Outbox delivers loop announcements off the tick goroutine. Messages for
// one channel keep their order. Channels whose delivery failed with
// domain.ErrChannelUnavailable are collected for the next tick to disable.
type Outbox struct {
	sender ducks.Sender
	pool   *worker.Pool

	mu   sync.Mutex
	gone map[string]struct{}
}

// NewOutbox wraps sender. The pool must be started by the caller.
func NewOutbox(sender ducks.Sender, pool *worker.Pool) *Outbox {
	return &Outbox{
		sender: sender,
		pool:   pool,
		gone:   make(map[string]struct{}),
	}
}

// Send queues msg and returns at once. A full queue drops the message.
func (o *Outbox) Send(ctx context.Context, channelID string, msg ducks.Message) error {
	ok := o.pool.Submit(channelID, func(jobCtx context.Context) error {
		err := o.sender.Send(jobCtx, channelID, msg)
		if errors.Is(err, domain.ErrChannelUnavailable) {
			o.mu.Lock()
			o.gone[channelID] = struct{}{}
			o.mu.Unlock()
		}
		return err
	})
	if !ok {
		metrics.OutboxDropped.Inc()
		logger.FromContext(ctx).Warn(LogMsgOutboxDropped, "channel_id", channelID)
	}
	return nil
}

// Unavailable returns and forgets the channels that refused a delivery since
// the last call.
func (o *Outbox) Unavailable() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.gone) == 0 {
		return nil
	}
	ids := make([]string, 0, len(o.gone))
	for id := range o.gone {
		ids = append(ids, id)
	}
	clear(o.gone)
	sort.Strings(ids)
	return ids
}
