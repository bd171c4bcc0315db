package ducks

import (
	"sort"
	"sync"
)

// Registry is the set of live ducks, ordered per channel by arrival. The
// head of a channel is the target of ambiguous commands.
type Registry struct {
	mu    sync.RWMutex
	ducks map[string][]*Duck
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ducks: make(map[string][]*Duck)}
}

// Append adds d to the tail of its channel. Returns false if d is already
// registered.
func (r *Registry) Append(d *Duck) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.ducks[d.ChannelID] {
		if other == d || other.ID == d.ID {
			return false
		}
	}
	r.ducks[d.ChannelID] = append(r.ducks[d.ChannelID], d)
	return true
}

// First returns the oldest duck of the channel, or nil.
func (r *Registry) First(channelID string) *Duck {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.ducks[channelID]
	if len(list) == 0 {
		return nil
	}
	return list[0]
}

// Remove unregisters d. Removing an absent duck is a no-op that returns
// false; exactly one caller wins for a given duck.
func (r *Registry) Remove(d *Duck) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.ducks[d.ChannelID]
	for i, other := range list {
		if other != d {
			continue
		}
		rest := make([]*Duck, 0, len(list)-1)
		rest = append(rest, list[:i]...)
		rest = append(rest, list[i+1:]...)
		if len(rest) == 0 {
			delete(r.ducks, d.ChannelID)
		} else {
			r.ducks[d.ChannelID] = rest
		}
		return true
	}
	return false
}

// Contains reports whether d is registered.
func (r *Registry) Contains(d *Duck) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, other := range r.ducks[d.ChannelID] {
		if other == d {
			return true
		}
	}
	return false
}

// List returns a copy of the channel's ducks in arrival order.
func (r *Registry) List(channelID string) []*Duck {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Duck(nil), r.ducks[channelID]...)
}

// Channels returns the channels with at least one duck, sorted.
func (r *Registry) Channels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.ducks))
	for ch := range r.ducks {
		out = append(out, ch)
	}
	sort.Strings(out)
	return out
}

// All returns a copy of every channel's ducks.
func (r *Registry) All() map[string][]*Duck {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]*Duck, len(r.ducks))
	for ch, list := range r.ducks {
		out[ch] = append([]*Duck(nil), list...)
	}
	return out
}

// Clear removes and returns every duck of the channel.
func (r *Registry) Clear(channelID string) []*Duck {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.ducks[channelID]
	delete(r.ducks, channelID)
	return list
}

// Count returns the number of live ducks across all channels.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, list := range r.ducks {
		n += len(list)
	}
	return n
}
