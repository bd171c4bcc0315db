package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

// DuckReader is the read side of the live duck registry.
type DuckReader interface {
	All() map[string][]*ducks.Duck
	List(channelID string) []*ducks.Duck
}

// EventReader exposes the current world event.
type EventReader interface {
	Current() domain.WorldEvent
	Hour() int64
}

// LoopReader exposes the spawn loop's run state.
type LoopReader interface {
	State() string
	Paused() bool
}

// DuckView is the public shape of one live duck.
type DuckView struct {
	ID         string          `json:"id"`
	Category   domain.Category `json:"category"`
	Decoy      bool            `json:"decoy"`
	LivesTotal int             `json:"lives"`
	LivesLeft  int             `json:"lives_left"`
	SpawnedFor float64         `json:"spawned_for"`
	Question   string          `json:"question,omitempty"`
}

// ChannelDucks groups the live ducks of one channel.
type ChannelDucks struct {
	ChannelID string     `json:"channel_id"`
	Ducks     []DuckView `json:"ducks"`
}

// DucksSummary is the body of the all-channels listing.
type DucksSummary struct {
	Total    int            `json:"total"`
	Channels []ChannelDucks `json:"channels"`
}

// EventView is the body of the world event endpoint.
type EventView struct {
	Event domain.WorldEvent `json:"event"`
	Hour  int64             `json:"hour"`
}

// LoopView is the body of the loop state endpoint.
type LoopView struct {
	State  string `json:"state"`
	Paused bool   `json:"paused"`
}

func viewDucks(list []*ducks.Duck, now time.Time) []DuckView {
	out := make([]DuckView, 0, len(list))
	for _, d := range list {
		v := DuckView{
			ID:         d.ID.String(),
			Category:   d.Category,
			Decoy:      d.Decoy,
			LivesTotal: d.LivesTotal(),
			LivesLeft:  d.LivesLeft(),
			SpawnedFor: d.SpawnedFor(now).Seconds(),
		}
		if q := d.Quiz(); q != nil {
			v.Question = q.Question
		}
		out = append(out, v)
	}
	return out
}

// HandleListDucks lists every live duck grouped by channel.
// @Summary List live ducks
// @Description Every duck currently registered, grouped by channel
// @Tags ducks
// @Produce json
// @Success 200 {object} DataResponse{data=DucksSummary} "Live ducks"
// @Router /api/v1/ducks [get]
func HandleListDucks(reg DuckReader, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := now()
		all := reg.All()
		summary := DucksSummary{Channels: make([]ChannelDucks, 0, len(all))}
		for ch, list := range all {
			summary.Total += len(list)
			summary.Channels = append(summary.Channels, ChannelDucks{ChannelID: ch, Ducks: viewDucks(list, t)})
		}
		sort.Slice(summary.Channels, func(i, j int) bool {
			return summary.Channels[i].ChannelID < summary.Channels[j].ChannelID
		})
		respondJSON(w, http.StatusOK, DataResponse{Data: summary})
	}
}

// HandleChannelDucks lists the live ducks of one channel, oldest first.
// @Summary List a channel's live ducks
// @Tags ducks
// @Produce json
// @Param channelID path string true "Discord channel id"
// @Success 200 {object} DataResponse{data=ChannelDucks} "Live ducks, oldest first"
// @Failure 400 {object} ErrorResponse "Missing channel id"
// @Router /api/v1/channels/{channelID}/ducks [get]
func HandleChannelDucks(reg DuckReader, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channelID := chi.URLParam(r, "channelID")
		if channelID == "" {
			respondError(w, http.StatusBadRequest, ErrMsgMissingChannelID)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: ChannelDucks{
			ChannelID: channelID,
			Ducks:     viewDucks(reg.List(channelID), now()),
		}})
	}
}

// HandleEvent reports the current world event.
// @Summary Current world event
// @Tags ducks
// @Produce json
// @Success 200 {object} DataResponse{data=EventView} "Active event and the hour it was rolled"
// @Router /api/v1/event [get]
func HandleEvent(events EventReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: EventView{Event: events.Current(), Hour: events.Hour()}})
	}
}

// HandleLoop reports whether the spawn loop is running or paused.
// @Summary Spawn loop state
// @Tags ducks
// @Produce json
// @Success 200 {object} DataResponse{data=LoopView} "Loop state"
// @Router /api/v1/loop [get]
func HandleLoop(loop LoopReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, DataResponse{Data: LoopView{State: loop.State(), Paused: loop.Paused()}})
	}
}
