package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seededRegistry(t *testing.T) *ducks.Registry {
	t.Helper()
	reg := ducks.NewRegistry()
	states := []ducks.State{
		{ID: uuid.New(), ChannelID: "b", Category: domain.CategoryNormal, SpawnedAt: testNow.Add(-30 * time.Second), LivesTotal: 1, LivesLeft: 1},
		{ID: uuid.New(), ChannelID: "a", Category: domain.CategorySuper, SpawnedAt: testNow.Add(-90 * time.Second), LivesTotal: 5, LivesLeft: 2},
		{
			ID: uuid.New(), ChannelID: "a", Category: domain.CategoryProfessor, SpawnedAt: testNow, LivesTotal: 1, LivesLeft: 1,
			Quiz: &ducks.Quiz{Question: "2 + 2", Answer: 4},
		},
	}
	for _, s := range states {
		d, err := ducks.FromState(s)
		require.NoError(t, err)
		require.True(t, reg.Append(d))
	}
	return reg
}

func clock() time.Time { return testNow }

type fakeEvents struct{}

func (fakeEvents) Current() domain.WorldEvent { return domain.EventGoldenHour }
func (fakeEvents) Hour() int64 { return 476000 }

type fakeLoop struct{ paused bool }

func (fakeLoop) State() string { return "running" }
func (l fakeLoop) Paused() bool { return l.paused }

func decodeData(t *testing.T, body []byte, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHandleListDucks(t *testing.T) {
	w := httptest.NewRecorder()
	HandleListDucks(seededRegistry(t), clock).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/ducks", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var summary DucksSummary
	decodeData(t, w.Body.Bytes(), &summary)

	assert.Equal(t, 3, summary.Total)
	require.Len(t, summary.Channels, 2)
	assert.Equal(t, "a", summary.Channels[0].ChannelID)
	assert.Equal(t, "b", summary.Channels[1].ChannelID)

	super := summary.Channels[0].Ducks[0]
	assert.Equal(t, domain.CategorySuper, super.Category)
	assert.Equal(t, 5, super.LivesTotal)
	assert.Equal(t, 2, super.LivesLeft)
	assert.InDelta(t, 90, super.SpawnedFor, 1e-9)
	assert.Equal(t, "2 + 2", summary.Channels[0].Ducks[1].Question)
}

func TestHandleChannelDucks(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/v1/channels/{channelID}/ducks", HandleChannelDucks(seededRegistry(t), clock))

	t.Run("known channel", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/channels/b/ducks", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got ChannelDucks
		decodeData(t, w.Body.Bytes(), &got)
		assert.Equal(t, "b", got.ChannelID)
		require.Len(t, got.Ducks, 1)
		assert.Equal(t, domain.CategoryNormal, got.Ducks[0].Category)
	})

	t.Run("no ducks", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/channels/zzz/ducks", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var got ChannelDucks
		decodeData(t, w.Body.Bytes(), &got)
		assert.Empty(t, got.Ducks)
	})
}

func TestHandleEventAndLoop(t *testing.T) {
	w := httptest.NewRecorder()
	HandleEvent(fakeEvents{}).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/event", nil))
	var ev EventView
	decodeData(t, w.Body.Bytes(), &ev)
	assert.Equal(t, domain.EventGoldenHour, ev.Event)

	w = httptest.NewRecorder()
	HandleLoop(fakeLoop{paused: true}).ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/loop", nil))
	var lv LoopView
	decodeData(t, w.Body.Bytes(), &lv)
	assert.Equal(t, "running", lv.State)
	assert.True(t, lv.Paused)
}
