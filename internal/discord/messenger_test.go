package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

const missingAccess = `{"code": 50001, "message": "Missing Access"}`

func TestMessenger_PlainMessage(t *testing.T) {
	ctx := SetupTestContext(t)
	m := NewMessenger(ctx.Session, "")

	require.NoError(t, m.Send(context.Background(), "c1", ducks.Message{Content: "quack"}))

	reqs := ctx.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.True(t, strings.HasSuffix(reqs[0].Path, "/channels/c1/messages"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(reqs[0].Body, &body))
	assert.Equal(t, "quack", body["content"])
}

func TestMessenger_WebhookCreatedOnceAndCached(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.DiscordMocks.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		ctx.capture(req)
		switch {
		case req.Method == http.MethodGet && strings.HasSuffix(req.URL.Path, "/channels/c1/webhooks"):
			return jsonResponse(http.StatusOK, `[]`), nil
		case req.Method == http.MethodPost && strings.HasSuffix(req.URL.Path, "/channels/c1/webhooks"):
			return jsonResponse(http.StatusOK, `{"id": "w1", "token": "wt", "name": "DuckHunt"}`), nil
		}
		return jsonResponse(http.StatusOK, "{}"), nil
	}
	m := NewMessenger(ctx.Session, "")
	msg := ducks.Message{Content: "quack", Username: "Duck", AvatarURL: "https://example.com/a.png"}

	require.NoError(t, m.Send(context.Background(), "c1", msg))
	require.NoError(t, m.Send(context.Background(), "c1", msg))

	var lists, creates, executes int
	for _, r := range ctx.Requests() {
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.Path, "/webhooks"):
			lists++
		case r.Method == http.MethodPost && strings.HasSuffix(r.Path, "/channels/c1/webhooks"):
			creates++
		case strings.HasSuffix(r.Path, "/webhooks/w1/wt"):
			executes++
			var body map[string]any
			require.NoError(t, json.Unmarshal(r.Body, &body))
			assert.Equal(t, "Duck", body["username"])
		}
	}
	assert.Equal(t, 1, lists)
	assert.Equal(t, 1, creates)
	assert.Equal(t, 2, executes)
}

func TestMessenger_WebhookForbiddenFallsBack(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.DiscordMocks.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		ctx.capture(req)
		if strings.Contains(req.URL.Path, "/webhooks") {
			return jsonResponse(http.StatusForbidden, missingAccess), nil
		}
		return jsonResponse(http.StatusOK, "{}"), nil
	}
	m := NewMessenger(ctx.Session, "")

	require.NoError(t, m.Send(context.Background(), "c1", ducks.Message{Content: "quack", Username: "Duck"}))

	reqs := ctx.Requests()
	require.NotEmpty(t, reqs)
	assert.True(t, strings.HasSuffix(reqs[len(reqs)-1].Path, "/channels/c1/messages"))
}

func TestMessenger_ChannelUnavailable(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.DiscordMocks.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		ctx.capture(req)
		return jsonResponse(http.StatusForbidden, missingAccess), nil
	}
	m := NewMessenger(ctx.Session, "")

	err := m.Send(context.Background(), "c1", ducks.Message{Content: "quack"})

	assert.ErrorIs(t, err, domain.ErrChannelUnavailable)
}

func TestMessenger_OtherErrorsPassThrough(t *testing.T) {
	ctx := SetupTestContext(t)
	ctx.DiscordMocks.RoundTripFunc = func(req *http.Request) (*http.Response, error) {
		ctx.capture(req)
		return jsonResponse(http.StatusBadRequest, `{"code": 50035, "message": "Invalid Form Body"}`), nil
	}
	m := NewMessenger(ctx.Session, "")

	err := m.Send(context.Background(), "c1", ducks.Message{Content: "quack"})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrChannelUnavailable)
}

func TestMessenger_StatusWithoutLogChannel(t *testing.T) {
	ctx := SetupTestContext(t)
	m := NewMessenger(ctx.Session, "")

	require.NoError(t, m.Status(context.Background(), "restored 3 ducks"))

	assert.Empty(t, ctx.Requests())
}

func TestMessenger_StatusToLogChannel(t *testing.T) {
	ctx := SetupTestContext(t)
	m := NewMessenger(ctx.Session, "log")

	require.NoError(t, m.Status(context.Background(), "restored 3 ducks"))

	reqs := ctx.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, strings.HasSuffix(reqs[0].Path, "/channels/log/messages"))
}
