package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/shop"
	"github.com/osse101/DuckHunt_Go/internal/spawning"
	"github.com/osse101/DuckHunt_Go/internal/worker"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// MockRoundTripper implements http.RoundTripper for intercepting requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// CapturedRequest is one Discord API call seen by the mock transport.
type CapturedRequest struct {
	Method string
	Path   string
	Body   []byte
}

// TestContext bundles a Discord session whose HTTP calls are intercepted
// with in-memory game services.
type TestContext struct {
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	Deps         *Deps
	Channels     *repository.MemoryChannels
	Players      *repository.MemoryPlayers
	Registry     *ducks.Registry
	Sender       *ducks.MockSender

	mu       sync.Mutex
	requests []CapturedRequest
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	catalog, err := content.Default()
	require.NoError(t, err)

	ctx := &TestContext{
		Session:  session,
		Channels: repository.NewMemoryChannels(domain.DefaultChannelConfig("c1", "g1")),
		Players:  repository.NewMemoryPlayers(),
		Registry: ducks.NewRegistry(),
		Sender:   &ducks.MockSender{},
	}

	// Capture Discord calls
	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			ctx.capture(req)
			return jsonResponse(http.StatusOK, "{}"), nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	clock := func() time.Time { return testNow }
	event := ducks.StaticEvent(domain.EventNone)
	dice := ducks.SeededDice(7)
	spawner := ducks.NewSpawner(ctx.Registry, ctx.Sender, catalog, dice, event, clock)
	tasks := worker.NewTasks()
	t.Cleanup(func() {
		_ = tasks.Shutdown(context.Background())
	})

	ctx.Deps = &Deps{
		Hunt: ducks.NewHunt(ducks.HuntDeps{
			Spawner:  spawner,
			Channels: ctx.Channels,
			Players:  ctx.Players,
			Catalog:  catalog,
			Dice:     dice,
			Events:   event,
			Prestige: ducks.DefaultPrestigeCurve(),
			Now:      clock,
		}),
		Shop: shop.NewService(shop.Deps{
			Channels: ctx.Channels,
			Players:  ctx.Players,
			Spawner:  spawner,
			Sender:   ctx.Sender,
			Tasks:    tasks,
			Catalog:  catalog,
			Events:   event,
			Now:      clock,
		}),
		Loop: spawning.New(spawning.Deps{
			Channels: ctx.Channels,
			Players:  ctx.Players,
			Spawner:  spawner,
			Catalog:  catalog,
			Dice:     dice,
		}),
		Spawner:  spawner,
		Channels: ctx.Channels,
		Players:  ctx.Players,
		Catalog:  catalog,
		Now:      clock,
	}
	return ctx
}

func (c *TestContext) capture(req *http.Request) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, CapturedRequest{Method: req.Method, Path: req.URL.Path, Body: body})
}

// Requests returns the captured Discord calls in order.
func (c *TestContext) Requests() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CapturedRequest(nil), c.requests...)
}

// LastEdit decodes the most recent interaction response edit.
func (c *TestContext) LastEdit(t *testing.T) *discordgo.WebhookEdit {
	t.Helper()
	reqs := c.Requests()
	for n := len(reqs) - 1; n >= 0; n-- {
		if reqs[n].Method == http.MethodPatch {
			var edit discordgo.WebhookEdit
			require.NoError(t, json.Unmarshal(reqs[n].Body, &edit))
			return &edit
		}
	}
	t.Fatal("no interaction response edit was sent")
	return nil
}

// LastCallback decodes the most recent direct interaction response.
func (c *TestContext) LastCallback(t *testing.T) *discordgo.InteractionResponse {
	t.Helper()
	reqs := c.Requests()
	for n := len(reqs) - 1; n >= 0; n-- {
		if reqs[n].Method == http.MethodPost && bytes.Contains([]byte(reqs[n].Path), []byte("/callback")) {
			var resp discordgo.InteractionResponse
			require.NoError(t, json.Unmarshal(reqs[n].Body, &resp))
			return &resp
		}
	}
	t.Fatal("no interaction callback was sent")
	return nil
}

// commandInteraction builds a guild slash command interaction in channel c1.
func commandInteraction(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "i-1",
			AppID:     "app",
			Token:     "tok",
			Type:      discordgo.InteractionApplicationCommand,
			ChannelID: "c1",
			GuildID:   "g1",
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: options,
			},
			Member: &discordgo.Member{
				User: &discordgo.User{ID: "u1", Username: "Tester"},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}
