package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
)

func adminCommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     name,
		Description:              description,
		DefaultMemberPermissions: &adminPermissions,
		Options:                  options,
	}
}

func logAdmin(i *discordgo.InteractionCreate) {
	slog.Info(LogMsgAdminCommand,
		"command", i.ApplicationCommandData().Name,
		"user_id", getInteractionUser(i).ID,
		"channel_id", i.ChannelID)
}

// SpawnCommand spawns a duck on demand.
func SpawnCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cats := domain.AllCategories()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(cats))
	for _, c := range cats {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  titleCase(string(c)),
			Value: string(c),
		})
	}

	cmd := adminCommand("ducks-spawn", "Spawn a duck now",
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "category",
			Description: "Duck category (random if omitted)",
			Required:    false,
			Choices:     choices,
		})

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		d, err := manualSpawn(ctx, deps, i.ChannelID, stringOption(i, "category"))
		if err != nil && d == nil {
			slog.Error(LogMsgCommandFailed, "command", "ducks-spawn", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		if editErr := editResponse(s, i, fmt.Sprintf(MsgSpawned, titleCase(string(d.Category)))); editErr != nil {
			slog.Error(LogMsgEditFailed, "error", editErr)
		}
	}

	return cmd, handler
}

// manualSpawn spawns one duck in an enabled channel. A duck is returned
// alongside a send error when it was registered but not announced.
func manualSpawn(ctx context.Context, deps *Deps, channelID, category string) (*ducks.Duck, error) {
	cfg, err := deps.Channels.GetChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, domain.ErrChannelDisabled
	}

	var c domain.Category
	if category != "" {
		if c, err = domain.ParseCategory(category); err != nil {
			return nil, err
		}
	} else {
		c = deps.Spawner.Pick(*cfg, cfg.IsNight(domain.SecondOfDay(deps.now())))
	}
	return deps.Spawner.Spawn(ctx, *cfg, c, ducks.SpawnOptions{Origin: metrics.OriginManual})
}

// PauseCommand stops natural spawns.
func PauseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-pause", "Stop natural duck spawns")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		deps.Loop.Pause()
		respond(s, i, MsgPaused, false)
	}

	return cmd, handler
}

// ResumeCommand restarts natural spawns.
func ResumeCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-resume", "Resume natural duck spawns")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		deps.Loop.Resume()
		respond(s, i, MsgResumed, false)
	}

	return cmd, handler
}

// PlanifyCommand recomputes today's spawn budgets.
func PlanifyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-planify", "Replan today's spawn budgets")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		if err := deps.Loop.Planify(ctx); err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		channels, err := deps.Channels.ListEnabledChannels(ctx)
		if err != nil {
			respondFriendlyError(s, i, err)
			return
		}
		if err := editResponse(s, i, fmt.Sprintf(MsgPlanified, len(channels))); err != nil {
			slog.Error(LogMsgEditFailed, "error", err)
		}
	}

	return cmd, handler
}

// ListCommand shows the ducks alive in this channel.
func ListCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-list", "List the ducks in this channel")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		if !deferResponse(s, i) {
			return
		}
		list := deps.Spawner.Registry().List(i.ChannelID)
		sendEmbed(s, i, createEmbed("🦆 Ducks", duckListing(list, deps), ColorAdmin, FooterDuckHuntAdmin))
	}

	return cmd, handler
}

func duckListing(list []*ducks.Duck, deps *Deps) string {
	if len(list) == 0 {
		return MsgNoDucks
	}
	now := deps.now()
	var b strings.Builder
	for n, d := range list {
		if n > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s, %d/%d lives, %ds", n+1, titleCase(string(d.Category)),
			d.LivesLeft(), d.LivesTotal(), int(d.SpawnedFor(now).Seconds()))
		if d.Decoy {
			b.WriteString(" (decoy)")
		}
	}
	return b.String()
}

// ClearCommand removes every duck from this channel.
func ClearCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-clear", "Remove every duck from this channel")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		n := deps.Spawner.Despawn(i.ChannelID)
		respond(s, i, fmt.Sprintf(MsgCleared, n), false)
	}

	return cmd, handler
}

// EnableCommand turns the hunt on in this channel, creating its settings
// on first use.
func EnableCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-enable", "Enable ducks in this channel")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		if err := enableChannel(ctx, deps, i.ChannelID, i.GuildID); err != nil {
			slog.Error(LogMsgCommandFailed, "command", "ducks-enable", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		if err := deps.Loop.Planify(ctx); err != nil {
			slog.Warn(LogMsgCommandFailed, "command", "ducks-enable", "error", err)
		}
		if err := editResponse(s, i, MsgEnabled); err != nil {
			slog.Error(LogMsgEditFailed, "error", err)
		}
	}

	return cmd, handler
}

func enableChannel(ctx context.Context, deps *Deps, channelID, guildID string) error {
	_, err := deps.Channels.GetChannel(ctx, channelID)
	if errors.Is(err, domain.ErrChannelNotFound) {
		return deps.Channels.SaveChannel(ctx, domain.DefaultChannelConfig(channelID, guildID))
	}
	if err != nil {
		return err
	}
	return deps.Channels.SetChannelEnabled(ctx, channelID, true)
}

// DisableCommand turns the hunt off and lets the channel's ducks go.
func DisableCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := adminCommand("ducks-disable", "Disable ducks in this channel")

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		logAdmin(i)
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		if err := deps.Channels.SetChannelEnabled(ctx, i.ChannelID, false); err != nil {
			slog.Error(LogMsgCommandFailed, "command", "ducks-disable", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		n := deps.Loop.ForgetChannel(i.ChannelID)
		if err := editResponse(s, i, fmt.Sprintf(MsgDisabled, n)); err != nil {
			slog.Error(LogMsgEditFailed, "error", err)
		}
	}

	return cmd, handler
}
