package discord

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DuckHunt_Go/internal/content"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/metrics"
	"github.com/osse101/DuckHunt_Go/internal/repository"
	"github.com/osse101/DuckHunt_Go/internal/shop"
	"github.com/osse101/DuckHunt_Go/internal/spawning"
)

// Deps are the game services command handlers call into.
type Deps struct {
	Hunt     *ducks.Hunt
	Shop     *shop.Service
	Loop     *spawning.Loop
	Spawner  *ducks.Spawner
	Channels repository.Channel
	Players  repository.Player
	Catalog  *content.Catalog
	Now      func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// CommandHandler handles a slash command
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps)

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands map[string]*discordgo.ApplicationCommand
	Handlers map[string]CommandHandler
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands: make(map[string]*discordgo.ApplicationCommand),
		Handlers: make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAll installs every game command.
func (r *CommandRegistry) RegisterAll() {
	for _, c := range []func() (*discordgo.ApplicationCommand, CommandHandler){
		PingCommand,
		BangCommand,
		HugCommand,
		ReloadCommand,
		ShopCommand,
		DuckStatsCommand,
		SpawnCommand,
		PauseCommand,
		ResumeCommand,
		PlanifyCommand,
		ListCommand,
		ClearCommand,
		EnableCommand,
		DisableCommand,
	} {
		r.Register(c())
	}
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Handlers[name]
	if !ok {
		slog.Warn(LogMsgUnknownCommand, "command", name)
		return
	}
	metrics.Commands.WithLabelValues(name).Inc()
	if deps != nil && deps.Loop != nil {
		done, ok := deps.Loop.Admit()
		if !ok {
			respond(s, i, MsgNotReady, true)
			return
		}
		defer done()
	}
	h(s, i, deps)
}

// RegisterCommands registers the registry's commands with Discord, skipping
// the bulk overwrite when the live set already matches.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info(LogMsgCheckingCommands)

	desired := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desired = append(desired, cmd)
	}

	if forceUpdate {
		slog.Info(LogMsgCommandsForced, "count", len(desired))
		if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgOverwriteCmds, err)
		}
		return nil
	}

	existing, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFetchCommands, err)
	}
	if commandsEqual(existing, desired) {
		slog.Info(LogMsgCommandsUnchanged, "count", len(existing))
		return nil
	}

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desired); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgOverwriteCmds, err)
	}
	slog.Info(LogMsgCommandsUpdated, "existing", len(existing), "desired", len(desired))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	byName := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		byName[cmd.Name] = cmd
	}
	for _, want := range desired {
		have, ok := byName[want.Name]
		if !ok || !commandEqual(have, want) {
			return false
		}
	}
	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}
	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}
	if len(a.Options) != len(b.Options) {
		return false
	}
	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}
	return true
}

func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description || a.Required != b.Required {
		return false
	}
	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		// Values come back from the API as JSON, so compare their string forms.
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}
	return true
}
