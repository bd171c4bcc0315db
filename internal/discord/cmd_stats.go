package discord

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// DuckStatsCommand shows the hunter's profile in this channel.
func DuckStatsCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "duckstats",
		Description: "Show your hunting record",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		user := getInteractionUser(i)
		p, err := deps.Players.GetPlayer(ctx, i.ChannelID, user.ID)
		if err != nil {
			slog.Error(LogMsgCommandFailed, "command", "duckstats", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		sendEmbed(s, i, statsEmbed(user.Username, p, deps.now()))
	}

	return cmd, handler
}

func statsEmbed(username string, p *domain.Player, now time.Time) *discordgo.MessageEmbed {
	embed := createEmbed(fmt.Sprintf("🦆 %s's Hunting Record", username), "", ColorInfo, "")

	gun := fmt.Sprintf("%d/%d bullets, %d/%d magazines", p.Bullets, domain.MaxBullets, p.Magazines, domain.MaxMagazines)
	if p.Confiscated {
		gun += " (confiscated)"
	}
	best := "-"
	if p.BestTimeSeconds > 0 {
		best = strconv.FormatFloat(p.BestTimeSeconds, 'f', 3, 64) + "s"
	}

	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Experience", Value: strconv.FormatInt(p.Experience, 10), Inline: true},
		{Name: "Kills", Value: strconv.Itoa(p.TotalKills()), Inline: true},
		{Name: "Best Time", Value: best, Inline: true},
		{Name: "Gun", Value: gun},
		{Name: "Kills by Category", Value: countsByCategory(p.Kills)},
		{Name: "Hugs", Value: countsByCategory(p.Hugs)},
		{Name: "Misses", Value: fmt.Sprintf("%d hurt, %d resisted, %d frightened, %d wild shots, %d wrong answers",
			p.Hurts, p.Resists, p.Frightened, p.ShotsWithoutDuck, p.WrongAnswers)},
	}
	if active := activePowerups(p, now); active != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Powerups", Value: active})
	}
	return embed
}

func countsByCategory(counts map[domain.Category]int) string {
	cats := make([]domain.Category, 0, len(counts))
	for c, n := range counts {
		if n > 0 {
			cats = append(cats, c)
		}
	}
	if len(cats) == 0 {
		return "-"
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	parts := make([]string, 0, len(cats))
	for _, c := range cats {
		parts = append(parts, fmt.Sprintf("%s: %d", titleCase(string(c)), counts[c]))
	}
	return strings.Join(parts, ", ")
}

func activePowerups(p *domain.Player, now time.Time) string {
	var parts []string
	for pw, until := range p.Powerups {
		if until.After(now) {
			parts = append(parts, fmt.Sprintf("%s until <t:%d:R>", titleCase(string(pw)), until.Unix()))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "\n")
}
