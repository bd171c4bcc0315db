package discord

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

func fieldValue(t *testing.T, fields map[string]string, name string) string {
	t.Helper()
	v, ok := fields[name]
	require.True(t, ok, "missing field %q", name)
	return v
}

func TestDuckStatsCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	p := domain.NewPlayer("c1", "u1")
	p.Experience = 42
	p.Kills[domain.CategoryNormal] = 3
	p.Kills[domain.CategoryGolden] = 1
	p.BestTimeSeconds = 2.5
	p.GrantPowerup(domain.PowerupClover, testNow, time.Hour)
	p.GrantPowerup(domain.PowerupSilencer, testNow.Add(-48*time.Hour), time.Hour)
	require.NoError(t, ctx.Players.SavePlayer(context.Background(), p))

	cmd, handler := DuckStatsCommand()
	handler(ctx.Session, commandInteraction(cmd.Name), ctx.Deps)

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Embeds)
	embed := (*edit.Embeds)[0]
	assert.Contains(t, embed.Title, "Tester")

	fields := make(map[string]string, len(embed.Fields))
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	assert.Equal(t, "42", fieldValue(t, fields, "Experience"))
	assert.Equal(t, "4", fieldValue(t, fields, "Kills"))
	assert.Equal(t, "2.500s", fieldValue(t, fields, "Best Time"))
	assert.Equal(t, "Golden: 1, Normal: 3", fieldValue(t, fields, "Kills by Category"))
	assert.Equal(t, "-", fieldValue(t, fields, "Hugs"))

	powerups := fieldValue(t, fields, "Powerups")
	assert.Contains(t, powerups, "Clover")
	assert.NotContains(t, powerups, "Silencer")
}

func TestStatsEmbed_NoPowerups(t *testing.T) {
	embed := statsEmbed("Tester", domain.NewPlayer("c1", "u1"), testNow)

	for _, f := range embed.Fields {
		assert.NotEqual(t, "Powerups", f.Name)
		if f.Name == "Best Time" {
			assert.Equal(t, "-", f.Value)
		}
	}
}
