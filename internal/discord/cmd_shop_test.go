package discord

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/shop"
)

func TestShopCommand_ListsItems(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := ShopCommand()
	require.Len(t, cmd.Options[0].Choices, len(shop.Items()))

	handler(ctx.Session, commandInteraction(cmd.Name), ctx.Deps)

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	desc := (*edit.Embeds)[0].Description
	for _, it := range shop.Items() {
		assert.Contains(t, desc, titleCase(it.Name))
	}
}

func TestShopCommand_BuysMagazine(t *testing.T) {
	ctx := SetupTestContext(t)
	p := domain.NewPlayer("c1", "u1")
	p.Experience = 10
	p.Magazines = 0
	require.NoError(t, ctx.Players.SavePlayer(context.Background(), p))

	cmd, handler := ShopCommand()
	handler(ctx.Session, commandInteraction(cmd.Name, stringOpt("item", shop.ItemMagazine)), ctx.Deps)

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, fmt.Sprintf(MsgPurchase, "Magazine", 3), *edit.Content)

	p, err := ctx.Players.GetPlayer(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.Experience)
	assert.Equal(t, 1, p.Magazines)
}

func TestShopCommand_NotEnoughExperience(t *testing.T) {
	ctx := SetupTestContext(t)
	cmd, handler := ShopCommand()

	handler(ctx.Session, commandInteraction(cmd.Name, stringOpt("item", shop.ItemClover)), ctx.Deps)

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, MsgNotEnoughExp, *edit.Content)
}
