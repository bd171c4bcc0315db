package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DuckHunt_Go/internal/shop"
)

// ShopCommand lists the shop, or buys the named item.
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	items := shop.Items()
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(items))
	for _, it := range items {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s (%d exp)", titleCase(it.Name), it.Cost),
			Value: it.Name,
		})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Spend experience on gear",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "What to buy",
				Required:    false,
				Choices:     choices,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		if !deferResponse(s, i) {
			return
		}
		name := stringOption(i, "item")
		if name == "" {
			sendEmbed(s, i, createEmbed("🏪 Shop", shopListing(items), ColorInfo, ""))
			return
		}

		ctx := interactionContext(i)
		user := getInteractionUser(i)
		receipt, err := deps.Shop.Buy(ctx, i.ChannelID, user.ID, name)
		if err != nil {
			slog.Error(LogMsgCommandFailed, "command", "shop", "item", name, "error", err)
			respondFriendlyError(s, i, err)
			return
		}

		msg := fmt.Sprintf(MsgPurchase, titleCase(receipt.Item.Name), receipt.Item.Cost)
		if !receipt.Expires.IsZero() {
			msg = fmt.Sprintf(MsgPurchaseExpires, titleCase(receipt.Item.Name), receipt.Item.Cost, receipt.Expires.Unix())
		}
		if err := editResponse(s, i, msg); err != nil {
			slog.Error(LogMsgEditFailed, "error", err)
		}
	}

	return cmd, handler
}

func shopListing(items []shop.Item) string {
	var b strings.Builder
	b.WriteString(MsgShopListHeader)
	b.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(&b, "\n**%s** `%s` (%d exp): %s", titleCase(it.Name), it.Name, it.Cost, it.Description)
	}
	return b.String()
}
