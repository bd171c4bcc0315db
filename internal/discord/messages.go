package discord

// Friendly message constants for Discord responses
const (
	MsgChannelDisabled = "🦆 **Ducks are not enabled here.**\nAn admin can turn them on with `/ducks-enable`."
	MsgChannelNotFound = "🦆 **This channel has no hunt yet.**\nAn admin can start one with `/ducks-enable`."
	MsgShopClosed      = "🏪 **The shop is closed right now.**\nCome back after the current event."
	MsgUnknownItem     = "❓ **Unknown Item**\nSee `/shop` for what is on sale."
	MsgNotEnoughExp    = "⚠️ **Not Enough Experience!**\nGo shoot some ducks first."
	MsgMagazinesFull   = "🎒 **Magazines Full**\nYou cannot carry any more magazines."
	MsgInvalidCategory = "❓ **Unknown duck category**"
	MsgGenericError    = "❌ Something went wrong."
	MsgPong            = "Pong! 🏓"
	MsgNotReady        = "⏳ DuckHunt is starting up or shutting down. Try again in a moment."
	MsgPaused          = "⏸️ Natural spawns paused."
	MsgResumed         = "▶️ Natural spawns resumed."
	MsgPlanified       = "📅 Spawn budgets replanned for %d channels."
	MsgCleared         = "🧹 Removed %d ducks."
	MsgEnabled         = "✅ Ducks enabled in this channel."
	MsgDisabled        = "🚫 Ducks disabled in this channel. %d ducks flew away."
	MsgSpawned         = "🦆 Spawned a %s duck."
	MsgNoDucks         = "No ducks around."
	MsgPurchase        = "🛒 Bought **%s** for %d exp."
	MsgPurchaseExpires = "🛒 Bought **%s** for %d exp. Active until <t:%d:R>."
	MsgShopListHeader  = "Spend experience with `/shop item:<name>`."
)
