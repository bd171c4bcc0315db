package discord

import "time"

// Log messages
const (
	LogMsgBotRunning        = "Discord bot is now running"
	LogMsgBotReady          = "Bot is ready"
	LogMsgCloseFailed       = "Failed to close Discord session"
	LogMsgCheckingCommands  = "Checking Discord commands"
	LogMsgCommandsUnchanged = "Commands unchanged, skipping registration"
	LogMsgCommandsUpdated   = "Commands updated successfully"
	LogMsgCommandsForced    = "Force update enabled - replacing all commands"
	LogMsgDeferFailed       = "Failed to send deferred response"
	LogMsgRespondFailed     = "Failed to respond to interaction"
	LogMsgEditFailed        = "Failed to edit interaction response"
	LogMsgCommandFailed     = "Command failed"
	LogMsgWebhookCreated    = "Webhook created"
	LogMsgWebhookFallback   = "Webhook unavailable, falling back to plain message"
	LogMsgStatus            = "Status"
	LogMsgUnknownCommand    = "Unknown command"
	LogMsgAdminCommand      = "Admin command"
)

// Error messages
const (
	ErrMsgFetchCommands  = "failed to fetch existing commands"
	ErrMsgOverwriteCmds  = "failed to overwrite commands"
	ErrMsgWebhookCreate  = "failed to create webhook"
	ErrMsgWebhookList    = "failed to list webhooks"
	ErrMsgWebhookExecute = "failed to execute webhook"
	ErrMsgMessageSend    = "failed to send message"
)

// Webhook cache
const (
	WebhookName     = "DuckHunt"
	webhookCacheTTL = 6 * time.Hour
	webhookCacheCap = 512
)

// Embed colours
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorAdmin   = 0x95a5a6

	FooterDuckHunt      = "DuckHunt"
	FooterDuckHuntAdmin = "DuckHunt Admin"
)
