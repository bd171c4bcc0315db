package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Channel errors
	ErrMsgChannelNotFound    = "channel not found"
	ErrMsgChannelUnavailable = "channel unavailable"
	ErrMsgChannelDisabled    = "channel disabled"

	// Player errors
	ErrMsgPlayerNotFound       = "player not found"
	ErrMsgNotEnoughExperience  = "not enough experience"
	ErrMsgMagazinesFull        = "magazines full"
	ErrMsgInvalidChannelConfig = "invalid channel config"

	// Duck errors
	ErrMsgUnknownCategory      = "unknown duck category"
	ErrMsgInvalidSnapshotEntry = "invalid snapshot entry"

	// Shop errors
	ErrMsgShopClosed   = "shop is closed"
	ErrMsgUnknownItem  = "unknown shop item"
	ErrMsgLoopRunning  = "spawn loop already running"
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrChannelNotFound    = errors.New(ErrMsgChannelNotFound)
	ErrChannelUnavailable = errors.New(ErrMsgChannelUnavailable)
	ErrChannelDisabled    = errors.New(ErrMsgChannelDisabled)

	ErrPlayerNotFound       = errors.New(ErrMsgPlayerNotFound)
	ErrNotEnoughExperience  = errors.New(ErrMsgNotEnoughExperience)
	ErrMagazinesFull        = errors.New(ErrMsgMagazinesFull)
	ErrInvalidChannelConfig = errors.New(ErrMsgInvalidChannelConfig)

	ErrUnknownCategory      = errors.New(ErrMsgUnknownCategory)
	ErrInvalidSnapshotEntry = errors.New(ErrMsgInvalidSnapshotEntry)

	ErrShopClosed   = errors.New(ErrMsgShopClosed)
	ErrUnknownItem  = errors.New(ErrMsgUnknownItem)
	ErrLoopRunning  = errors.New(ErrMsgLoopRunning)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
