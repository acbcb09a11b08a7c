package store

import "errors"

// Sentinel errors for the messaging core. The user-facing ones carry the
// exact strings the clients assert on, so handlers and the socket layer can
// pass them through unchanged. Anything not listed here is a store failure
// and is surfaced verbatim.
var (
	ErrInvalidID      = errors.New("Invalid chat ID")
	ErrInvalidCursor  = errors.New("Invalid before cursor")
	ErrEmptyContent   = errors.New("Message content is required")
	ErrChatNotFound   = errors.New("Chat not found or access denied")
	ErrBlockedByPeer  = errors.New("You cannot send messages to this user due to being blocked by them.")
	ErrHasBlockedPeer = errors.New("You cannot send messages to this user as you have blocked them.")
	ErrSelfChat       = errors.New("You cannot start a chat with yourself")
	ErrSelfBlock      = errors.New("You cannot block yourself")
	ErrPeerNotFound   = errors.New("Recipient not found")
)
