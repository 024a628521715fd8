package chat

import "errors"

// Sentinel kinds for chat transport errors.
var (
	ErrUnknownChannel = errors.New("unknown channel")
	ErrUnknownMessage = errors.New("unknown message")
)
