package repository

import "errors"

// Sentinel kinds for store errors. Their text is what gets echoed back into
// the originating channel when a command fails.
var (
	ErrConfigChannelNotFound = errors.New("configuration channel not found")
	ErrRankingNotFound       = errors.New("ranking not found")
	ErrRankingAlreadyExists  = errors.New("ranking already exists")
)
