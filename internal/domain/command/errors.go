package command

import "errors"

// Sentinel kinds for parse errors.
var (
	ErrMissingRankingName = errors.New("missing quoted ranking name")
	ErrMissingAccount     = errors.New("missing account to add")
)
