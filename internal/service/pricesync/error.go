package pricesync

import "errors"

// Poller errors
var (
	ErrInvalidSchedule = errors.New("invalid cron expression")
	ErrAlreadyStarted  = errors.New("poller already started")
)
