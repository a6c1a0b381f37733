package repo_errors

import "errors"

var (
	ErrNotFound     = errors.New("entity not found")
	ErrInvalidState = errors.New("listing state does not allow the operation")
	ErrBidTooLow    = errors.New("bid amount does not exceed the current leader")
)
