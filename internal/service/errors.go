package service

import "errors"

// One sentinel per failure kind; every operation fails with exactly one of
// these, never a generic error.
var (
	ErrUnauthorized    = errors.New("caller doesn't have admin rights for this operation")
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidState    = errors.New("operation isn't allowed in the listing's current lifecycle state")
	ErrInvalidInput    = errors.New("required field is empty or price is negative")
	ErrBidTooLow       = errors.New("bid must exceed the current highest bid or the start price")
)
