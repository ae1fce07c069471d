package services

import "errors"

var (
	ErrAuthentication       = errors.New("invalid username or password")
	ErrDuplicateUsername    = errors.New("username already exists")
	ErrDataIntegrity        = errors.New("credential has no matching profile")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrThreadNotFound       = errors.New("thread not found")
	ErrNoSession            = errors.New("no signed-in user")
	ErrInvalidTarget        = errors.New("invalid target")
	ErrInvalidInput         = errors.New("invalid input")
)
