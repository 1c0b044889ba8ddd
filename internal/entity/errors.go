package entity

import "errors"

var (
	ErrNotFound     = errors.New("entity not found")
	ErrLeadNotFound = errors.New("lead not found")
	ErrInvalidSort  = errors.New("invalid sort property")
)
