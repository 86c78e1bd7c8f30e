package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrRootMissing      = errors.New("troubleshooting tree has no root node")
	ErrInvalidAnswer    = errors.New("invalid answer")
	ErrInvalidSelection = errors.New("invalid selection")
	ErrIntegrity        = errors.New("data integrity violation")
)
