package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound  = errors.New("record not found")
	ErrEmptyID   = errors.New("record id must not be empty")
	ErrOpenStore = errors.New("open store failed")
)
