package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrMissingTeams = errors.New("match is missing opponent data")
	ErrInvalidDate  = errors.New("invalid date format")
)
