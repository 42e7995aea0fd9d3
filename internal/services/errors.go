package services

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrNotConnected      = errors.New("strava account is not connected")
	ErrNoRefreshToken    = errors.New("no refresh token available")
	ErrUpstreamAuth      = errors.New("upstream authorization failed")
	ErrUpstream          = errors.New("upstream request failed")
	ErrGeneratorDisabled = errors.New("plan generator is not configured")
)
