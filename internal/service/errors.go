package service

import "errors"

var (
	ErrSessionActive   = errors.New("a session is already running")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidInput    = errors.New("invalid input")
)
