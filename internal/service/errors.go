package service

import "errors"

var (
	ErrSessionNotFound = errors.New("board not found")
	ErrSessionClosed   = errors.New("board closed")
	ErrUnknownPointer  = errors.New("unknown pointer event")
)
