package model

import "errors"

var (
	ErrMalformedPosition = errors.New("malformed position")
	ErrMalformedSquare   = errors.New("malformed square")
	ErrMalformedMove     = errors.New("malformed move notation")
	ErrMalformedValue    = errors.New("malformed value")
)
