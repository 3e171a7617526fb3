package services

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrNotOwner     = errors.New("not the owner")
	ErrInvalidInput = errors.New("invalid input")
)
