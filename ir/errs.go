package ir

import "errors"

var (
	ErrBadShape     = errors.New("bad array type")
	ErrBadKey       = errors.New("bad key")
	ErrNotContainer = errors.New("not a container")
)
