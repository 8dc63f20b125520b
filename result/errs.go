package result

import "errors"

var (
	ErrConflictingScalar    = errors.New("conflicting value")
	ErrConflictingContent   = errors.New("conflicting content element")
	ErrConflictingMergeKeys = errors.New("conflicting keys")
	ErrInvalidPath          = errors.New("invalid path")
	ErrUnnamedContent       = errors.New("content value must be named")
	ErrRemoveRoot           = errors.New("cannot remove the data root")
	ErrBadFlag              = errors.New("unknown flag")
)
