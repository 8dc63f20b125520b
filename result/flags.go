package result

import (
	"fmt"
	"strings"
)

// Flag modifies insertion and removal.
type Flag int

const (
	// Override replaces an existing value, or an existing content
	// designation.
	Override Flag = 1 << iota
	// AddOnTop places new keys, and path mappings created on the way,
	// first instead of last.
	AddOnTop
	// NoSizeCheck skips the size budget and size accounting.
	NoSizeCheck
	// NoValidate skips string normalization and the non-finite float
	// check. The value is still size checked unless NoSizeCheck is given.
	NoValidate
)

const (
	// Unbounded is the budget of a tree without a size limit.
	Unbounded = -1
	// UnknownSize is the size charged for values with no text form, such
	// as non-finite floats added with NoValidate.
	UnknownSize = 64
)

func (f Flag) has(o Flag) bool { return f&o != 0 }

var flagNames = []struct {
	name string
	flag Flag
}{
	{"override", Override},
	{"top", AddOnTop},
	{"nosize", NoSizeCheck},
	{"novalidate", NoValidate},
}

// ParseFlags combines flags given by name: override, top, nosize and
// novalidate.
func ParseFlags(names ...string) (Flag, error) {
	var res Flag
outer:
	for _, name := range names {
		for _, fn := range flagNames {
			if fn.name == name {
				res |= fn.flag
				continue outer
			}
		}
		return 0, fmt.Errorf("%w: %q", ErrBadFlag, name)
	}
	return res, nil
}

func (f Flag) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}
