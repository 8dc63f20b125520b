// Package format names the wire formats result trees are written in.
package format
