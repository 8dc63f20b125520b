// Package kpath parses textual key paths into result tree paths.
//
// Syntax:
//   - "a.b" → keys "a" then "b"
//   - "a[0]" → key "a" then integer key 0
//   - "a.0" → also integer key 0; canonical decimal strings are integer keys
//   - "a.\"x.y\"" → key "x.y"; double quoted fields use Go string escapes
//   - "" → the root path
package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/restree/ir"
)

var ErrBadPath = errors.New("bad path")

// Parse parses a key path string.
func Parse(kpath string) ([]ir.Key, error) {
	if kpath == "" {
		return nil, nil
	}
	var res []ir.Key
	frag := kpath
	first := true
	for len(frag) != 0 {
		var (
			k   ir.Key
			err error
		)
		switch frag[0] {
		case '.':
			if first {
				return nil, fmt.Errorf("%w: %q: leading '.'", ErrBadPath, kpath)
			}
			k, frag, err = parseKField(frag[1:])
		case '[':
			i := strings.IndexByte(frag[1:], ']')
			if i == -1 {
				return nil, fmt.Errorf("%w: %q: expected '[' <index> ']'", ErrBadPath, kpath)
			}
			k, err = parseKIndex(frag[1 : i+1])
			frag = frag[i+2:]
		default:
			if !first {
				return nil, fmt.Errorf("%w: %q: expected '.' or '[', got %q", ErrBadPath, kpath, frag[0])
			}
			k, frag, err = parseKField(frag)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrBadPath, kpath, err)
		}
		res = append(res, k)
		first = false
	}
	return res, nil
}

func parseKIndex(is string) (ir.Key, error) {
	i, err := strconv.ParseInt(is, 10, 64)
	if err != nil {
		return ir.NoKey, fmt.Errorf("invalid index %q", is)
	}
	return ir.IntKey(i), nil
}

// parseKField parses a field name, stopping at '.' or '['.
func parseKField(frag string) (ir.Key, string, error) {
	if len(frag) == 0 {
		return ir.NoKey, "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] == '"' {
		n, err := findQuotedStringEnd(frag)
		if err != nil {
			return ir.NoKey, "", err
		}
		field, err := strconv.Unquote(frag[:n])
		if err != nil {
			return ir.NoKey, "", fmt.Errorf("invalid quoted field: %w", err)
		}
		return ir.StringKey(field), frag[n:], nil
	}
	i := strings.IndexAny(frag, ".[")
	if i == -1 {
		return ir.StringKey(frag), "", nil
	}
	if i == 0 {
		return ir.NoKey, "", fmt.Errorf("empty field")
	}
	return ir.StringKey(frag[:i]), frag[i:], nil
}

// findQuotedStringEnd returns the length of the leading double quoted
// string in d, closing quote included.
func findQuotedStringEnd(d string) (int, error) {
	escaped := false
	for i := 1; i < len(d); i++ {
		switch {
		case escaped:
			escaped = false
		case d[i] == '\\':
			escaped = true
		case d[i] == '"':
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quoted field")
}

// String formats a path so that Parse gives it back.
func String(path []ir.Key) string {
	buf := bytes.NewBuffer(nil)
	for i, k := range path {
		if k.IsInt() {
			fmt.Fprintf(buf, "[%s]", k)
			continue
		}
		if i > 0 {
			buf.WriteByte('.')
		}
		field := k.String()
		if quoteField(field) {
			buf.WriteString(strconv.Quote(field))
		} else {
			buf.WriteString(field)
		}
	}
	return buf.String()
}

func quoteField(v string) bool {
	return v == "" || strings.ContainsAny(v, ".[]\"\\ \t\n")
}
