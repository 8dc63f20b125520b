package ir

import (
	"cmp"
	"fmt"
	"reflect"
	"strconv"
)

type keyKind uint8

const (
	noKey keyKind = iota
	strKey
	intKey
)

// Key is a mapping key, either a string or an integer. The zero Key is
// NoKey, which requests a positional append where a key is expected.
type Key struct {
	kind keyKind
	str  string
	num  int64
}

var NoKey = Key{}

func IntKey(i int64) Key {
	return Key{kind: intKey, num: i}
}

// StringKey returns a string key, or an integer key when s is the
// canonical decimal form of an int64, so that "3" and 3 name the same slot.
func StringKey(s string) Key {
	if i, ok := canonicalInt(s); ok {
		return IntKey(i)
	}
	return Key{kind: strKey, str: s}
}

func canonicalInt(s string) (int64, bool) {
	n := len(s)
	if n == 0 || n > 20 {
		return 0, false
	}
	d := s
	if d[0] == '-' {
		d = d[1:]
		if d == "" || d == "0" {
			return 0, false
		}
	}
	if len(d) > 1 && d[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(d); i++ {
		if d[i] < '0' || d[i] > '9' {
			return 0, false
		}
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// KeyOf converts v to a Key. nil gives NoKey; strings, integer kinds and
// Keys are accepted.
func KeyOf(v any) (Key, error) {
	switch x := v.(type) {
	case nil:
		return NoKey, nil
	case Key:
		return x, nil
	case string:
		return StringKey(x), nil
	case int:
		return IntKey(int64(x)), nil
	case int64:
		return IntKey(x), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntKey(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return NoKey, fmt.Errorf("%w: %d overflows int64", ErrBadKey, u)
		}
		return IntKey(int64(u)), nil
	case reflect.String:
		return StringKey(rv.String()), nil
	}
	return NoKey, fmt.Errorf("%w: %T", ErrBadKey, v)
}

// Path builds a key path from strings and integers, panicking on any
// other type.
func Path(vs ...any) []Key {
	res := make([]Key, len(vs))
	for i, v := range vs {
		k, err := KeyOf(v)
		if err != nil {
			panic(err)
		}
		res[i] = k
	}
	return res
}

func (k Key) IsZero() bool { return k.kind == noKey }
func (k Key) IsInt() bool  { return k.kind == intKey }

func (k Key) Int() (int64, bool) {
	return k.num, k.kind == intKey
}

func (k Key) String() string {
	switch k.kind {
	case intKey:
		return strconv.FormatInt(k.num, 10)
	case strKey:
		return k.str
	}
	return ""
}

func (k Key) Equal(o Key) bool {
	return k == o
}

// Compare orders NoKey first, then integer keys numerically, then string
// keys lexically.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.rank(), o.rank()); c != 0 {
		return c
	}
	switch k.kind {
	case intKey:
		return cmp.Compare(k.num, o.num)
	case strKey:
		return cmp.Compare(k.str, o.str)
	}
	return 0
}

func (k Key) rank() int {
	switch k.kind {
	case intKey:
		return 1
	case strKey:
		return 2
	}
	return 0
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(d []byte) error {
	*k = StringKey(string(d))
	return nil
}

// Node returns the key as a scalar node.
func (k Key) Node() *Node {
	switch k.kind {
	case intKey:
		return FromInt(k.num)
	case strKey:
		return FromString(k.str)
	}
	return Null()
}

func FormatPath(path []Key) string {
	buf := make([]byte, 0, 16*len(path))
	for i, k := range path {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, k.String()...)
	}
	return string(buf)
}

func containsKey(ks []Key, k Key) bool {
	for _, x := range ks {
		if x == k {
			return true
		}
	}
	return false
}

func addKeys(ks []Key, add ...Key) []Key {
	for _, k := range add {
		if !containsKey(ks, k) {
			ks = append(ks, k)
		}
	}
	return ks
}

func removeKeys(ks []Key, rm ...Key) []Key {
	var res []Key
	for _, k := range ks {
		if !containsKey(rm, k) {
			res = append(res, k)
		}
	}
	return res
}
