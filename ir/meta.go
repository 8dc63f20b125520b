package ir

import (
	"fmt"
	"slices"
)

// Shape is the array type hint of a container, controlling how the
// output pipeline renders it.
type Shape string

const (
	ShapeUnset   Shape = ""
	ShapeDefault Shape = "default"
	ShapeArray   Shape = "array"
	ShapeAssoc   Shape = "assoc"
	ShapeKVP     Shape = "kvp"
	ShapeBCArray Shape = "BCarray"
	ShapeBCAssoc Shape = "BCassoc"
	ShapeBCKVP   Shape = "BCkvp"
)

func ParseShape(v string) (Shape, error) {
	switch s := Shape(v); s {
	case ShapeDefault, ShapeArray, ShapeAssoc, ShapeKVP,
		ShapeBCArray, ShapeBCAssoc, ShapeBCKVP:
		return s, nil
	}
	return ShapeUnset, fmt.Errorf("%w: %q", ErrBadShape, v)
}

func (s Shape) IsKVP() bool { return s == ShapeKVP || s == ShapeBCKVP }

// Wire names of metadata fields, as they appear in encoded documents.
const (
	WireShape          = "_type"
	WireKVPKeyName     = "_kvpkeyname"
	WireKVPMerge       = "_kvpmerge"
	WireContent        = "_content"
	WireIndexedTagName = "_element"
	WirePreserveKeys   = "_preservekeys"
	WireSubelements    = "_subelements"
	WireBCSubelements  = "_BC_subelements"
	WireBCBools        = "_BC_bools"
)

func WireNames() []string {
	return []string{
		WireShape,
		WireKVPKeyName,
		WireKVPMerge,
		WireContent,
		WireIndexedTagName,
		WirePreserveKeys,
		WireSubelements,
		WireBCSubelements,
		WireBCBools,
	}
}

func IsWireName(v string) bool {
	return slices.Contains(WireNames(), v)
}

// Meta holds the out-of-band annotations of a container node. It never
// shares a namespace with the node's keys.
type Meta struct {
	Shape          Shape
	KVPKeyName     string
	KVPMerge       bool
	Content        Key
	IndexedTagName string
	PreserveKeys   []Key
	Subelements    []Key
	BCSubelements  []Key
	BCBools        []Key
}

func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	res := *m
	res.PreserveKeys = slices.Clone(m.PreserveKeys)
	res.Subelements = slices.Clone(m.Subelements)
	res.BCSubelements = slices.Clone(m.BCSubelements)
	res.BCBools = slices.Clone(m.BCBools)
	return &res
}

func (m *Meta) IsZero() bool {
	if m == nil {
		return true
	}
	return m.Shape == ShapeUnset && m.KVPKeyName == "" && !m.KVPMerge &&
		m.Content.IsZero() && m.IndexedTagName == "" &&
		len(m.PreserveKeys) == 0 && len(m.Subelements) == 0 &&
		len(m.BCSubelements) == 0 && len(m.BCBools) == 0
}

func (m *Meta) Preserves(k Key) bool {
	return m != nil && containsKey(m.PreserveKeys, k)
}

func (m *Meta) IsSubelement(k Key) bool {
	return m != nil && containsKey(m.Subelements, k)
}

func (m *Meta) IsBCSubelement(k Key) bool {
	return m != nil && containsKey(m.BCSubelements, k)
}

func (m *Meta) IsBCBool(k Key) bool {
	return m != nil && containsKey(m.BCBools, k)
}

func (m *Meta) GetShape() Shape {
	if m == nil {
		return ShapeUnset
	}
	return m.Shape
}

func (m *Meta) GetContent() Key {
	if m == nil {
		return NoKey
	}
	return m.Content
}

// Conflicts returns the wire names of single-valued fields set to
// different values in m and o.
func (m *Meta) Conflicts(o *Meta) []string {
	if m == nil || o == nil {
		return nil
	}
	var res []string
	if m.Shape != ShapeUnset && o.Shape != ShapeUnset && m.Shape != o.Shape {
		res = append(res, WireShape)
	}
	if m.KVPKeyName != "" && o.KVPKeyName != "" && m.KVPKeyName != o.KVPKeyName {
		res = append(res, WireKVPKeyName)
	}
	if !m.Content.IsZero() && !o.Content.IsZero() && m.Content != o.Content {
		res = append(res, WireContent)
	}
	if m.IndexedTagName != "" && o.IndexedTagName != "" && m.IndexedTagName != o.IndexedTagName {
		res = append(res, WireIndexedTagName)
	}
	return res
}

// Merge adds the fields set in o to m. Key lists are unioned in order.
func (m *Meta) Merge(o *Meta) {
	if o == nil {
		return
	}
	if o.Shape != ShapeUnset {
		m.Shape = o.Shape
	}
	if o.KVPKeyName != "" {
		m.KVPKeyName = o.KVPKeyName
	}
	m.KVPMerge = m.KVPMerge || o.KVPMerge
	if !o.Content.IsZero() {
		m.Content = o.Content
	}
	if o.IndexedTagName != "" {
		m.IndexedTagName = o.IndexedTagName
	}
	m.PreserveKeys = addKeys(m.PreserveKeys, o.PreserveKeys...)
	m.Subelements = addKeys(m.Subelements, o.Subelements...)
	m.BCSubelements = addKeys(m.BCSubelements, o.BCSubelements...)
	m.BCBools = addKeys(m.BCBools, o.BCBools...)
}

// Entries returns the set fields of m keyed by wire name.
func (m *Meta) Entries() []KeyVal {
	if m == nil {
		return nil
	}
	var res []KeyVal
	add := func(name string, v *Node) {
		res = append(res, KeyVal{Key: StringKey(name), Val: v})
	}
	keyList := func(ks []Key) *Node {
		vs := make([]*Node, len(ks))
		for i, k := range ks {
			vs[i] = k.Node()
		}
		return FromList(vs)
	}
	if m.Shape != ShapeUnset {
		add(WireShape, FromString(string(m.Shape)))
	}
	if m.KVPKeyName != "" {
		add(WireKVPKeyName, FromString(m.KVPKeyName))
	}
	if m.KVPMerge {
		add(WireKVPMerge, FromBool(true))
	}
	if !m.Content.IsZero() {
		add(WireContent, m.Content.Node())
	}
	if m.IndexedTagName != "" {
		add(WireIndexedTagName, FromString(m.IndexedTagName))
	}
	if len(m.PreserveKeys) != 0 {
		add(WirePreserveKeys, keyList(m.PreserveKeys))
	}
	if len(m.Subelements) != 0 {
		add(WireSubelements, keyList(m.Subelements))
	}
	if len(m.BCSubelements) != 0 {
		add(WireBCSubelements, keyList(m.BCSubelements))
	}
	if len(m.BCBools) != 0 {
		add(WireBCBools, keyList(m.BCBools))
	}
	return res
}

// SetWire sets the field named by a wire name from a node.
func (m *Meta) SetWire(name string, v *Node) error {
	scalar := func() (string, error) {
		switch v.Type {
		case StringType:
			return v.String, nil
		case NumberType:
			if v.Int64 != nil {
				return IntKey(*v.Int64).String(), nil
			}
		}
		return "", fmt.Errorf("%w: %s must be a string, got %s", ErrBadKey, name, v.Type)
	}
	keyList := func() ([]Key, error) {
		if v.IsContainer() {
			res := make([]Key, 0, len(v.Values))
			for _, kv := range v.Values {
				if kv.Type != StringType && kv.Type != NumberType {
					return nil, fmt.Errorf("%w: %s entries must be keys, got %s", ErrBadKey, name, kv.Type)
				}
				res = addKeys(res, kv.ToKey())
			}
			return res, nil
		}
		s, err := scalar()
		if err != nil {
			return nil, err
		}
		return []Key{StringKey(s)}, nil
	}
	var err error
	switch name {
	case WireShape:
		var s string
		if s, err = scalar(); err == nil {
			m.Shape, err = ParseShape(s)
		}
	case WireKVPKeyName:
		m.KVPKeyName, err = scalar()
	case WireKVPMerge:
		m.KVPMerge = Truth(v)
	case WireContent:
		var s string
		if s, err = scalar(); err == nil {
			m.Content = StringKey(s)
		}
	case WireIndexedTagName:
		m.IndexedTagName, err = scalar()
	case WirePreserveKeys:
		m.PreserveKeys, err = keyList()
	case WireSubelements:
		m.Subelements, err = keyList()
	case WireBCSubelements:
		m.BCSubelements, err = keyList()
	case WireBCBools:
		m.BCBools, err = keyList()
	default:
		err = fmt.Errorf("%w: unknown metadata %q", ErrBadKey, name)
	}
	return err
}

// ToKey converts a scalar node to a key.
func (y *Node) ToKey() Key {
	switch y.Type {
	case NumberType:
		if y.Int64 != nil {
			return IntKey(*y.Int64)
		}
		return StringKey(formatFloat(y.Float()))
	case StringType:
		return StringKey(y.String)
	case BoolType:
		if y.Bool {
			return IntKey(1)
		}
		return IntKey(0)
	}
	return StringKey("")
}
