package gomap

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"unicode/utf8"

	"github.com/signadot/restree/debug"
	"github.com/signadot/restree/ir"

	"github.com/goccy/go-yaml"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/unicode/norm"
)

// Serializer is implemented by values which know how to represent
// themselves in a result tree. SerializeForResult must return a scalar,
// slice, map, *ir.Node or nil; the returned value is validated like any
// other.
type Serializer interface {
	SerializeForResult() any
}

// ToIR converts a Go value to a result tree node, validating it on the
// way.
//
// Serializers are asked for their representation first, then
// fmt.Stringers and errors become strings. Structs without either
// capability become assoc mappings of their exported fields. Streams,
// channels and functions are rejected.
func ToIR(v any, opts ...MapOption) (*ir.Node, error) {
	m := &mapper{visited: map[uintptr]string{}}
	for _, opt := range opts {
		opt(&m.mapConfig)
	}
	return m.toIR(v, "")
}

type mapper struct {
	mapConfig
	visited map[uintptr]string
}

func (m *mapper) toIR(v any, path string) (*ir.Node, error) {
	if v == nil {
		return ir.Null(), nil
	}
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return ir.Null(), nil
		}
		ptr := val.Pointer()
		if prevPath, seen := m.visited[ptr]; seen {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("circular reference detected: %s -> %s", prevPath, path),
				Err:       ErrUnsupportedValue,
			}
		}
		m.visited[ptr] = path
		defer delete(m.visited, ptr)
	}

	switch x := v.(type) {
	case *ir.Node:
		return m.fromNode(x, path)
	case ir.Node:
		return m.fromNode(&x, path)
	case Serializer:
		return m.serialize(x, path)
	case fmt.Stringer:
		return m.fromString(x.String()), nil
	case error:
		return m.fromString(x.Error()), nil
	case io.Reader, io.Writer, io.Closer:
		return nil, &MarshalError{
			FieldPath: path,
			Message:   "cannot add resource (stream) to result",
			Err:       ErrUnsupportedValue,
		}
	case yaml.MapSlice:
		return m.fromMapSlice(x, path)
	case string:
		return m.fromString(x), nil
	case []byte:
		return m.fromString(string(x)), nil
	case bool:
		return ir.FromBool(x), nil
	}
	return m.fromReflect(val, path)
}

func (m *mapper) fromReflect(val reflect.Value, path string) (*ir.Node, error) {
	switch val.Kind() {
	case reflect.Bool:
		return ir.FromBool(val.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ir.FromInt(val.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := val.Uint()
		if u > math.MaxInt64 {
			return ir.FromFloat(float64(u)), nil
		}
		return ir.FromInt(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return m.fromFloat(val.Float(), path)
	case reflect.String:
		return m.fromString(val.String()), nil
	case reflect.Pointer, reflect.Interface:
		return m.toIR(val.Elem().Interface(), path)
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.Type().Elem().Kind() == reflect.Uint8 {
			return m.fromString(string(val.Bytes())), nil
		}
		return m.fromSlice(val, path)
	case reflect.Map:
		return m.fromMap(val, path)
	case reflect.Struct:
		return m.fromStruct(val, path)
	}
	return nil, &MarshalError{
		FieldPath: path,
		Message:   fmt.Sprintf("cannot add %s to result", val.Kind()),
		Err:       ErrUnsupportedValue,
	}
}

func (m *mapper) serialize(s Serializer, path string) (*ir.Node, error) {
	out := s.SerializeForResult()
	if isObject(out) {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("%T.SerializeForResult() returned an object of class %T", s, out),
			Err:       ErrUnserializable,
		}
	}
	res, err := m.toIR(out, path)
	if err != nil {
		return nil, &MarshalError{
			FieldPath: path,
			Message:   fmt.Sprintf("%T.SerializeForResult() returned an invalid value: %v", s, err),
			Err:       fmt.Errorf("%w: %w", ErrUnserializable, err),
		}
	}
	if debug.Value() {
		debug.Logf("%T serialized as %s\n", s, res.Type)
	}
	return res, nil
}

// isObject reports whether v is a value with its own behavior rather
// than plain data.
func isObject(v any) bool {
	switch v.(type) {
	case nil, *ir.Node, ir.Node, yaml.MapSlice:
		return false
	case Serializer, fmt.Stringer, error:
		return true
	}
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

func (m *mapper) fromString(s string) *ir.Node {
	if m.noValidate {
		return ir.FromString(s)
	}
	return ir.FromString(NormalizeString(s))
}

// NormalizeString replaces invalid UTF-8 with U+FFFD and puts s into
// Unicode normalization form C.
func NormalizeString(s string) string {
	if !utf8.ValidString(s) {
		fixed, err := xunicode.UTF8.NewDecoder().String(s)
		if err == nil {
			s = fixed
		}
	}
	return norm.NFC.String(s)
}

func (m *mapper) fromFloat(f float64, path string) (*ir.Node, error) {
	if !m.noValidate && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return nil, &MarshalError{FieldPath: path, Err: ErrNonFinite}
	}
	return ir.FromFloat(f), nil
}

// fromNode copies a node, validating its scalars. Sequences and objects
// are stored as mappings.
func (m *mapper) fromNode(node *ir.Node, path string) (*ir.Node, error) {
	res := node.Clone()
	var err error
	res.Visit(func(kp []ir.Key, n *ir.Node) bool {
		if err != nil {
			return false
		}
		switch n.Type {
		case ir.StringType:
			if !m.noValidate {
				n.String = NormalizeString(n.String)
			}
		case ir.NumberType:
			if n.Float64 != nil {
				_, err = m.fromFloat(*n.Float64, joinPath(path, ir.FormatPath(kp)))
			}
		case ir.ArrayType:
			vs := n.Values
			*n = *ir.FromList(vs).WithMeta(n.Meta)
		case ir.ObjectType:
			n.Type = ir.MapType
			if n.Meta.GetShape() == ir.ShapeUnset {
				n.EnsureMeta().Shape = ir.ShapeAssoc
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (m *mapper) fromSlice(val reflect.Value, path string) (*ir.Node, error) {
	n := val.Len()
	elts := make([]*ir.Node, n)
	for i := 0; i < n; i++ {
		elt, err := m.toIR(val.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		elts[i] = elt
	}
	return ir.FromList(elts), nil
}

// fromMap converts a Go map, ordering entries by key since Go maps have
// no order of their own.
func (m *mapper) fromMap(val reflect.Value, path string) (*ir.Node, error) {
	if val.IsNil() {
		return ir.Null(), nil
	}
	type entry struct {
		key ir.Key
		val reflect.Value
	}
	entries := make([]entry, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		k, err := ir.KeyOf(iter.Key().Interface())
		if err != nil {
			return nil, &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("map keys must be strings or integers, got %s", val.Type().Key()),
				Err:       errors.Join(ErrUnsupportedValue, err),
			}
		}
		entries = append(entries, entry{key: k, val: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return a.key.Compare(b.key)
	})
	res := ir.NewMap()
	for _, e := range entries {
		v, err := m.toIR(e.val.Interface(), joinPath(path, e.key.String()))
		if err != nil {
			return nil, err
		}
		res.Set(e.key, v)
	}
	return res, nil
}

func (m *mapper) fromMapSlice(ms yaml.MapSlice, path string) (*ir.Node, error) {
	res := ir.NewMap()
	for _, item := range ms {
		k, err := ir.KeyOf(item.Key)
		if err != nil {
			return nil, &MarshalError{FieldPath: path, Err: errors.Join(ErrUnsupportedValue, err)}
		}
		v, err := m.toIR(item.Value, joinPath(path, k.String()))
		if err != nil {
			return nil, err
		}
		res.Set(k, v)
	}
	return res, nil
}

// fromStruct converts a struct to an assoc mapping of its exported
// fields in declaration order. Embedded structs are flattened.
func (m *mapper) fromStruct(val reflect.Value, path string) (*ir.Node, error) {
	res := ir.NewMap()
	res.Meta = &ir.Meta{Shape: ir.ShapeAssoc}
	if err := m.addFields(res, val, path); err != nil {
		return nil, err
	}
	return res, nil
}

func (m *mapper) addFields(res *ir.Node, val reflect.Value, path string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fv := val.Field(i)
		if field.Anonymous && fv.Kind() == reflect.Struct {
			if err := m.addFields(res, fv, path); err != nil {
				return err
			}
			continue
		}
		if !field.IsExported() || !fv.CanInterface() {
			continue
		}
		fi, err := structField(field)
		if err != nil {
			return &MarshalError{FieldPath: path, Message: err.Error(), Err: ErrUnsupportedValue}
		}
		if fi.skip || (fi.omitEmpty && fv.IsZero()) {
			continue
		}
		k := ir.StringKey(fi.name)
		if res.Has(k) {
			return &MarshalError{
				FieldPath: path,
				Message:   fmt.Sprintf("field name conflict: %q", fi.name),
				Err:       ErrUnsupportedValue,
			}
		}
		node, err := m.toIR(fv.Interface(), joinPath(path, fi.name))
		if err != nil {
			return err
		}
		res.Set(k, node)
	}
	return nil
}

func joinPath(path, elt string) string {
	switch {
	case path == "":
		return elt
	case elt == "":
		return path
	}
	return path + "." + elt
}
