package result

import (
	"fmt"
	"log/slog"

	"github.com/signadot/restree/debug"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/transform"
)

// Tree is a result document under construction, with a byte budget on
// the data added to it.
//
// A Tree is owned by one caller at a time; it is not safe for concurrent
// use.
type Tree struct {
	root         *ir.Node
	size         int
	maxSize      int
	checkingSize bool
	reporter     ErrorReporter
	log          *slog.Logger
}

type Option func(*Tree)

func WithReporter(r ErrorReporter) Option {
	return func(t *Tree) { t.reporter = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// New returns an empty tree limited to maxSize bytes, or unlimited when
// maxSize is Unbounded.
func New(maxSize int, opts ...Option) *Tree {
	t := &Tree{maxSize: maxSize, checkingSize: true}
	for _, opt := range opts {
		opt(t)
	}
	t.Reset()
	return t
}

// Reset empties the tree and its size count.
func (t *Tree) Reset() {
	t.root = ir.NewMap().WithMeta(&ir.Meta{Shape: ir.ShapeAssoc})
	t.size = 0
}

func (t *Tree) SetErrorReporter(r ErrorReporter) {
	t.reporter = r
}

// Size returns the size of the data added so far.
func (t *Tree) Size() int {
	return t.size
}

func (t *Tree) MaxSize() int {
	return t.maxSize
}

func (t *Tree) DisableSizeCheck() {
	t.checkingSize = false
}

func (t *Tree) EnableSizeCheck() {
	t.checkingSize = true
}

// SerializeForResult lets a tree be added to another tree as a value.
func (t *Tree) SerializeForResult() any {
	return t.root.Clone()
}

// path returns the mapping at path, creating missing mappings at the
// end of their parents, or first with AddOnTop.
func (t *Tree) path(path []ir.Key, flags Flag) (*ir.Node, error) {
	cur := t.root
	for i, k := range path {
		next := cur.Get(k)
		if next == nil || next.Type == ir.NullType {
			next = ir.NewMap()
			if flags.has(AddOnTop) {
				cur.Prepend(k, next)
			} else {
				cur.Set(k, next)
			}
		}
		if !next.Type.IsKeyed() {
			return nil, fmt.Errorf("%w: path %s is not a mapping", ErrInvalidPath, ir.FormatPath(path[:i+1]))
		}
		cur = next
	}
	return cur, nil
}

// lookup is like path but returns nil instead of creating mappings.
func (t *Tree) lookup(path []ir.Key) (*ir.Node, error) {
	cur := t.root
	for i, k := range path {
		next := cur.Get(k)
		if next == nil || next.Type == ir.NullType {
			return nil, nil
		}
		if !next.Type.IsKeyed() {
			return nil, fmt.Errorf("%w: path %s is not a mapping", ErrInvalidPath, ir.FormatPath(path[:i+1]))
		}
		cur = next
	}
	return cur, nil
}

// AddValue adds value under name in the mapping at path, creating the
// path as needed. It returns false without adding anything when the
// value would exceed the size budget; the condition is reported to the
// tree's ErrorReporter.
func (t *Tree) AddValue(path []ir.Key, name ir.Key, value any, flags Flag) (bool, error) {
	arr, err := t.path(path, flags)
	if err != nil {
		return false, err
	}
	node, err := toNode(value, flags)
	if err != nil {
		return false, err
	}
	checking := t.checkingSize && !flags.has(NoSizeCheck)
	var size int
	if checking {
		size = Size(node)
		if t.maxSize >= 0 && t.size+size > t.maxSize {
			t.truncated(path, name, size)
			return false, nil
		}
	}
	if err := setNode(arr, name, node, flags); err != nil {
		return false, err
	}
	if checking {
		t.size += size
		if debug.Size() {
			debug.Logf("added %d at %s.%s, size %d\n", size, path, name, t.size)
		}
	}
	return true, nil
}

func (t *Tree) truncated(path []ir.Key, name ir.Key, size int) {
	w := &Warning{
		Module: "result",
		Code:   "truncatedresult",
		Path:   append([]ir.Key(nil), path...),
		Key:    name,
		Limit:  t.maxSize,
	}
	if t.log != nil {
		t.log.Debug("value rejected by size limit", "path", w.Where(), "size", size, "total", t.size, "limit", t.maxSize)
	}
	if t.reporter != nil {
		t.reporter.AddWarning(w)
	}
}

// RemoveValue removes name from the mapping at path and returns it, or
// nil if it was absent. With name ir.NoKey the last path element is
// removed instead. Missing mappings along path are created.
func (t *Tree) RemoveValue(path []ir.Key, name ir.Key, flags Flag) (*ir.Node, error) {
	if name.IsZero() {
		if len(path) == 0 {
			return nil, ErrRemoveRoot
		}
		name = path[len(path)-1]
		path = path[:len(path)-1]
	}
	arr, err := t.path(path, flags)
	if err != nil {
		return nil, err
	}
	ret := UnsetValue(arr, name)
	if ret != nil && t.checkingSize && !flags.has(NoSizeCheck) {
		t.size = max(t.size-Size(ret), 0)
	}
	return ret, nil
}

// AddContentValue designates name as the content key of the mapping at
// path and adds value under it.
func (t *Tree) AddContentValue(path []ir.Key, name ir.Key, value any, flags Flag) (bool, error) {
	if err := t.AddContentField(path, name, flags); err != nil {
		return false, err
	}
	return t.AddValue(path, name, value, flags)
}

func (t *Tree) AddContentField(path []ir.Key, name ir.Key, flags Flag) error {
	arr, err := t.path(path, flags)
	if err != nil {
		return err
	}
	return SetContentField(arr, name, flags)
}

// AddParsedLimit records the limit applied to a module's results under
// limits.<module>.
func (t *Tree) AddParsedLimit(module string, limit int) error {
	_, err := t.AddValue(ir.Path("limits"), ir.StringKey(module), limit, Override|NoSizeCheck)
	return err
}

func (t *Tree) AddArrayType(path []ir.Key, shape ir.Shape, kvpKeyName string) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetArrayType(n, shape, kvpKeyName)
	})
}

func (t *Tree) AddArrayTypeRecursive(path []ir.Key, shape ir.Shape, kvpKeyName string) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetArrayTypeRecursive(n, shape, kvpKeyName)
	})
}

func (t *Tree) AddIndexedTagName(path []ir.Key, tag string) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetIndexedTagName(n, tag)
	})
}

func (t *Tree) AddIndexedTagNameRecursive(path []ir.Key, tag string) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetIndexedTagNameRecursive(n, tag)
	})
}

func (t *Tree) AddSubelementsList(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetSubelementsList(n, keys...)
	})
}

func (t *Tree) RemoveSubelementsList(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.UnsetSubelementsList(n, keys...)
	})
}

func (t *Tree) AddPreserveKeysList(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetPreserveKeysList(n, keys...)
	})
}

func (t *Tree) RemovePreserveKeysList(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.UnsetPreserveKeysList(n, keys...)
	})
}

func (t *Tree) withPath(path []ir.Key, f func(*ir.Node) error) error {
	n, err := t.path(path, 0)
	if err != nil {
		return err
	}
	return f(n)
}

// GetResultData returns a transformed copy of the value at path. It
// returns nil when the path does not exist; nothing is created. Scalars
// are returned as they are stored.
func (t *Tree) GetResultData(path []ir.Key, spec *transform.Spec) (*ir.Node, error) {
	if len(path) == 0 {
		return transform.Apply(t.root, spec)
	}
	arr, err := t.lookup(path[:len(path)-1])
	if arr == nil || err != nil {
		return nil, err
	}
	v := arr.Get(path[len(path)-1])
	switch {
	case v == nil || v.Type == ir.NullType:
		return nil, nil
	case v.IsContainer():
		return transform.Apply(v, spec)
	}
	return v.Clone(), nil
}

func (t *Tree) AddBCSubelementsList(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetBCSubelementsList(n, keys...)
	})
}

func (t *Tree) AddBCBools(path []ir.Key, keys ...ir.Key) error {
	return t.withPath(path, func(n *ir.Node) error {
		return ir.SetBCBools(n, keys...)
	})
}
