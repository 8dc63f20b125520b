package script

import (
	"fmt"

	"github.com/signadot/restree/debug"
	"github.com/signadot/restree/gomap"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/ir/kpath"
	"github.com/signadot/restree/result"
)

// Op is one tree operation. Which fields are used depends on Op:
//
//	add, content          path name value flags
//	remove                path name flags
//	field                 path name flags
//	limit                 name value
//	type                  path shape kvpKeyName recursive
//	element               path tag recursive
//	preserve, unpreserve  path keys
//	subelements           path keys
//	unsubelements         path keys
//	bcsubelements, bcbools path keys
//	reset, nosize, size
//
// Path is a key path as parsed by kpath.Parse. An absent name appends
// positionally for add, and removes the last path element for remove.
type Op struct {
	Op         string   `json:"op"`
	Path       string   `json:"path,omitempty"`
	Name       any      `json:"name,omitempty"`
	Value      any      `json:"value,omitempty"`
	Flags      []string `json:"flags,omitempty"`
	Shape      string   `json:"shape,omitempty"`
	KVPKeyName string   `json:"kvpKeyName,omitempty"`
	Tag        string   `json:"tag,omitempty"`
	Keys       []any    `json:"keys,omitempty"`
	Recursive  bool     `json:"recursive,omitempty"`
}

func (op *Op) String() string {
	return fmt.Sprintf("%s %s %v", op.Op, op.Path, op.Name)
}

func (op *Op) check() error {
	switch op.Op {
	case "add", "remove", "content", "field", "type", "element",
		"preserve", "unpreserve", "subelements", "unsubelements",
		"bcsubelements", "bcbools", "reset", "nosize", "size":
	case "limit":
		if _, ok := op.Name.(string); !ok {
			return fmt.Errorf("limit needs a module name, got %T", op.Name)
		}
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
	if _, err := result.ParseFlags(op.Flags...); err != nil {
		return err
	}
	if op.Op == "type" {
		if _, err := ir.ParseShape(op.Shape); err != nil {
			return err
		}
	}
	return nil
}

// Apply performs op on t.
func (op *Op) Apply(t *result.Tree) error {
	if debug.Ops() {
		debug.Logf("op %s\n", op)
	}
	path, err := kpath.Parse(op.Path)
	if err != nil {
		return err
	}
	name, err := ir.KeyOf(op.Name)
	if err != nil {
		return err
	}
	flags, err := result.ParseFlags(op.Flags...)
	if err != nil {
		return err
	}
	keys := make([]ir.Key, len(op.Keys))
	for i, k := range op.Keys {
		if keys[i], err = ir.KeyOf(k); err != nil {
			return err
		}
	}

	switch op.Op {
	case "add":
		_, err = t.AddValue(path, name, op.Value, flags)
	case "remove":
		_, err = t.RemoveValue(path, name, flags)
	case "content":
		_, err = t.AddContentValue(path, name, op.Value, flags)
	case "field":
		err = t.AddContentField(path, name, flags)
	case "limit":
		var limit *ir.Node
		if limit, err = gomap.ToIR(op.Value); err != nil {
			return err
		}
		if limit.Int64 == nil {
			return fmt.Errorf("limit must be an integer, got %s", limit.Type)
		}
		err = t.AddParsedLimit(name.String(), int(*limit.Int64))
	case "type":
		if op.Recursive {
			err = t.AddArrayTypeRecursive(path, ir.Shape(op.Shape), op.KVPKeyName)
		} else {
			err = t.AddArrayType(path, ir.Shape(op.Shape), op.KVPKeyName)
		}
	case "element":
		if op.Recursive {
			err = t.AddIndexedTagNameRecursive(path, op.Tag)
		} else {
			err = t.AddIndexedTagName(path, op.Tag)
		}
	case "preserve":
		err = t.AddPreserveKeysList(path, keys...)
	case "unpreserve":
		err = t.RemovePreserveKeysList(path, keys...)
	case "subelements":
		err = t.AddSubelementsList(path, keys...)
	case "unsubelements":
		err = t.RemoveSubelementsList(path, keys...)
	case "bcsubelements":
		err = t.AddBCSubelementsList(path, keys...)
	case "bcbools":
		err = t.AddBCBools(path, keys...)
	case "reset":
		t.Reset()
	case "nosize":
		t.DisableSizeCheck()
	case "size":
		t.EnableSizeCheck()
	default:
		err = fmt.Errorf("%w: unknown op %q", ErrScript, op.Op)
	}
	return err
}
