// Package libdiff compares result documents.
package libdiff

import (
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/ir/kpath"
)

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return "replace"
}

// Change is one difference between two documents. From is nil for
// insertions and To is nil for deletions.
type Change struct {
	Path []ir.Key
	From *ir.Node
	To   *ir.Node
	// Patch is a character level patch, in diff-match-patch text form,
	// turning a From string into a To string.
	Patch string
}

func (c *Change) Op() Op {
	switch {
	case c.From == nil:
		return Insert
	case c.To == nil:
		return Delete
	}
	return Replace
}

// Node renders c as a mapping with keys op, path, from, to and patch,
// leaving out the empty ones.
func (c *Change) Node() *ir.Node {
	kvs := []ir.KeyVal{
		{Key: ir.StringKey("op"), Val: ir.FromString(c.Op().String())},
		{Key: ir.StringKey("path"), Val: ir.FromString(kpath.String(c.Path))},
	}
	if c.From != nil {
		kvs = append(kvs, ir.KeyVal{Key: ir.StringKey("from"), Val: c.From})
	}
	if c.To != nil {
		kvs = append(kvs, ir.KeyVal{Key: ir.StringKey("to"), Val: c.To})
	}
	if c.Patch != "" {
		kvs = append(kvs, ir.KeyVal{Key: ir.StringKey("patch"), Val: ir.FromString(c.Patch)})
	}
	return ir.FromKeyVals(kvs)
}

// ToNode renders a list of changes as a sequence.
func ToNode(changes []Change) *ir.Node {
	vs := make([]*ir.Node, len(changes))
	for i := range changes {
		vs[i] = changes[i].Node()
	}
	return ir.FromSlice(vs)
}

// Reverse returns the changes turning to back into from.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		res[i] = Change{Path: c.Path, From: c.To, To: c.From}
		if c.Patch != "" {
			res[i].Patch = stringPatch(c.To.String, c.From.String)
		}
	}
	return res
}
