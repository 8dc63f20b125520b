package libdiff

import (
	"strings"

	"github.com/signadot/restree/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns the changes turning from into to, in document order, or
// nil when they hold the same data. Metadata is not compared.
//
//   - mappings and objects are compared key by key; a key only in from
//     gives a deletion, one only in to an insertion.
//   - sequences are aligned on a summary of their items, so an insertion
//     in the middle does not turn the following items into replacements.
//     Paths into sequences use the index in from, or in to for inserted
//     items.
//   - scalars that differ give a replacement, carrying a patch when both
//     are strings.
//
// A sequence compared with a mapping is compared as a mapping keyed by
// position.
func Diff(from, to *ir.Node) []Change {
	return diff(nil, from, to, nil)
}

func diff(path []ir.Key, from, to *ir.Node, res []Change) []Change {
	switch {
	case from == nil && to == nil:
		return res
	case from == nil || to == nil:
		return append(res, Change{Path: path, From: from, To: to})
	case from.IsContainer() && to.IsContainer():
		if from.Type == ir.ArrayType && to.Type == ir.ArrayType {
			return diffSequence(path, from, to, res)
		}
		return diffKeyed(path, keyed(from), keyed(to), res)
	case ir.Compare(from, to) == 0:
		return res
	}
	c := Change{Path: path, From: from, To: to}
	if from.Type == ir.StringType && to.Type == ir.StringType {
		c.Patch = stringPatch(from.String, to.String)
	}
	return append(res, c)
}

func keyed(node *ir.Node) *ir.Node {
	if node.Type == ir.ArrayType {
		return ir.FromList(node.Values)
	}
	return node
}

func diffKeyed(path []ir.Key, from, to *ir.Node, res []Change) []Change {
	for i, k := range from.Keys {
		res = diff(childPath(path, k), from.Values[i], to.Get(k), res)
	}
	for i, k := range to.Keys {
		if !from.Has(k) {
			res = append(res, Change{Path: childPath(path, k), To: to.Values[i]})
		}
	}
	return res
}

func childPath(path []ir.Key, k ir.Key) []ir.Key {
	return append(path[:len(path):len(path)], k)
}

func stringPatch(from, to string) string {
	dmp := diffpatch.New()
	return dmp.PatchToText(dmp.PatchMake(from, to))
}

// Lines returns a line diff of two texts, each line prefixed by two
// columns: "  " for common lines, "- " for lines only in from and "+ "
// for lines only in to. A missing final newline is added.
func Lines(from, to string) string {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	buf := &strings.Builder{}
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "- "
		case diffpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			buf.WriteString(prefix)
			buf.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				buf.WriteByte('\n')
			}
		}
	}
	return buf.String()
}
