package libdiff

import (
	"strings"

	"github.com/signadot/restree/ir"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// diffSequence aligns the items of from and to by their summaries:
//
//  1. every item gets a summary: its type for containers and multi-line
//     strings, its type and value for other scalars
//  2. each distinct summary is mapped to a rune and the rune strings of
//     both sequences are diffed
//  3. aligned items are compared recursively; deletions directly
//     followed by insertions are paired up and compared the same way
func diffSequence(path []ir.Key, from, to *ir.Node, res []Change) []Change {
	m := map[string]rune{}
	fromRunes := summaries(m, from)
	toRunes := summaries(m, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	var deleted []int
	flush := func() {
		for _, i := range deleted {
			res = append(res, Change{Path: childPath(path, ir.IntKey(int64(i))), From: from.Values[i]})
		}
		deleted = deleted[:0]
	}
	for i := range diffs {
		n := len([]rune(diffs[i].Text))
		switch diffs[i].Type {
		case diffpatch.DiffDelete:
			for range n {
				deleted = append(deleted, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(deleted) != 0 {
					di := deleted[0]
					deleted = deleted[1:]
					res = diff(childPath(path, ir.IntKey(int64(di))), from.Values[di], to.Values[ti], res)
				} else {
					res = append(res, Change{Path: childPath(path, ir.IntKey(int64(ti))), To: to.Values[ti]})
				}
				ti++
			}
			flush()
		case diffpatch.DiffEqual:
			flush()
			for range n {
				res = diff(childPath(path, ir.IntKey(int64(fi))), from.Values[fi], to.Values[ti], res)
				fi++
				ti++
			}
		}
	}
	flush()
	return res
}

// summaries maps the items of node to runes, allocating a new rune in m
// for each summary not seen before. Runes skip the surrogate range so
// every one survives conversion to a string.
func summaries(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summary(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			if r >= 0xD800 {
				r += 0x800
			}
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

func summary(node *ir.Node) string {
	switch {
	case node.IsContainer(), node.Type == ir.NullType:
		return node.Type.String()
	case node.Type == ir.StringType && strings.Contains(node.String, "\n"):
		return node.Type.String() + "/m"
	}
	return node.Type.String() + "-" + ir.ScalarString(node)
}
