package result

import (
	"math"

	"github.com/signadot/restree/debug"
	"github.com/signadot/restree/ir"
)

// Size estimates the number of bytes node contributes to output: the
// length of the text form of each scalar. Metadata is not counted.
func Size(node *ir.Node) int {
	switch node.Type {
	case ir.MapType, ir.ArrayType, ir.ObjectType:
		s := 0
		for _, v := range node.Values {
			s += Size(v)
		}
		return s
	case ir.NumberType:
		if node.Float64 != nil && (math.IsInf(*node.Float64, 0) || math.IsNaN(*node.Float64)) {
			if debug.Size() {
				debug.Logf("non-finite float charged %d\n", UnknownSize)
			}
			return UnknownSize
		}
	}
	return len(ir.ScalarString(node))
}
