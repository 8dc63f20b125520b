package ir

import (
	"math"
	"strconv"
)

// Truth reports whether a node is truthy: non-empty containers and
// strings, non-zero numbers and true.
func Truth(node *Node) bool {
	switch node.Type {
	case MapType, ObjectType, ArrayType:
		return len(node.Values) != 0
	case StringType:
		return node.String != "" && node.String != "0"
	case NumberType:
		return node.Float() != 0
	case BoolType:
		return node.Bool
	case NullType:
		return false
	default:
		panic("type")
	}
}

// ScalarString renders a scalar the way it is written into text output:
// true is "1", false and null are empty.
func ScalarString(node *Node) string {
	switch node.Type {
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return strconv.FormatInt(*node.Int64, 10)
		}
		return formatFloat(node.Float())
	case BoolType:
		if node.Bool {
			return "1"
		}
	}
	return ""
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NAN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
