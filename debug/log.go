package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/signadot/restree/ir"
)

// Logf writes a debug message to stderr, rendering nodes and generic
// JSON values readably.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = nodeString(x)
		case []ir.Key:
			args[i] = ir.FormatPath(x)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func nodeString(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.Type.IsLeaf() {
		return fmt.Sprintf("%s(%s)", n.Type, ir.ScalarString(n))
	}
	parts := make([]string, len(n.Values))
	for i, kv := range n.KeyVals() {
		parts[i] = kv.Key.String() + ": " + nodeString(kv.Val)
	}
	return n.Type.String() + "{" + strings.Join(parts, ", ") + "}"
}
