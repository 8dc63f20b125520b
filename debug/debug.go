package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Transform bool
	Size      bool
	Value     bool
	Ops       bool
}

var d *debug

func init() {
	d = &debug{}
	d.Transform = boolEnv("RESTREE_DEBUG_TRANSFORM")
	d.Size = boolEnv("RESTREE_DEBUG_SIZE")
	d.Value = boolEnv("RESTREE_DEBUG_VALUE")
	d.Ops = boolEnv("RESTREE_DEBUG_OPS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Transform() bool {
	return d.Transform
}
func Size() bool {
	return d.Size
}
func Value() bool {
	return d.Value
}
func Ops() bool {
	return d.Ops
}
