package gomap

// MapOption is an option for controlling conversion of Go values.
type MapOption func(*mapConfig)

type mapConfig struct {
	noValidate bool
}

// NoValidate skips string normalization and the finiteness check on
// floats. Unrepresentable values are still rejected.
func NoValidate(v bool) MapOption {
	return func(c *mapConfig) { c.noValidate = v }
}
