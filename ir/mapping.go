package ir

import "slices"

// Index returns the position of k in a keyed node, or -1.
func (y *Node) Index(k Key) int {
	return slices.Index(y.Keys, k)
}

func (y *Node) Get(k Key) *Node {
	i := y.Index(k)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

func (y *Node) Has(k Key) bool {
	return y.Index(k) != -1
}

// Set stores v under k, in place when k is present and at the end
// otherwise.
func (y *Node) Set(k Key, v *Node) {
	if i := y.Index(k); i != -1 {
		y.Values[i] = v
		return
	}
	y.Keys = append(y.Keys, k)
	y.Values = append(y.Values, v)
}

// Prepend stores v under k as the first entry, removing any previous
// entry for k.
func (y *Node) Prepend(k Key, v *Node) {
	y.Delete(k)
	y.Keys = slices.Insert(y.Keys, 0, k)
	y.Values = slices.Insert(y.Values, 0, v)
}

// Append stores v under the next positional key and returns that key.
func (y *Node) Append(v *Node) Key {
	k := IntKey(y.NextIndex())
	y.Keys = append(y.Keys, k)
	y.Values = append(y.Values, v)
	return k
}

// Unshift stores v first and renumbers all integer keys from 0 in order,
// leaving string keys alone.
func (y *Node) Unshift(v *Node) {
	y.Keys = slices.Insert(y.Keys, 0, IntKey(-1))
	y.Values = slices.Insert(y.Values, 0, v)
	y.Renumber()
}

// Renumber rewrites integer keys to 0, 1, ... in their current order.
func (y *Node) Renumber() {
	var next int64
	for i, k := range y.Keys {
		if k.IsInt() {
			y.Keys[i] = IntKey(next)
			next++
		}
	}
}

// Delete removes k returning its value, or nil if absent.
func (y *Node) Delete(k Key) *Node {
	i := y.Index(k)
	if i == -1 {
		return nil
	}
	v := y.Values[i]
	y.Keys = slices.Delete(y.Keys, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	return v
}

// NextIndex returns one more than the largest integer key, or 0.
func (y *Node) NextIndex() int64 {
	var next int64
	for _, k := range y.Keys {
		if i, ok := k.Int(); ok && i >= next {
			next = i + 1
		}
	}
	return next
}

func (y *Node) Len() int {
	return len(y.Values)
}

// IsList reports whether the keys of y are exactly 0, 1, ... in order.
func (y *Node) IsList() bool {
	if y.Type == ArrayType {
		return true
	}
	for i, k := range y.Keys {
		if n, ok := k.Int(); !ok || n != int64(i) {
			return false
		}
	}
	return true
}
