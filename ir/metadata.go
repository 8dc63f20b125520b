package ir

import "fmt"

func checkContainer(node *Node) error {
	if node == nil || !node.IsContainer() {
		t := "nil"
		if node != nil {
			t = node.Type.String()
		}
		return fmt.Errorf("%w: %s", ErrNotContainer, t)
	}
	return nil
}

// SetArrayType sets the shape of node, and its kvp key name when
// kvpKeyName is not empty.
func SetArrayType(node *Node, shape Shape, kvpKeyName string) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	if _, err := ParseShape(string(shape)); err != nil {
		return err
	}
	m := node.EnsureMeta()
	m.Shape = shape
	if kvpKeyName != "" {
		m.KVPKeyName = kvpKeyName
	}
	return nil
}

// SetArrayTypeRecursive applies SetArrayType to node and every container
// below it.
func SetArrayTypeRecursive(node *Node, shape Shape, kvpKeyName string) error {
	if err := SetArrayType(node, shape, kvpKeyName); err != nil {
		return err
	}
	return eachChildContainer(node, func(c *Node) error {
		return SetArrayTypeRecursive(c, shape, kvpKeyName)
	})
}

func SetIndexedTagName(node *Node, tag string) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	node.EnsureMeta().IndexedTagName = tag
	return nil
}

func SetIndexedTagNameRecursive(node *Node, tag string) error {
	if err := SetIndexedTagName(node, tag); err != nil {
		return err
	}
	return eachChildContainer(node, func(c *Node) error {
		return SetIndexedTagNameRecursive(c, tag)
	})
}

// SetSubelementsList adds keys to the subelements of node. Keys already
// listed keep their position.
func SetSubelementsList(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	m := node.EnsureMeta()
	m.Subelements = addKeys(m.Subelements, keys...)
	return nil
}

func UnsetSubelementsList(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	if node.Meta != nil {
		node.Meta.Subelements = removeKeys(node.Meta.Subelements, keys...)
	}
	return nil
}

func SetPreserveKeysList(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	m := node.EnsureMeta()
	m.PreserveKeys = addKeys(m.PreserveKeys, keys...)
	return nil
}

func UnsetPreserveKeysList(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	if node.Meta != nil {
		node.Meta.PreserveKeys = removeKeys(node.Meta.PreserveKeys, keys...)
	}
	return nil
}

func SetBCSubelementsList(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	m := node.EnsureMeta()
	m.BCSubelements = addKeys(m.BCSubelements, keys...)
	return nil
}

// SetBCBools lists keys whose booleans are kept as booleans in
// backward compatible output.
func SetBCBools(node *Node, keys ...Key) error {
	if err := checkContainer(node); err != nil {
		return err
	}
	m := node.EnsureMeta()
	m.BCBools = addKeys(m.BCBools, keys...)
	return nil
}

func eachChildContainer(node *Node, f func(*Node) error) error {
	for _, v := range node.Values {
		if !v.IsContainer() {
			continue
		}
		if err := f(v); err != nil {
			return err
		}
	}
	return nil
}

// StripMetadata returns a copy of node with metadata removed at every
// level.
func StripMetadata(node *Node) *Node {
	res := node.Clone()
	res.Visit(func(_ []Key, n *Node) bool {
		n.Meta = nil
		return true
	})
	return res
}

// StripMetadataNonRecursive returns a copy of node without its own
// metadata, together with that metadata.
func StripMetadataNonRecursive(node *Node) (*Node, *Meta) {
	res := node.Clone()
	m := res.Meta
	res.Meta = nil
	return res, m
}
