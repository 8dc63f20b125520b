// Package ir provides the in-memory representation of result trees.
//
// # Node Structure
//
// A Node is a tagged union: the Type field says which of the other fields
// hold the value.
//
//   - NullType, BoolType, NumberType (Int64 or Float64), StringType
//   - MapType: Keys[i] is the key of Values[i]; order is output order
//   - ArrayType: a plain sequence in Values
//   - ObjectType: like MapType, for formats that distinguish keyed
//     objects from generic mappings
//
// Every container stored in a result tree is a MapType. ArrayType and
// ObjectType nodes only appear in transformed output.
//
// # Keys
//
// A Key is a string or an integer. Strings holding the canonical decimal
// form of an integer are integer keys:
//
//	ir.StringKey("12") == ir.IntKey(12)
//	ir.StringKey("012").IsInt() // false
//
// The zero Key, NoKey, requests a positional append.
//
// # Metadata
//
// Annotations on a container live in its Meta side table, never among
// its keys, so user data may use any key. When encoded, metadata fields
// are written under reserved "_" names (see WireNames).
//
//	node := ir.NewMap()
//	ir.SetArrayType(node, ir.ShapeKVP, "name")
//	ir.SetIndexedTagName(node, "item")
//	clean := ir.StripMetadata(node)
//
// # Thread Safety
//
// Nodes are not safe for concurrent mutation.
package ir
