// Package gomap converts Go values into result tree nodes.
//
// # Usage
//
//	node, err := gomap.ToIR(map[string]any{"title": "Main Page", "ns": 0})
//
//	type Page struct {
//	    Title string `json:"title"`
//	    Len   int    `result:"field=length"`
//	}
//	node, err = gomap.ToIR(Page{Title: "x"}) // assoc mapping {title, length}
//
// Values implementing Serializer are replaced by what SerializeForResult
// returns, which is then converted in turn. fmt.Stringer values become
// strings. Strings are repaired to valid UTF-8 and NFC normalized.
// Non-finite floats, streams, channels and functions are errors.
//
// # Related Packages
//
//   - github.com/signadot/restree/ir - node representation
//   - github.com/signadot/restree/result - result trees built from converted values
package gomap
