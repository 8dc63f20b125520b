// Package parse decodes JSON and YAML documents into result tree nodes.
//
// Documents written by encode with metadata enabled can be read back
// with LiftMeta, restoring each mapping's Meta from its "_type",
// "_element" and similar entries.
package parse
