package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// ParseStructTag parses a `result:"..."` struct tag into key/value pairs.
// Parts are separated by commas or spaces; flags without '=' map to "".
//
//	`result:"field=name omitempty"` → {"field": "name", "omitempty": ""}
//	`result:"-"` → {"-": ""}
func ParseStructTag(tag string) (map[string]string, error) {
	res := map[string]string{}
	parts := strings.FieldsFunc(tag, func(r rune) bool {
		return r == ',' || r == ' '
	})
	for _, part := range parts {
		k, v, ok := strings.Cut(part, "=")
		if k == "" {
			return nil, fmt.Errorf("invalid struct tag part %q", part)
		}
		if ok {
			v = strings.Trim(v, `'"`)
		}
		res[k] = v
	}
	return res, nil
}

type fieldInfo struct {
	name      string
	omitEmpty bool
	skip      bool
}

// structField reads the result tag of a field, falling back to its json
// tag name and then its Go name.
func structField(f reflect.StructField) (fieldInfo, error) {
	fi := fieldInfo{name: f.Name}
	if jt, ok := f.Tag.Lookup("json"); ok {
		name, rest, _ := strings.Cut(jt, ",")
		if name == "-" && rest == "" {
			fi.skip = true
		} else if name != "" {
			fi.name = name
		}
		fi.omitEmpty = strings.Contains(rest, "omitempty")
	}
	tag, ok := f.Tag.Lookup("result")
	if !ok {
		return fi, nil
	}
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return fi, fmt.Errorf("field %s: %w", f.Name, err)
	}
	if _, ok := parsed["-"]; ok {
		fi.skip = true
	}
	if name := parsed["field"]; name != "" {
		fi.name = name
	}
	if _, ok := parsed["omitempty"]; ok {
		fi.omitEmpty = true
	}
	return fi, nil
}
