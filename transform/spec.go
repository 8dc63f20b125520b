package transform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/restree/ir"
)

var (
	ErrInvalidKVPMetadata = errors.New(`type "BCkvp" used without setting KVP key name metadata`)
	ErrBadSpec            = errors.New("bad transform spec")
	ErrCustom             = errors.New("custom transform failed")
)

// CustomFunc is called on every mapping before the other stages see it.
// It may modify node, including its Meta, in place. Children it adds are
// transformed afterwards like any other child.
type CustomFunc func(path []ir.Key, node *ir.Node) error

// BCOptions selects the legacy output shims. Each flag turns one off.
type BCOptions struct {
	// NoBool keeps booleans as they are.
	NoBool bool
	// NoStar leaves the content key under its own name instead of "*".
	NoStar bool
	// NoSub leaves BC subelements unwrapped.
	NoSub bool
}

type TypesOptions struct {
	// ArmorKVP, when not empty, turns kvp mappings into lists of
	// {ArmorKVP: key, value: value} items.
	ArmorKVP string
	// AssocAsObject produces ir.ObjectType for assoc mappings.
	AssocAsObject bool
}

type StripMode int

const (
	StripNone StripMode = iota
	StripAll
	StripBase
	StripBC
)

func ParseStripMode(v string) (StripMode, error) {
	m, ok := map[string]StripMode{
		"":     StripNone,
		"none": StripNone,
		"all":  StripAll,
		"base": StripBase,
		"bc":   StripBC,
	}[v]
	if ok {
		return m, nil
	}
	return StripNone, fmt.Errorf("%w: unknown strip mode %q", ErrBadSpec, v)
}

func (m StripMode) String() string {
	switch m {
	case StripNone:
		return "none"
	case StripAll:
		return "all"
	case StripBase:
		return "base"
	case StripBC:
		return "bc"
	}
	return fmt.Sprintf("<strip %d>", int(m))
}

func (m StripMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *StripMode) UnmarshalText(d []byte) error {
	pm, err := ParseStripMode(string(d))
	if err != nil {
		return err
	}
	*m = pm
	return nil
}

// Spec selects the stages applied by Apply. Stages run in a fixed order:
// Custom, BC, Types, then Strip. A nil stage is skipped.
type Spec struct {
	Custom CustomFunc
	BC     *BCOptions
	Types  *TypesOptions
	Strip  StripMode
}

// ParseSpec parses a textual spec of ';' separated stages, for example
//
//	bc=nobool,nosub;types=armor:name,object;strip=all
//
// A stage name without '=' enables the stage with default options.
func ParseSpec(v string) (*Spec, error) {
	spec := &Spec{}
	for _, stage := range strings.Split(v, ";") {
		stage = strings.TrimSpace(stage)
		if stage == "" {
			continue
		}
		name, args, _ := strings.Cut(stage, "=")
		var argList []string
		if args != "" {
			argList = strings.Split(args, ",")
		}
		var err error
		switch strings.ToLower(name) {
		case "bc":
			spec.BC, err = parseBC(argList)
		case "types":
			spec.Types, err = parseTypes(argList)
		case "strip":
			spec.Strip, err = ParseStripMode(args)
		default:
			err = fmt.Errorf("%w: unknown stage %q", ErrBadSpec, name)
		}
		if err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func parseBC(args []string) (*BCOptions, error) {
	res := &BCOptions{}
	for _, a := range args {
		switch a {
		case "nobool":
			res.NoBool = true
		case "no*", "nostar":
			res.NoStar = true
		case "nosub":
			res.NoSub = true
		default:
			return nil, fmt.Errorf("%w: unknown bc option %q", ErrBadSpec, a)
		}
	}
	return res, nil
}

func parseTypes(args []string) (*TypesOptions, error) {
	res := &TypesOptions{}
	for _, a := range args {
		name, val, _ := strings.Cut(a, ":")
		switch name {
		case "armor":
			if val == "" {
				return nil, fmt.Errorf("%w: armor requires a key name", ErrBadSpec)
			}
			res.ArmorKVP = val
		case "object":
			res.AssocAsObject = true
		default:
			return nil, fmt.Errorf("%w: unknown types option %q", ErrBadSpec, a)
		}
	}
	return res, nil
}

// String returns the spec in the form accepted by ParseSpec. The Custom
// stage has no textual form and is omitted.
func (s *Spec) String() string {
	var stages []string
	if s.BC != nil {
		var opts []string
		if s.BC.NoBool {
			opts = append(opts, "nobool")
		}
		if s.BC.NoStar {
			opts = append(opts, "no*")
		}
		if s.BC.NoSub {
			opts = append(opts, "nosub")
		}
		stages = append(stages, stageString("bc", opts))
	}
	if s.Types != nil {
		var opts []string
		if s.Types.ArmorKVP != "" {
			opts = append(opts, "armor:"+s.Types.ArmorKVP)
		}
		if s.Types.AssocAsObject {
			opts = append(opts, "object")
		}
		stages = append(stages, stageString("types", opts))
	}
	if s.Strip != StripNone {
		stages = append(stages, "strip="+s.Strip.String())
	}
	return strings.Join(stages, ";")
}

func stageString(name string, opts []string) string {
	if len(opts) == 0 {
		return name
	}
	return name + "=" + strings.Join(opts, ",")
}
