// Package script runs result building scripts: documents listing the
// operations that build a result tree and how to read the result back.
//
// A script looks like
//
//	maxSize: 1000
//	transform: bc;types
//	path: query
//	ops:
//	- op: add
//	  path: query.pages
//	  name: title
//	  value: Main Page
//	- op: type
//	  path: query.pages
//	  shape: kvp
//	  kvpKeyName: title
package script

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/signadot/restree/format"
	"github.com/signadot/restree/ir"
	"github.com/signadot/restree/ir/kpath"
	"github.com/signadot/restree/result"
	"github.com/signadot/restree/transform"

	"github.com/goccy/go-yaml"
)

var ErrScript = errors.New("script error")

type Script struct {
	// MaxSize limits the data size of the tree; unlimited when nil.
	MaxSize *int `json:"maxSize,omitempty"`
	// Transform is the default transform spec for the output, see
	// transform.ParseSpec.
	Transform string `json:"transform,omitempty"`
	// Path selects the part of the tree to output.
	Path string `json:"path,omitempty"`
	Ops  []Op   `json:"ops"`
}

// Load reads a script file. The format follows the file name suffix,
// YAML when there is none.
func Load(path string) (*Script, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	if suffix := filepath.Ext(path); suffix != "" {
		f, err := format.FromSuffix(suffix)
		if err == nil && !f.Decodable() {
			return nil, fmt.Errorf("%w: cannot read %s scripts", ErrScript, f)
		}
	}
	s, err := Decode(d)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return s, nil
}

// Decode decodes a JSON or YAML script. Mapping values keep their order.
func Decode(d []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.UnmarshalWithOptions(d, s, yaml.UseOrderedMap(), yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	for i := range s.Ops {
		if err := s.Ops[i].check(); err != nil {
			return nil, fmt.Errorf("%w: op %d: %w", ErrScript, i, err)
		}
	}
	return s, nil
}

// NewTree returns an empty tree with the script's size limit.
func (s *Script) NewTree(opts ...result.Option) *result.Tree {
	maxSize := result.Unbounded
	if s.MaxSize != nil {
		maxSize = *s.MaxSize
	}
	return result.New(maxSize, opts...)
}

// Run applies the operations of s to t in order, stopping at the first
// failure.
func (s *Script) Run(t *result.Tree) error {
	for i := range s.Ops {
		if err := s.Ops[i].Apply(t); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, s.Ops[i].Op, err)
		}
	}
	return nil
}

// Spec returns the transform spec for the output: s.Transform, or the
// one in $RESTREE_TRANSFORM when the script sets none.
func (s *Script) Spec() (*transform.Spec, error) {
	v := s.Transform
	if v == "" {
		v = DefaultTransform()
	}
	return transform.ParseSpec(v)
}

// Exec builds a tree from s and returns the transformed data at s.Path
// together with the warnings raised while building. A nil spec selects
// s.Spec().
func (s *Script) Exec(spec *transform.Spec, log *slog.Logger) (*ir.Node, result.WarningList, error) {
	var warnings result.WarningList
	opts := []result.Option{result.WithReporter(&warnings)}
	if log != nil {
		opts = append(opts, result.WithLogger(log))
	}
	t := s.NewTree(opts...)
	if err := s.Run(t); err != nil {
		return nil, warnings, err
	}
	if spec == nil {
		var err error
		if spec, err = s.Spec(); err != nil {
			return nil, warnings, err
		}
	}
	path, err := kpath.Parse(s.Path)
	if err != nil {
		return nil, warnings, err
	}
	res, err := t.GetResultData(path, spec)
	if err != nil {
		return nil, warnings, err
	}
	if log != nil {
		log.Debug("script done", "ops", len(s.Ops), "size", t.Size(), "warnings", len(warnings))
	}
	return res, warnings, nil
}
