package result

import (
	"fmt"
	"log/slog"

	"github.com/signadot/restree/ir"
)

// Warning is a recoverable condition met while building a tree.
type Warning struct {
	Module string
	Code   string
	Path   []ir.Key
	Key    ir.Key
	Limit  int
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: %s at %q (limit %d)", w.Module, w.Code, w.Where(), w.Limit)
}

// Where is the dotted path of the rejected value.
func (w *Warning) Where() string {
	p := w.Path
	if !w.Key.IsZero() {
		p = append(p[:len(p):len(p)], w.Key)
	}
	return ir.FormatPath(p)
}

// ErrorReporter receives warnings from a Tree.
type ErrorReporter interface {
	AddWarning(w *Warning)
}

// WarningList collects warnings.
type WarningList []*Warning

func (l *WarningList) AddWarning(w *Warning) {
	*l = append(*l, w)
}

// LogReporter writes warnings to a structured logger.
type LogReporter struct {
	Log *slog.Logger
}

func (r LogReporter) AddWarning(w *Warning) {
	log := r.Log
	if log == nil {
		log = slog.Default()
	}
	log.Warn("result warning",
		"module", w.Module,
		"code", w.Code,
		"path", w.Where(),
		"limit", w.Limit)
}
