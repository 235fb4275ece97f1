package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seqsquash/seqsquash/internal/model"
	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// DirLoader loads model definitions from every usable .js file in a
// directory, in lexical filename order. It implements model.Loader.
//
// An unreadable directory is fatal. A single bad file is not: the file is
// skipped with a warning and the remaining models still load.
type DirLoader struct {
	Dir     string
	Timeout time.Duration

	warnings []string
}

// NewDirLoader creates a loader for the given models directory.
func NewDirLoader(dir string) *DirLoader {
	return &DirLoader{Dir: dir}
}

// Warnings returns the problems recorded during the last Load call.
func (l *DirLoader) Warnings() []string {
	return l.warnings
}

// Load evaluates every model file and returns the captured definitions in
// load order.
func (l *DirLoader) Load() ([]*model.Definition, error) {
	l.warnings = nil

	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, sqerr.Wrap(sqerr.ErrModelNotFound, err, "cannot read models directory").
			With("dir", l.Dir)
	}

	sandbox := NewSandbox()
	sandbox.SetTimeout(l.Timeout)

	evaluated := 0
	for _, entry := range entries {
		if entry.IsDir() || !IsModelFile(entry.Name()) {
			continue
		}
		path := filepath.Join(l.Dir, entry.Name())

		code, err := os.ReadFile(path)
		if err != nil {
			l.warnf("cannot read %s, skipping: %v", path, err)
			continue
		}
		if err := sandbox.EvalFile(path, string(code)); err != nil {
			l.warnf("cannot evaluate %s, skipping: %v", path, err)
			continue
		}
		evaluated++
	}

	defs, warnings := sandbox.Models()
	l.warnings = append(l.warnings, warnings...)

	if len(defs) == 0 {
		return nil, sqerr.New(sqerr.ErrModelEmpty, "no model definitions found").
			With("dir", l.Dir).
			With("files_evaluated", evaluated)
	}
	return defs, nil
}

func (l *DirLoader) warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}

// IsModelFile reports whether a filename looks like a model definition:
// a .js file that is not the directory index and not a test file.
func IsModelFile(name string) bool {
	if !strings.HasSuffix(name, ".js") {
		return false
	}
	if name == "index.js" {
		return false
	}
	if strings.HasSuffix(name, ".test.js") || strings.HasSuffix(name, ".spec.js") {
		return false
	}
	return !strings.HasPrefix(name, ".")
}
