// Package writer places the generated migration script on disk under a
// timestamped filename, so migration runners that sort by filename pick it up
// in the right position.
package writer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/seqsquash/seqsquash/internal/sqerr"
)

// timestampLayout matches the filename convention of ecosystem migration
// runners: seconds-resolution UTC, lexically sortable.
const timestampLayout = "20060102150405"

// Suffix is the fixed tail of every generated migration filename.
const Suffix = "-squashed-migrations.js"

// Writer writes migration scripts into a target directory. Now is swappable
// for tests; nil means time.Now.
type Writer struct {
	Dir string
	Now func() time.Time
}

// New creates a writer targeting the given directory.
func New(dir string) *Writer {
	return &Writer{Dir: dir}
}

// Filename returns the timestamped filename the next Write will use.
func (w *Writer) Filename() string {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}
	return now().UTC().Format(timestampLayout) + Suffix
}

// Write creates the target directory if needed and writes the script,
// returning the full path of the written file.
func (w *Writer) Write(content string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return "", sqerr.Wrap(sqerr.ErrOutputWrite, err, "cannot create migrations directory").
			With("dir", w.Dir)
	}
	path := filepath.Join(w.Dir, w.Filename())
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", sqerr.Wrap(sqerr.ErrOutputWrite, err, "cannot write migration script").
			With("path", path)
	}
	return path, nil
}
