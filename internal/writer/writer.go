package writer

import (
	"fmt"
	"os"
)

// AppendWriter opens its file for every Write, appends, and closes it again.
// No handle is held between writes.
type AppendWriter struct {
	path string
	perm os.FileMode
}

func NewAppendWriter(path string) *AppendWriter {
	return &AppendWriter{path: path, perm: 0o644}
}

func (aw *AppendWriter) Write(p []byte) (n int, err error) {
	const op = "writer.Write"

	f, err := os.OpenFile(aw.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, aw.perm)
	if err != nil {
		return 0, fmt.Errorf("%s: open %s for appending: %w", op, aw.path, err)
	}

	n, err = f.Write(p)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%s: close %s: %w", op, aw.path, cerr)
	}
	return
}

// Sync is a no-op: every Write already closed the file.
func (aw *AppendWriter) Sync() error {
	return nil
}
