// Package workdir manages the ephemeral run directory. Raw query payloads
// land here for diagnosis; the directory is removed unconditionally when
// the run ends, whatever the exit path.
package workdir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a scoped temporary directory for one run.
type Dir struct {
	path string
}

// New creates a fresh run directory under the system temp dir.
func New() (*Dir, error) {
	path, err := os.MkdirTemp("", "replicheck-*")
	if err != nil {
		return nil, fmt.Errorf("creating working directory: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory's location.
func (d *Dir) Path() string { return d.path }

// WritePayload atomically stores one raw payload, named after the check
// and server it came from. Names are sanitized so they cannot escape the
// directory or collide with path syntax.
func (d *Dir) WritePayload(check, server string, data []byte) error {
	name := sanitize(check) + "_" + sanitize(server) + ".ldif"
	dest := filepath.Join(d.path, name)

	tmp, err := os.CreateTemp(d.path, ".payload-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing payload: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("renaming payload to %s: %w", dest, err)
	}

	success = true
	return nil
}

// Close removes the run directory and everything in it.
func (d *Dir) Close() error {
	if d == nil || d.path == "" {
		return nil
	}
	err := os.RemoveAll(d.path)
	d.path = ""
	return err
}

// sanitize maps a name onto a safe filename fragment.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "payload"
	}
	return b.String()
}
