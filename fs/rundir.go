// Package fs manages per-run artifact directories on the local filesystem.
// Every pipeline invocation gets its own run directory; JSON artifacts are
// written atomically so a crashed run never leaves a half-written file for
// the next stage to read.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/knakagawa/shingidoc"
)

// NewRunID generates a run identifier: a UTC timestamp plus a short random
// suffix, sortable by creation time.
func NewRunID() string {
	ts := time.Now().UTC().Format("20060102T150405Z")
	u := uuid.New()
	return ts + "_" + shortHex(u)
}

func shortHex(u uuid.UUID) string {
	const hexdigits = "0123456789abcdef"
	b := make([]byte, 6)
	for i := 0; i < 3; i++ {
		b[2*i] = hexdigits[u[i]>>4]
		b[2*i+1] = hexdigits[u[i]&0x0f]
	}
	return string(b)
}

// RunDir is the artifact directory of a single run.
type RunDir struct {
	Root string
	ID   string
}

// NewRunDir creates the run directory under root, generating a run ID when
// id is empty.
func NewRunDir(root, id string) (*RunDir, error) {
	if id == "" {
		id = NewRunID()
	}
	rd := &RunDir{Root: root, ID: id}
	if err := os.MkdirAll(rd.Dir(), 0o755); err != nil {
		return nil, shingidoc.Errorf(shingidoc.EINTERNAL, "create run directory: %v", err)
	}
	return rd, nil
}

// Dir returns the run's base directory.
func (rd *RunDir) Dir() string {
	return filepath.Join(rd.Root, rd.ID)
}

// Path joins elem onto the run's base directory.
func (rd *RunDir) Path(elem ...string) string {
	return filepath.Join(append([]string{rd.Dir()}, elem...)...)
}

// Subdir creates (if needed) and returns a subdirectory of the run.
func (rd *RunDir) Subdir(name string) (string, error) {
	dir := rd.Path(name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", shingidoc.Errorf(shingidoc.EINTERNAL, "create run subdirectory: %v", err)
	}
	return dir, nil
}

// WriteJSON marshals v with indentation and writes it to path atomically:
// a temp file in the same directory is renamed over the target.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return shingidoc.Errorf(shingidoc.EINTERNAL, "marshal %s: %v", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return shingidoc.Errorf(shingidoc.EINTERNAL, "write %s: %v", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return shingidoc.Errorf(shingidoc.EINTERNAL, "rename %s: %v", filepath.Base(path), err)
	}
	return nil
}

// ReadJSON reads the JSON artifact at path into v. A missing file returns
// ENOTFOUND; malformed JSON returns EINVALID with the parse position so a
// corrupted artifact is diagnosable.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return shingidoc.Errorf(shingidoc.ENOTFOUND, "artifact not found: %s", path)
	}
	if err != nil {
		return shingidoc.Errorf(shingidoc.EINTERNAL, "read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return shingidoc.Errorf(shingidoc.EINVALID, "malformed JSON in %s: %v", path, err)
	}
	return nil
}
