// File: lixenwraith/appconfig/io.go
package appconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// nestedValues builds a nested table of non-nil readable values.
// A set name that is a dotted prefix of another set name fails with ErrNameConflict.
// Caller must hold at least a read lock.
func (c *Container) nestedValues() (map[string]any, error) {
	if !c.phase.canRead() {
		return nil, ErrReadNotAvailable
	}
	set := make(map[string]bool, len(c.reg.params))
	for _, p := range c.reg.params {
		if !isNil(p.value) {
			set[p.name] = true
		}
	}

	nested := make(map[string]any)
	for _, p := range c.reg.params {
		if !set[p.name] {
			continue
		}
		// Checked up front so a map value is never used as a table and written into
		segments := strings.Split(p.name, ".")
		for i := 1; i < len(segments); i++ {
			if prefix := strings.Join(segments[:i], "."); set[prefix] {
				return nil, fmt.Errorf("%w: %q is a value, cannot hold %q", ErrNameConflict, prefix, p.name)
			}
		}
		if err := setNestedValue(nested, p.name, p.value); err != nil {
			return nil, err
		}
	}
	return nested, nil
}

// Dump writes the readable, non-nil parameter values to w in TOML format.
func (c *Container) Dump(w io.Writer) error {
	c.mutex.RLock()
	nested, err := c.nestedValues()
	c.mutex.RUnlock()
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(w).Encode(nested); err != nil {
		return fmt.Errorf("failed to marshal configuration to TOML: %w", err)
	}
	return nil
}

// Save writes the readable, non-nil parameter values to a TOML file atomically.
// The written file can be loaded back with LoadFile into a container
// declaring the same parameters.
func (c *Container) Save(path string) error {
	var buf bytes.Buffer
	if err := c.Dump(&buf); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// atomicWriteFile writes data to a temp file in the target directory and renames it into place
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in '%s': %w", dir, err)
	}
	tempPath := tempFile.Name()
	renamed := false
	defer func() {
		if !renamed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename '%s' to '%s': %w", tempPath, path, err)
	}
	renamed = true
	return nil
}
