// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const archiveDir = "archive"

// Archive moves earlier outputs named <base>_*.<ext> out of dir into
// dir/archive/<ext>/<YYYY-MM-DD>/, dated by now. It returns the new paths.
// A missing dir is not an error.
func Archive(dir, base string, exts []string, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory %s: %w", dir, err)
	}

	day := now.Format("2006-01-02")
	var moved []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := matchOutput(name, base, exts)
		if ext == "" {
			continue
		}

		destDir := filepath.Join(dir, archiveDir, ext, day)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return moved, fmt.Errorf("creating archive directory: %w", err)
		}
		dest := filepath.Join(destDir, name)
		if err := os.Rename(filepath.Join(dir, name), dest); err != nil {
			return moved, fmt.Errorf("archiving %s: %w", name, err)
		}
		moved = append(moved, dest)
	}
	return moved, nil
}

// matchOutput returns the extension of name if it is one of base's outputs.
func matchOutput(name, base string, exts []string) string {
	if !strings.HasPrefix(name, base+"_") {
		return ""
	}
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, e := range exts {
		if e == ext {
			return ext
		}
	}
	return ""
}
