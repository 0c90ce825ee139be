package util

import (
	"errors"
	"path/filepath"
	"strings"
)

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName flattens path separators and rejects traversal, hidden and control-character names.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if s == "" || strings.Contains(s, "..") || strings.HasPrefix(s, ".") {
		return "", ErrInvalidFileName
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", ErrInvalidFileName
		}
	}
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	return s, nil
}

// HasExt reports whether name ends in ext, ignoring case. ext includes the dot.
func HasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
