package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scanner scans a directory tree for source files
type Scanner struct {
	skipDirs   map[string]bool
	extensions []string
}

// NewScanner creates a new Scanner matching the given extensions and
// skipping the given directory names
func NewScanner(skipDirs []string, extensions ...string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, extensions: extensions}
}

// Scan finds all source files under root. A root that is a single
// matching file is returned as is.
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source path does not exist: %s", root)
	}
	if !info.IsDir() {
		if s.matches(root) {
			return []string{root}, nil
		}
		return nil, fmt.Errorf("source path is not a directory or source file: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.matches(d.Name()) {
			files = append(files, path)
		}
		return nil
	})

	return files, err
}

// Dirs returns root and every directory below it that Scan would descend
// into. A file root yields its parent directory.
func (s *Scanner) Dirs(root string) ([]string, error) {
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source path does not exist: %s", root)
	}
	if !info.IsDir() {
		return []string{filepath.Dir(root)}, nil
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && s.Skips(d.Name()) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// Skips reports whether a directory with this name is left out of scans
func (s *Scanner) Skips(name string) bool {
	return strings.HasPrefix(name, ".") || s.skipDirs[name]
}

// Matches reports whether name has one of the scanned extensions
func (s *Scanner) Matches(name string) bool {
	return s.matches(name)
}

func (s *Scanner) matches(name string) bool {
	for _, ext := range s.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
