// Package walker finds dataset files on disk for bulk validation.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize caps dataset files at 4 MB.
const DefaultMaxFileSize int64 = 4 << 20

// File is one discovered dataset file.
type File struct {
	Path    string // Absolute path on disk.
	RelPath string // Slash path relative to the root.
	Size    int64
	Hash    string // SHA-256 hex digest of the content.
}

// Config controls Walk.
type Config struct {
	Root        string
	Include     []string // Empty means DefaultInclude.
	Exclude     []string
	MaxFileSize int64 // 0 means DefaultMaxFileSize.
}

// Walk returns the files under cfg.Root that pass the include and exclude
// globs, in lexical order. Unreadable entries are skipped.
func Walk(cfg Config) ([]File, error) {
	for _, p := range append(append([]string{}, cfg.Include...), cfg.Exclude...) {
		if !ValidPattern(p) {
			return nil, fmt.Errorf("invalid glob %q", p)
		}
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	include := cfg.Include
	if len(include) == 0 {
		include = DefaultInclude
	}
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []File
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || !Match(rel, include, cfg.Exclude) {
			return nil
		}
		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}
		hash, err := hashFile(path)
		if err != nil {
			return nil
		}
		files = append(files, File{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
			Hash:    hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
