// Package export bundles a decision log into a tar.gz archive for
// publication.
//
// Bundles are deterministic: entry order is lexicographic and tar headers
// are normalized, so identical logs produce byte-identical archives.
package export

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// epochStart normalizes entry timestamps so archive bytes depend only on
// content.
var epochStart = time.Unix(0, 0).UTC()

type entry struct {
	path string // on disk
	name string // in the archive
}

// Bundle streams a tar.gz archive of the decisions directory (plus the
// checklist when given) to w and returns the archived entry names in order.
// Each source file lands in the archive exactly once, even when the
// checklist lives inside the decisions directory.
func Bundle(w io.Writer, decisionsDir, checklistPath string) ([]string, error) {
	files, err := collectEntries(decisionsDir)
	if err != nil {
		return nil, err
	}

	gz := gzip.NewWriter(w)
	tw := tar.NewWriter(gz)

	var names []string
	seen := map[string]bool{}
	add := func(path, name string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if seen[abs] {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := writeEntry(tw, name, data); err != nil {
			return fmt.Errorf("archiving %s: %w", name, err)
		}
		seen[abs] = true
		names = append(names, name)
		return nil
	}

	for _, f := range files {
		if err := add(f.path, f.name); err != nil {
			_ = tw.Close()
			_ = gz.Close()
			return nil, err
		}
	}
	if checklistPath != "" {
		if err := add(checklistPath, filepath.Base(checklistPath)); err != nil {
			_ = tw.Close()
			_ = gz.Close()
			return nil, err
		}
	}

	if err := tw.Close(); err != nil {
		_ = gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return names, nil
}

// WriteFile creates path and writes the bundle there.
func WriteFile(path, decisionsDir, checklistPath string) ([]string, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating bundle: %w", err)
	}
	names, err := Bundle(f, decisionsDir, checklistPath)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}
	return names, nil
}

// collectEntries walks the decisions directory in lexical order, mapping
// each regular file to a decisions/ archive path. Hidden files are skipped.
func collectEntries(dir string) ([]entry, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("decisions directory: %w", err)
	}
	var files []entry
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, entry{path: path, name: "decisions/" + filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking decisions directory: %w", err)
	}
	return files, nil
}

func writeEntry(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epochStart,
		Typeflag: tar.TypeReg,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := io.Copy(tw, bytes.NewReader(content))
	return err
}
