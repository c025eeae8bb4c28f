package pak

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
)

// ErrUnsafePath is returned for entry names that would be written outside the output directory.
var ErrUnsafePath = errors.New("entry name escapes the output directory")

// SplitName splits an entry name into its path components. Archives use either separator.
func SplitName(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	return parts
}

// LocalPath returns the path of the entry relative to an extraction directory.
func LocalPath(name string) (string, error) {
	rel := filepath.Join(SplitName(name)...)
	if rel == "" || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%w: '%s'", ErrUnsafePath, name)
	}

	return rel, nil
}

// Extract writes every entry of the archive below dir and returns the number of files
// written. Existing files are only replaced when overwrite is set.
func Extract(archive *Archive, dir string, overwrite bool) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}

	extracted := 0
	for i := range archive.Entries() {
		entry := &archive.Entries()[i]

		rel, err := LocalPath(entry.Name)
		if err != nil {
			return extracted, err
		}
		target := filepath.Join(dir, rel)

		written, err := extractEntry(entry, target, overwrite)
		if err != nil {
			return extracted, fmt.Errorf("failed to extract '%s': %w", entry.Name, err)
		}

		log.WithFields(log.Fields{
			"entry":      entry.Name,
			"target":     target,
			"size":       humanize.IBytes(uint64(written)),
			"compressed": entry.Compressed(),
		}).Debug("Extracted entry")

		extracted++
	}

	return extracted, nil
}

func extractEntry(entry *Entry, target string, overwrite bool) (written int64, err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return 0, err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	src, err := entry.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, flags, 0644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return io.Copy(dst, src)
}
