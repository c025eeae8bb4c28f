// Package listing renders the contents of a PAK archive for the terminal.
package listing

import (
	"fmt"
	"io"

	"tracktools/pkg/pak"

	"github.com/ddddddO/gtree"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

type listedEntry struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name"`
	Offset     uint32 `yaml:"offset"`
	Size       uint32 `yaml:"size"`
	StoredSize uint32 `yaml:"storedSize"`
	Compressed bool   `yaml:"compressed"`
}

// WriteTable prints one line per entry: index, data offset, size and name.
func WriteTable(w io.Writer, entries []pak.Entry) error {
	header := color.New(color.Bold, color.FgCyan)
	compressed := color.New(color.FgYellow)

	if _, err := header.Fprintf(w, "  %4s  %-8s  %9s  %-4s  %s\n", "#", "Offset", "Size", "Zlib", "Name"); err != nil {
		return err
	}

	for i, e := range entries {
		flag := "    "
		if e.Compressed() {
			flag = compressed.Sprint("  * ")
		}

		_, err := fmt.Fprintf(w, "  %4d  %08x  %9s  %s  %s\n",
			i+1,
			e.Offset,
			humanize.IBytes(uint64(e.Size)),
			flag,
			e.Name)
		if err != nil {
			return err
		}
	}

	return nil
}

// WriteYAML prints the entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []pak.Entry) error {
	listed := make([]listedEntry, 0, len(entries))
	for i, e := range entries {
		listed = append(listed, listedEntry{
			Index:      i + 1,
			Name:       e.Name,
			Offset:     e.Offset,
			Size:       e.Size,
			StoredSize: e.StoredSize,
			Compressed: e.Compressed(),
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(listed); err != nil {
		return fmt.Errorf("failed to encode entries: %w", err)
	}

	return encoder.Close()
}

// WriteTree prints the entry names as a directory tree under rootName.
func WriteTree(w io.Writer, rootName string, entries []pak.Entry) error {
	root := gtree.NewRoot(rootName)
	for _, e := range entries {
		node := root
		for _, part := range pak.SplitName(e.Name) {
			node = node.Add(part)
		}
	}

	if err := gtree.OutputProgrammably(w, root); err != nil {
		return fmt.Errorf("failed to render tree: %w", err)
	}

	return nil
}
