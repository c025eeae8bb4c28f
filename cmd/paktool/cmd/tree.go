package cmd

import (
	"path/filepath"

	"tracktools/cmd/paktool/listing"
	"tracktools/pkg/pak"

	"github.com/alecthomas/kong"
)

type TreeCmd struct {
	Archive string `arg:"" help:"Path to the PAK archive" type:"existingfile"`
}

func (c *TreeCmd) Run(ctx *kong.Context) error {
	archive, err := pak.Open(c.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	return listing.WriteTree(ctx.Stdout, filepath.Base(c.Archive), archive.Entries())
}
