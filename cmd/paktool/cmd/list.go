package cmd

import (
	"fmt"

	"tracktools/cmd/paktool/listing"
	"tracktools/pkg/pak"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

type ListCmd struct {
	Archive string `arg:"" help:"Path to the PAK archive" type:"existingfile"`
	Format  string `short:"f" help:"Output format" enum:"table,yaml" default:"table"`
}

func (c *ListCmd) Run(ctx *kong.Context) error {
	archive, err := pak.Open(c.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	log.WithFields(log.Fields{
		"archive": c.Archive,
		"entries": len(archive.Entries()),
	}).Debug("Listing archive")

	switch c.Format {
	case "yaml":
		err = listing.WriteYAML(ctx.Stdout, archive.Entries())
	default:
		err = listing.WriteTable(ctx.Stdout, archive.Entries())
	}
	if err != nil {
		return fmt.Errorf("failed to list archive '%s': %w", c.Archive, err)
	}

	return nil
}
