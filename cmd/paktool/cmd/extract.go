package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"tracktools/pkg/config"
	"tracktools/pkg/pak"

	log "github.com/sirupsen/logrus"
)

type ExtractCmd struct {
	Archive   string `arg:"" help:"Path to the PAK archive" type:"existingfile"`
	Output    string `short:"o" help:"Directory to extract into (default: archive name without extension)"`
	Overwrite bool   `help:"Replace files that already exist"`
	Config    string `short:"c" help:"YAML file with extraction defaults" type:"existingfile"`
}

func (c *ExtractCmd) Run() error {
	outputDir, overwrite := c.Output, c.Overwrite
	if c.Config != "" {
		cfg, err := config.LoadPakToolConfig(c.Config)
		if err != nil {
			return err
		}

		if outputDir == "" {
			outputDir = cfg.Extract.OutputDir
		}
		overwrite = overwrite || cfg.Extract.Overwrite
	}

	if outputDir == "" {
		base := filepath.Base(c.Archive)
		outputDir = filepath.Join(filepath.Dir(c.Archive), strings.TrimSuffix(base, filepath.Ext(base)))
	}

	archive, err := pak.Open(c.Archive)
	if err != nil {
		return err
	}
	defer archive.Close()

	log.WithFields(log.Fields{
		"archive":   c.Archive,
		"output":    outputDir,
		"overwrite": overwrite,
	}).Info("Extracting archive")

	count, err := pak.Extract(archive, outputDir, overwrite)
	if err != nil {
		return fmt.Errorf("failed to extract archive '%s' after %d entries: %w", c.Archive, count, err)
	}

	log.WithField("output", outputDir).Infof("Extracted %d entries", count)
	return nil
}
