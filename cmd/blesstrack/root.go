/*
Copyright © 2023 Microsoft Corporation
*/
package main

import (
	"tracktools/pkg/trackheader"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		atomic  bool
	)

	cmd := &cobra.Command{
		Use:   "blesstrack TRACK",
		Short: "Make a track extracted from the game editable",
		Long: `Track files extracted from the game are not editable by default. This is
trivially bypassed by overwriting the file header with a header from a
user-created track. This tool will overwrite a track file in place and replace
its header so that it may be loaded in the track editor.

By default the file is rewritten in place. Use --atomic to write a patched
copy next to the track and rename it over the original instead.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			track := args[0]
			log.WithFields(log.Fields{
				"file":   track,
				"atomic": atomic,
			}).Debug("Patching track header")

			patch := trackheader.PatchFile
			if atomic {
				patch = trackheader.PatchFileAtomic
			}

			if err := patch(track); err != nil {
				return err
			}

			log.WithField("file", track).Debug("Successfully patched track")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Replace the track through a temporary file and rename")

	return cmd
}
