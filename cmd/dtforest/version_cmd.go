package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in dtforest's version
	VersionMajor = 0
	// VersionMinor is the minor number in dtforest's version
	VersionMinor = 3
	// VersionPatch is the patch number in dtforest's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dtforest",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dtforest v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
