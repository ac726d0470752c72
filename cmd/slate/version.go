// Version command for the slate CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxelsmith/slate/pkg/slate"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the slate version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("slate", slate.Version)
	},
}
