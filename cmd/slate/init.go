// Init command for the slate CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voxelsmith/slate/internal/sqlite"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize slate storage and seed built-in block schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return sysErr(err)
		}

		// Attach creates the data directory and database schema.
		backend, err := attachCatalog()
		if err != nil {
			return err
		}
		defer backend.Detach()

		if err := sqlite.Seed(backend); err != nil {
			return sysErr(fmt.Errorf("seed schemas: %w", err))
		}

		dataDir, err := resolveDataDir()
		if err != nil {
			return sysErr(err)
		}

		fmt.Println("Slate initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
