package cmd

import (
	"github.com/kgsd/fx-md-adapter/internal/bootstrap"
	"github.com/spf13/cobra"
)

// genericAdapterCmd represents the generic-adapter command
var genericAdapterCmd = &cobra.Command{
	Use:   "generic-adapter",
	Short: "Mapping-driven FIX adapter",
	Long: `Generic adapter decodes arbitrary FIX message types into destination
table rows using a declarative mapping document (message type, table, and
per-column tag/type/parser). Messages without a configured mapping are
ignored.`,
	Run: bootstrap.StartGenericAdapter,
}

func init() {
	rootCmd.AddCommand(genericAdapterCmd)
}
