package cmd

import (
	"github.com/kgsd/fx-md-adapter/internal/bootstrap"
	"github.com/spf13/cobra"
)

// adapterCmd represents the adapter command
var adapterCmd = &cobra.Command{
	Use:   "adapter",
	Short: "FX market data adapter (FIX initiator)",
	Long: `Adapter logs on to the FIX market data feed, subscribes to spot and
forward quotes for the configured currency pairs, decodes inbound snapshots
into rows, and writes validated row batches to the configured sink.

On logon it issues one spot request per currency pair and one forward request
per distinct normalized tenor found in the swap points reference data.`,
	Run: bootstrap.StartAdapter,
}

func init() {
	rootCmd.AddCommand(adapterCmd)
}
