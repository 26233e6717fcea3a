package cmd

import (
	"github.com/kgsd/fx-md-adapter/internal/bootstrap"
	"github.com/spf13/cobra"
)

// acceptorCmd represents the acceptor command
var acceptorCmd = &cobra.Command{
	Use:   "acceptor",
	Short: "Triggering FIX acceptor",
	Long: `Acceptor listens for an inbound FIX logon and launches the initiator-side
adapter as a supervised background task. Used in deployments where the feed
dials in first and the outbound subscription session must not start earlier.`,
	Run: bootstrap.StartTriggerAcceptor,
}

func init() {
	rootCmd.AddCommand(acceptorCmd)
}
