// Ozw-commander is a terminal dashboard for Z-Wave networks.
//
// It shows the controller, the device list and a detail view for the
// selected node, and lets the user switch devices on and off, change dim
// levels and refresh node information from the keyboard.
//
// Usage:
//
//	ozw-commander [command] [flags]
//
// Running without arguments launches the dashboard.
// See 'ozw-commander --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buzzdavidson/ozwcommander/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ozw-commander",
	Short: "Z-Wave network dashboard",
	Long: `A full-screen terminal dashboard for Z-Wave networks.

Shows the controller, every registered node and the details of the
selected node. Nodes can be switched, dimmed and refreshed from the
keyboard. The driver is either the built-in simulator or a
zwave-js-server instance reached over WebSocket.

If no command is specified, the dashboard starts.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDashboard,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(version.Banner() + "\n")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Banner())
	},
}
