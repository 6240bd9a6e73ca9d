package main

import (
	"github.com/spf13/cobra"

	"github.com/i474232898/space-data-console/internal/console"
)

var endpointsCmd = &cobra.Command{
	Use:   "endpoints",
	Short: "List the supported endpoints and their log files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		console.RenderCatalog(stdout(cmd), catalog, logs.Dir())
	},
}

func init() {
	rootCmd.AddCommand(endpointsCmd)
}
