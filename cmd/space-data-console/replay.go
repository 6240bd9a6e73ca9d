package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/space-data-console/internal/console"
	"github.com/i474232898/space-data-console/internal/space/endpoints"
)

var replayCmd = &cobra.Command{
	Use:   "replay <endpoint>",
	Short: "Print the saved records of one endpoint",
	Long:  "Prints every record saved for the endpoint, in the order it was saved. See `endpoints` for ids.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, ok := endpoints.Find(catalog, args[0])
		if !ok {
			return fmt.Errorf("unknown endpoint %q", args[0])
		}
		term := console.NewTerminal(cmd.InOrStdin(), stdout(cmd))
		_, err := newPipeline(term).Replay(d)
		return err
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
