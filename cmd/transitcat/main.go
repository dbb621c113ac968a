// Command transitcat is the CLI entry point (spec §6): two
// subcommands, make_base and process_requests, both built on the
// structured-value codec, the dispatch package and the snapshot codec.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "transitcat",
	Short:        "Offline public-transport catalogue and query tool",
	SilenceUsage: false,
}

func init() {
	rootCmd.AddCommand(makeBaseCmd)
	rootCmd.AddCommand(processRequestsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
