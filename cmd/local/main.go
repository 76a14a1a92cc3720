package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "presentctl",
		Short: "Run the presentation backend handlers locally",
		Long: `presentctl runs the same gateway handlers the Lambda deployment uses,
either behind a local HTTP server or as one-off synthetic invocations.
Variables from a .env file in the working directory are loaded first.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(invokeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
