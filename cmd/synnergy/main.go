package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cli "synbridge/cmd/cli"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{Use: "synnergy"}
	rootCmd.AddCommand(cli.BridgeCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
