package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host  string
	token string
)

var rootCmd = &cobra.Command{
	Use:   "carambole-cli",
	Short: "A CLI to drive tournament progression on the carambole server",
	Long: `A command-line interface for generating brackets, recording match
results and finalizing tournaments through the server's HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("CARAMBOLE_TOKEN"), "Bearer token for write operations")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error while executing your command: %s\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
