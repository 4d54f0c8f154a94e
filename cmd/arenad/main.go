// Command arenad hosts AI debate sessions behind a WebSocket front end.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/podiumlabs/arena/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "arenad",
	Short: "AI debate arena daemon",
	Long: `arenad stages AI-generated debates between two opposing personas.
It serves a WebSocket command/event protocol for browser clients, with
optional speech synthesis, session snapshots and guest admission quotas.`,
	SilenceUsage: true,
}

func init() {
	// A .env in the working directory supplies GEMINI_API_KEY and
	// friends during development; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the arenad version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
