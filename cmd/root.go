package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buchat",
	Short: "Retrieval service for the Busan multilingual assistant",
	Long: `buchat serves the retrieval side of the Busan multilingual chat
assistants: the multicultural-family living guide, the foreign-worker
rights guide and the restaurant finder.`,
}

func Execute() {
	settingDefaultConfig()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
