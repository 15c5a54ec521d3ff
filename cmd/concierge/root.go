package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Concierge is a guided product recommendation service",
	Long:  `Concierge walks shoppers through category, brand, budget and sorting questions, then recommends products from a CSV catalog.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")
	rootCmd.PersistentFlags().String("catalog", "", "Path to the product CSV (overrides config)")
}
