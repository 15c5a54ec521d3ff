package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stepedge/concierge/pkg/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage stored shopper sessions",
	Long:  `List, inspect, and remove sessions from the configured backend (memory sessions only live inside a running server, so this is mostly useful with Redis).`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all active sessions",
	Run: func(cmd *cobra.Command, args []string) {
		mgr, cleanup := getSessions(cmd)
		defer cleanup()

		sessions, err := mgr.List(cmd.Context())
		if err != nil {
			fmt.Printf("Error listing sessions: %v\n", err)
			os.Exit(1)
		}

		if len(sessions) == 0 {
			fmt.Println("No active sessions found.")
			return
		}

		fmt.Println("Active Sessions:")
		for _, s := range sessions {
			fmt.Println("- " + s)
		}
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Inspect the state of a session",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sessionID := args[0]
		mgr, cleanup := getSessions(cmd)
		defer cleanup()

		sess, err := mgr.Load(cmd.Context(), sessionID)
		if err != nil {
			fmt.Printf("Error loading session '%s': %v\n", sessionID, err)
			os.Exit(1)
		}

		// Pretty print JSON
		data, err := json.MarshalIndent(sess, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling session: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(string(data))
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mgr, cleanup := getSessions(cmd)
		defer cleanup()
		hasError := false

		for _, sessionID := range args {
			if err := mgr.Delete(cmd.Context(), sessionID); err != nil {
				fmt.Printf("Error removing '%s': %v\n", sessionID, err)
				hasError = true
			} else {
				fmt.Printf("Removed session '%s'\n", sessionID)
			}
		}

		if hasError {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}

func getSessions(cmd *cobra.Command) (*session.Manager, func()) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := newLogger(cfg)

	advisor, cleanup, err := buildAdvisor(cmd.Context(), cfg, logger)
	if err != nil {
		fmt.Printf("Error initializing concierge: %v\n", err)
		os.Exit(1)
	}
	return advisor.Sessions(), cleanup
}
