package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/internal/presentation/tui"
	"github.com/stepedge/concierge/pkg/dialog"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive shopping session in the terminal",
	Long: `Starts a guided conversation against the local catalog.
Type 'start' at any point to begin over, 'exit' or 'quit' to leave.`,
	Run: func(cmd *cobra.Command, args []string) {
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
		defer cleanup()

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		render := func(s string) string { return s + "\n" }
		if interactive {
			tui.PrintBanner(concierge.Version)
			markdown := tui.NewRenderer()
			render = func(s string) string {
				out, err := markdown(s)
				if err != nil {
					return s
				}
				return out
			}
		}

		ctx := cmd.Context()

		// The reset keyword doubles as the opening turn: it yields the
		// category prompt for a fresh session.
		resp, err := advisor.Chat(ctx, concierge.TurnRequest{Message: dialog.ResetKeyword})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		sessionID := resp.SessionID
		fmt.Print(render(resp.Reply))

		reader := bufio.NewReader(os.Stdin)
		for {
			fmt.Print("> ")
			text, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return
			}
			input := strings.TrimSpace(text)
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				fmt.Println("Bye!")
				return
			}

			resp, err := advisor.Chat(ctx, concierge.TurnRequest{SessionID: sessionID, Message: input})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Print(render(resp.Reply))
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
