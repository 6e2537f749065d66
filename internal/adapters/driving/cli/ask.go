package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your documents",
	Long: `Answers a question grounded in your uploaded documents. With no
argument, starts an interactive session that keeps conversation history.
If no relevant context is found the model answers from general knowledge
and says so.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured; set an OpenAI API key")
	}

	ctx := context.Background()

	if len(args) == 1 {
		answer, err := chatService.Ask(ctx, ownerFlag, args[0], nil)
		if err != nil {
			return fmt.Errorf("ask failed: %w", err)
		}
		cmd.Println(answer)
		return nil
	}

	return runAskSession(ctx, cmd)
}

// runAskSession reads questions from stdin until EOF or "exit",
// carrying the conversation history across turns.
func runAskSession(ctx context.Context, cmd *cobra.Command) error {
	var history []driven.ChatMessage
	scanner := bufio.NewScanner(cmd.InOrStdin())

	cmd.Println("Ask questions about your documents. Type 'exit' to quit.")
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := chatService.Ask(ctx, ownerFlag, question, history)
		if err != nil {
			cmd.PrintErrf("error: %v\n", err)
			continue
		}
		cmd.Println(answer)
		cmd.Println()

		history = append(history,
			driven.ChatMessage{Role: "user", Content: question},
			driven.ChatMessage{Role: "assistant", Content: answer},
		)
	}

	return scanner.Err()
}
