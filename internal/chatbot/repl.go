package chatbot

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"LocalChat/internal/reasoning"
	"LocalChat/internal/store"
)

// Run starts the interactive loop. Presentation glue only: every session
// mutation goes through the controller operations above.
func (cb *ChatBot) Run() error {
	sess := cb.Session()
	fmt.Println("=== LocalChat ===")
	fmt.Printf("Session: %s\n", sess.ID)
	fmt.Printf("Model: %s\n", sess.Model)
	fmt.Println("Type /help for commands, /quit to exit")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			shouldQuit, err := cb.handleCommand(ctx, input)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				cb.logger.Error("command error", "error", err)
			}
			if shouldQuit {
				break
			}
			continue
		}

		response, err := cb.Send(ctx, input)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			cb.logger.Error("failed to send message", "error", err)
			continue
		}

		cb.printResponse(response)
	}

	fmt.Println("Goodbye!")
	return nil
}

// printResponse splits the raw response at render time. The history keeps
// the undivided content, so this runs again on every render.
func (cb *ChatBot) printResponse(raw string) {
	visible, trace := reasoning.Split(raw)
	if cb.config.ShowReasoning && trace != "" {
		fmt.Printf("[reasoning] %s\n", trace)
	}
	fmt.Printf("Bot: %s\n\n", visible)
}

// handleCommand handles slash commands. Returns true when the loop should
// exit.
func (cb *ChatBot) handleCommand(ctx context.Context, cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return false, nil
	}

	switch parts[0] {
	case "/quit", "/exit":
		return true, nil

	case "/reset":
		sess := cb.Reset()
		fmt.Println("Chat history has been reset. New session:", sess.ID)
		return false, nil

	case "/save":
		path, err := cb.SaveSnapshot()
		if err != nil {
			if errors.Is(err, store.ErrNothingToSave) {
				fmt.Println("Nothing to save yet.")
				return false, nil
			}
			return false, err
		}
		fmt.Println("Saved chat history to:", path)
		return false, nil

	case "/load":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /load <snapshot-file>")
		}
		sess, err := cb.LoadSnapshotFile(parts[1])
		if err != nil {
			return false, err
		}
		fmt.Printf("Loaded %d messages. New session: %s\n", len(sess.Messages), sess.ID)
		return false, nil

	case "/models":
		models, err := cb.Models(ctx)
		if err != nil {
			fmt.Println("No models available (backend unreachable).")
			return false, nil
		}
		current := cb.Session().Model
		fmt.Println("\nAvailable models:")
		for i, name := range models {
			marker := ""
			if name == current {
				marker = " (current)"
			}
			fmt.Printf("%d. %s%s\n", i+1, name, marker)
		}
		fmt.Println()
		return false, nil

	case "/model":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /model <name:version>")
		}
		cb.SetModel(parts[1])
		fmt.Println("Model set to:", parts[1])
		return false, nil

	case "/sessions":
		metas, err := cb.RecentSessions(10)
		if err != nil {
			return false, err
		}
		if len(metas) == 0 {
			fmt.Println("No archived sessions.")
			return false, nil
		}
		fmt.Println("\nArchived sessions:")
		for i, m := range metas {
			fmt.Printf("%d. %s - %s, %d messages, started %s\n",
				i+1, m.ID, m.Model, m.Messages, m.StartTime.Format("2006-01-02 15:04"))
		}
		fmt.Println()
		return false, nil

	case "/resume":
		if len(parts) < 2 {
			return false, fmt.Errorf("usage: /resume <session-id>")
		}
		if err := cb.Resume(parts[1]); err != nil {
			return false, err
		}
		sess := cb.Session()
		fmt.Printf("Resumed %d messages as new session: %s\n", len(sess.Messages), sess.ID)
		return false, nil

	case "/help":
		fmt.Println("Available commands:")
		fmt.Println("  /quit, /exit          - Exit the chat")
		fmt.Println("  /reset                - Discard history, start a new session")
		fmt.Println("  /save                 - Save chat history to a snapshot file")
		fmt.Println("  /load <file>          - Replace history from a snapshot file")
		fmt.Println("  /models               - List models served by the backend")
		fmt.Println("  /model <name>         - Select the active model")
		fmt.Println("  /sessions             - List archived sessions")
		fmt.Println("  /resume <session-id>  - Restore an archived session")
		fmt.Println("  /help                 - Show this help message")
		return false, nil

	default:
		return false, fmt.Errorf("unknown command: %s", parts[0])
	}
}
