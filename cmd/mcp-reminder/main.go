// Command mcp-reminder provides an MCP server for reminder management.
//
// This server exposes the reminder engine as tools: natural-language and
// structured creation, listing, completion and cancellation. Reminders are
// stored in a JSON snapshot file shared with the jarvis assistant.
//
// Usage:
//
//	./mcp-reminder          # Start MCP server (stdio)
//	./mcp-reminder --help   # Show help
//
// Environment:
//
//	REMINDERS_FILE  Path to the reminders file (default: ~/.jarvis/reminders.json)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			printHelp()
			return
		}
	}

	path := os.Getenv("REMINDERS_FILE")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".jarvis")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create config directory: %v\n", err)
			os.Exit(1)
		}
		path = filepath.Join(dir, "reminders.json")
	}

	store, err := reminder.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open reminder store: %v\n", err)
		os.Exit(1)
	}

	s := reminder.NewServer(reminder.NewService(store))

	if err := server.ServeStdio(s.MCPServer()); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`MCP Reminder Server - Reminder management via MCP protocol

USAGE:
    mcp-reminder          Start MCP server (communicates via stdio)
    mcp-reminder --help   Show this help

ENVIRONMENT:
    REMINDERS_FILE  Path to the reminders JSON file
                    Default: ~/.jarvis/reminders.json

TOOLS:
    add_reminder_from_text  Create a reminder from natural language
    add_reminder            Create a reminder with explicit fields
    list_upcoming           List pending reminders sorted by due time
    get_due_reminders       Get pending reminders that are due or overdue
    complete_reminder       Mark a reminder as completed
    cancel_reminder         Cancel and delete a reminder`)
}
