// Package repl implements the assistant's interactive command loop:
// reminder commands in natural language, slash commands for management,
// and an optional chat fallback for everything else.
package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/AbhijeetKumar1505/Jarvis/internal/config"
	"github.com/AbhijeetKumar1505/Jarvis/internal/memory"
	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
	"github.com/AbhijeetKumar1505/Jarvis/internal/ui"
)

type REPL struct {
	service   *reminder.Service
	mem       *memory.Store // may be nil
	chat      *ChatClient   // may be nil
	config    *config.Config
	rl        *readline.Instance
	formatter *ui.Formatter
	clock     func() time.Time
}

func NewREPL(service *reminder.Service, mem *memory.Store, chat *ChatClient, cfg *config.Config) (*REPL, error) {
	formatter := ui.NewFormatter(cfg.UI.ColoredOutput)

	rl, err := setupReadline(formatter.FormatPrompt())
	if err != nil {
		return nil, fmt.Errorf("failed to setup readline: %w", err)
	}

	return &REPL{
		service:   service,
		mem:       mem,
		chat:      chat,
		config:    cfg,
		rl:        rl,
		formatter: formatter,
		clock:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (r *REPL) Start(ctx context.Context) error {
	defer r.rl.Close()

	fmt.Println(r.formatter.FormatWelcome())

	for {
		input, err := r.readInput()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		if input == "" {
			continue
		}

		isCommand, command, args := r.parseCommand(input)
		if isCommand {
			if err := r.handleCommand(command, args); err != nil {
				fmt.Println(r.formatter.FormatError(err))
			}

			if command == "/quit" || command == "/exit" {
				return nil
			}

			continue
		}

		if err := r.handleUtterance(ctx, input); err != nil {
			fmt.Println(r.formatter.FormatError(err))
		}
	}
}

// handleUtterance routes free text: reminder requests to the engine,
// listing phrases to the store, anything else to the chat fallback.
func (r *REPL) handleUtterance(ctx context.Context, input string) error {
	lower := strings.ToLower(input)

	switch {
	case strings.Contains(lower, "remind me") || strings.Contains(lower, "set a reminder"):
		return r.addReminder(input)

	case strings.Contains(lower, "what are my reminders") || strings.Contains(lower, "list my reminders"):
		r.listUpcoming(r.config.Scheduler.UpcomingLimit)
		return nil
	}

	if r.chat != nil {
		reply, err := r.chat.Send(ctx, input)
		if err != nil {
			return fmt.Errorf("chat request failed: %w", err)
		}
		fmt.Println(r.formatter.FormatAssistantMessage(reply))
		return nil
	}

	fmt.Println(r.formatter.FormatSystem("I only handle reminders here. Try \"remind me to ...\" or /help."))
	return nil
}

func (r *REPL) addReminder(input string) error {
	added, ok, err := r.service.AddFromText(input, r.clock())
	if !ok {
		fmt.Println(r.formatter.FormatSystem("I couldn't understand the reminder details. Please try again."))
		return nil
	}
	if err != nil {
		// The reminder is live in memory; surface the persistence
		// failure once instead of retrying silently.
		return fmt.Errorf("reminder set but not saved to disk: %w", err)
	}

	fmt.Println(r.formatter.FormatAssistantMessage(reminder.Confirmation(added)))
	r.record("reminder_set", added.Text)
	return nil
}

func (r *REPL) listUpcoming(limit int) {
	upcoming := r.service.Upcoming(limit)
	if len(upcoming) == 0 {
		fmt.Println(r.formatter.FormatSystem("You have no upcoming reminders."))
		return
	}
	fmt.Println(r.formatter.FormatAssistantMessage("Here are your upcoming reminders:"))
	fmt.Println(r.formatter.FormatReminderList(upcoming))
}

func (r *REPL) handleCommand(command, args string) error {
	switch command {
	case "/help", "/h":
		fmt.Println(r.formatter.FormatHelp())
		return nil

	case "/list", "/l":
		limit := r.config.Scheduler.UpcomingLimit
		if args != "" {
			n, err := strconv.Atoi(args)
			if err != nil || n <= 0 {
				return fmt.Errorf("usage: /list [count]")
			}
			limit = n
		}
		r.listUpcoming(limit)
		return nil

	case "/due":
		due := r.service.DueNow(r.clock())
		if len(due) == 0 {
			fmt.Println(r.formatter.FormatSystem("Nothing is due right now."))
			return nil
		}
		for _, rem := range due {
			fmt.Println(r.formatter.FormatDueAlert(rem))
		}
		return nil

	case "/cancel":
		if args == "" {
			return fmt.Errorf("usage: /cancel <id>")
		}
		found, err := r.service.Cancel(args)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no reminder with id %s", args)
		}
		fmt.Println(r.formatter.FormatSystem("Reminder cancelled."))
		r.record("reminder_cancelled", args)
		return nil

	case "/complete", "/done":
		if args == "" {
			return fmt.Errorf("usage: /complete <id>")
		}
		found, err := r.service.Complete(args, r.clock())
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no reminder with id %s", args)
		}
		fmt.Println(r.formatter.FormatSystem("Reminder completed."))
		r.record("reminder_completed", args)
		return nil

	case "/summary":
		if r.mem == nil {
			return fmt.Errorf("activity memory is not configured")
		}
		md, err := r.mem.DailySummary(r.clock())
		if err != nil {
			return err
		}
		fmt.Println(r.formatter.RenderMarkdown(md))
		return nil

	case "/quit", "/exit", "/q":
		fmt.Println("Goodbye!")
		return nil

	default:
		return fmt.Errorf("unknown command %s (see /help)", command)
	}
}

func (r *REPL) record(kind, details string) {
	if r.mem == nil {
		return
	}
	if err := r.mem.Record(kind, details); err != nil {
		fmt.Println(r.formatter.FormatError(fmt.Errorf("failed to record activity: %w", err)))
	}
}
