package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
)

var (
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")). // Bright cyan
			Bold(true)

	AssistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")) // Soft green

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SystemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("183")). // Soft purple
			Italic(true)

	IDStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")) // Dim gray

	DueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("215")). // Orange
			Bold(true)

	RecurStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("147")) // Light purple
)

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

func (f *Formatter) FormatAssistantMessage(msg string) string {
	prefix := "Jarvis: "
	if f.colored {
		prefix = AssistantStyle.Render("Jarvis: ")
	}
	return prefix + msg
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSystem(msg string) string {
	if f.colored {
		return SystemStyle.Render(msg)
	}
	return msg
}

// FormatReminderList renders reminders one per line with id, due time and
// recurrence frequency.
func (f *Formatter) FormatReminderList(reminders []reminder.Reminder) string {
	if len(reminders) == 0 {
		return f.FormatSystem("No reminders.")
	}

	var lines []string
	for i, r := range reminders {
		when := r.DueTime.Format("03:04 PM on Monday, January 02")
		line := fmt.Sprintf("%d. %s at %s", i+1, r.Text, when)

		if r.Recurring && r.Interval != nil {
			recur := " (" + r.Interval.Describe() + ")"
			if f.colored {
				recur = RecurStyle.Render(recur)
			}
			line += recur
		}

		id := "  [" + r.ID + "]"
		if f.colored {
			id = IDStyle.Render(id)
		}
		lines = append(lines, line+id)
	}
	return strings.Join(lines, "\n")
}

// FormatDueAlert renders a reminder that just fired.
func (f *Formatter) FormatDueAlert(r reminder.Reminder) string {
	msg := fmt.Sprintf("Reminder: %s (due %s)", r.Text, r.DueTime.Format("15:04"))
	if f.colored {
		return DueStyle.Render(msg)
	}
	return msg
}

// FormatPrompt returns the input prompt.
func (f *Formatter) FormatPrompt() string {
	if f.colored {
		promptStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))
		arrowStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")).
			Bold(true)
		return promptStyle.Render("jarvis") + arrowStyle.Render(" > ")
	}
	return "jarvis > "
}

func (f *Formatter) FormatWelcome() string {
	lines := []string{
		"",
		"Jarvis • Reminder Assistant",
		fmt.Sprintf("Today is %s", time.Now().Format("Monday, January 2")),
		"Type /help for commands, or just say \"remind me to ...\"",
		"",
	}

	if f.colored {
		titleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true)
		subtitleStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

		lines[1] = titleStyle.Render(lines[1])
		lines[2] = subtitleStyle.Render(lines[2])
		lines[3] = subtitleStyle.Render(lines[3])
	}

	return strings.Join(lines, "\n")
}

func (f *Formatter) FormatHelp() string {
	lines := []string{
		"",
		"Commands:",
		"  remind me to <task> [at <time>]   - Set a reminder",
		"  what are my reminders             - List upcoming reminders",
		"  /list [n]                         - List upcoming reminders",
		"  /due                              - List reminders due right now",
		"  /complete <id>                    - Mark a reminder as done",
		"  /cancel <id>                      - Cancel a reminder",
		"  /summary                          - Show today's activity summary",
		"  /help                             - Show help",
		"  /quit                             - Exit",
		"",
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders a markdown document for the terminal. Falls back
// to the raw text when rendering fails or colors are off.
func (f *Formatter) RenderMarkdown(md string) string {
	if !f.colored {
		return md
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}
