package reminder

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Parsed is the result of extracting reminder details from free text.
type Parsed struct {
	Text     string
	DueTime  time.Time
	Interval *Recurrence // nil when not recurring
}

var (
	// First match wins: a time expression introduced by at/by/for, then a
	// bare one anywhere in the text.
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:at|by|for) (\d{1,2})(?::(\d{2}))?\s*([ap]m)?`),
		regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*([ap]m)?`),
	}

	triggerPattern    = regexp.MustCompile(`\b(remind me to|set a? ?reminder(?: to)?|that|to)\b`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// recurrenceKeywords are checked in priority order; the first hit wins and
// its phrases are stripped from the working text before time extraction.
var recurrenceKeywords = []struct {
	phrases  []string
	interval Recurrence
}{
	{[]string{"every day", "daily"}, Days(1)},
	{[]string{"every week", "weekly"}, Weeks(1)},
	{[]string{"every month", "monthly"}, Months(1)},
}

// Parse extracts structured reminder details from natural language text.
//
// Examples it handles:
//
//	"Remind me to call mom at 3pm"
//	"Remind me every day at 8am to take my medicine"
//	"Set a reminder for 15:30 to join the standup"
//
// The due time resolves to today at the extracted hour in UTC, rolled
// forward one day if that instant is not strictly after now. A literal
// "tomorrow" pushes the resolved day one forward instead of rolling.
// Weekday words are not handled. Text without any time expression
// defaults to one hour from now. Returns false when no reminder content
// is left after stripping time and trigger phrases.
//
// Pure and deterministic given now.
func Parse(raw string, now time.Time) (Parsed, bool) {
	text := strings.ToLower(raw)
	now = now.UTC()

	tomorrow := strings.Contains(text, "tomorrow")
	if tomorrow {
		text = strings.TrimSpace(strings.ReplaceAll(text, "tomorrow", ""))
	}

	var interval *Recurrence
	for _, kw := range recurrenceKeywords {
		matched := false
		for _, phrase := range kw.phrases {
			if strings.Contains(text, phrase) {
				text = strings.ReplaceAll(text, phrase, "")
				matched = true
			}
		}
		if matched {
			rc := kw.interval
			interval = &rc
			break
		}
	}
	text = strings.TrimSpace(text)

	var dueTime time.Time
	for _, pattern := range timePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		hour, _ := strconv.Atoi(match[1])
		minute := 0
		if match[2] != "" {
			minute, _ = strconv.Atoi(match[2])
		}

		if hour > 23 || minute > 59 {
			// Out-of-range clock values mean the text was not a usable
			// time expression at all.
			return Parsed{}, false
		}

		switch match[3] {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}

		dueTime = time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, time.UTC)
		if tomorrow {
			dueTime = dueTime.AddDate(0, 0, 1)
		} else if !dueTime.After(now) {
			dueTime = dueTime.AddDate(0, 0, 1)
		}

		text = strings.TrimSpace(pattern.ReplaceAllString(text, ""))
		break
	}

	if dueTime.IsZero() {
		dueTime = now.Add(time.Hour)
		if tomorrow {
			dueTime = dueTime.AddDate(0, 0, 1)
		}
	}

	// Collapse whitespace before trigger stripping: removing recurrence
	// and time phrases leaves doubled spaces that would otherwise keep
	// "remind me to" from matching.
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = triggerPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.Trim(strings.TrimSpace(text), ".,!?")

	if text == "" {
		return Parsed{}, false
	}

	return Parsed{Text: text, DueTime: dueTime, Interval: interval}, true
}
