// Command jarvis runs the reminder assistant: an interactive command loop
// backed by the scheduling engine, with a background poller that fires due
// reminders and a tray-style watcher for toast alerts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AbhijeetKumar1505/Jarvis/internal/config"
	"github.com/AbhijeetKumar1505/Jarvis/internal/memory"
	"github.com/AbhijeetKumar1505/Jarvis/internal/notify"
	"github.com/AbhijeetKumar1505/Jarvis/internal/reminder"
	"github.com/AbhijeetKumar1505/Jarvis/internal/repl"
	"github.com/AbhijeetKumar1505/Jarvis/internal/scheduler"
	"github.com/AbhijeetKumar1505/Jarvis/internal/tray"
)

func main() {
	configPath := flag.String("config", config.GetDefaultConfigPath(), "Path to configuration file")
	remindersFile := flag.String("reminders", "", "Path to reminders file (overrides config)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if *remindersFile != "" {
		cfg.Storage.RemindersFile = *remindersFile
	}
	if *noColor {
		cfg.UI.ColoredOutput = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store, err := reminder.Open(cfg.Storage.RemindersFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening reminder store: %v\n", err)
		os.Exit(1)
	}
	service := reminder.NewService(store)

	var mem *memory.Store
	if cfg.Storage.MemoryFile != "" {
		mem, err = memory.Open(cfg.Storage.MemoryFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: activity memory unavailable: %v\n", err)
		} else {
			defer mem.Close()
		}
	}

	dedup := notify.NewDeduper(time.Duration(cfg.Notify.DedupWindow) * time.Second)
	alerter := buildAlerter(cfg)
	speaker := notify.NewCommandSpeaker(cfg.Notify.SpeakCommand)
	dispatcher := notify.NewDispatcher(dedup, speaker, alerter)

	loopOpts := []scheduler.Option{
		scheduler.WithInterval(time.Duration(cfg.Scheduler.Interval) * time.Second),
		scheduler.WithBackoff(time.Duration(cfg.Scheduler.Backoff) * time.Second),
	}
	if mem != nil {
		loopOpts = append(loopOpts, scheduler.WithRecorder(mem))
	}
	loop := scheduler.New(store, dispatcher, loopOpts...)
	loop.Start()
	defer loop.Stop()

	if cfg.Tray.Enabled {
		watcher := tray.New(store, dedup, alerter, time.Duration(cfg.Tray.Interval)*time.Second)
		watcher.Start()
		defer watcher.Stop()
	}

	var chat *repl.ChatClient
	if cfg.Chat.Enabled {
		chat, err = repl.NewChatClient(cfg.Chat.APIKey, cfg.Chat.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: chat fallback unavailable: %v\n", err)
		}
	}

	replInstance, err := repl.NewREPL(service, mem, chat, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nInterrupted. Shutting down...")
		cancel()
		loop.Stop()
		os.Exit(0)
	}()

	if err := replInstance.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildAlerter picks the visual sink: Telegram when configured, otherwise
// the desktop alert command.
func buildAlerter(cfg *config.Config) notify.Alerter {
	if cfg.Notify.Telegram.BotToken != "" && cfg.Notify.Telegram.ChatID != "" {
		return notify.NewTelegramAlerter(cfg.Notify.Telegram.BotToken, cfg.Notify.Telegram.ChatID)
	}
	return notify.NewCommandAlerter(cfg.Notify.AlertCommand)
}
