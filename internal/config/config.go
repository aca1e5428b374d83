package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Storage   StorageConfig   `koanf:"storage"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Tray      TrayConfig      `koanf:"tray"`
	Notify    NotifyConfig    `koanf:"notify"`
	Chat      ChatConfig      `koanf:"chat"`
	UI        UIConfig        `koanf:"ui"`
}

type StorageConfig struct {
	RemindersFile string `koanf:"reminders_file"`
	MemoryFile    string `koanf:"memory_file"`
}

type SchedulerConfig struct {
	Interval      int `koanf:"interval"`       // poll cadence, seconds
	Backoff       int `koanf:"backoff"`        // pause after a failed iteration, seconds
	UpcomingLimit int `koanf:"upcoming_limit"` // default size for reminder listings
}

type TrayConfig struct {
	Enabled  bool `koanf:"enabled"`
	Interval int  `koanf:"interval"` // seconds
}

type NotifyConfig struct {
	DedupWindow  int            `koanf:"dedup_window"`  // seconds
	SpeakCommand []string       `koanf:"speak_command"` // external TTS command
	AlertCommand []string       `koanf:"alert_command"` // external desktop-alert command
	Telegram     TelegramConfig `koanf:"telegram"`
}

type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

// ChatConfig controls the small-talk fallback for input that is not a
// reminder command.
type ChatConfig struct {
	Enabled bool   `koanf:"enabled"`
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
}

type UIConfig struct {
	ColoredOutput bool `koanf:"colored_output"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("JARVIS_", ".", func(s string) string {
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Handle DEEPSEEK_API_KEY environment variable
	if apiKey := os.Getenv("DEEPSEEK_API_KEY"); apiKey != "" {
		k.Set("chat.api_key", apiKey)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Storage.RemindersFile = expandPath(cfg.Storage.RemindersFile)
	cfg.Storage.MemoryFile = expandPath(cfg.Storage.MemoryFile)

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage.RemindersFile == "" {
		return fmt.Errorf("storage.reminders_file is required")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be positive, got %d", c.Scheduler.Interval)
	}
	if c.Scheduler.Backoff <= 0 {
		return fmt.Errorf("scheduler.backoff must be positive, got %d", c.Scheduler.Backoff)
	}
	if c.Notify.DedupWindow <= 0 {
		return fmt.Errorf("notify.dedup_window must be positive, got %d", c.Notify.DedupWindow)
	}
	if c.Tray.Enabled && c.Tray.Interval <= 0 {
		return fmt.Errorf("tray.interval must be positive, got %d", c.Tray.Interval)
	}
	if c.Chat.Enabled && c.Chat.APIKey == "" {
		return fmt.Errorf("chat fallback enabled but no API key (set DEEPSEEK_API_KEY or chat.api_key)")
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
