package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"reminders_file": "~/.jarvis/reminders.json",
			"memory_file":    "~/.jarvis/memory.db",
		},
		"scheduler": map[string]interface{}{
			"interval":       10,
			"backoff":        60,
			"upcoming_limit": 10,
		},
		"tray": map[string]interface{}{
			"enabled":  true,
			"interval": 30,
		},
		"notify": map[string]interface{}{
			"dedup_window":  300, // 5 minutes
			"speak_command": []string{"espeak"},
			"alert_command": []string{"notify-send"},
			"telegram": map[string]interface{}{
				"bot_token": "",
				"chat_id":   "",
			},
		},
		"chat": map[string]interface{}{
			"enabled": false,
			"api_key": "",
			"model":   "deepseek-chat",
		},
		"ui": map[string]interface{}{
			"colored_output": true,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.jarvis/config.yaml"
}
