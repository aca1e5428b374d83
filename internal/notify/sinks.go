package notify

import (
	"fmt"
	"os/exec"
)

// CommandSpeaker speaks through an external text-to-speech command such as
// espeak or macOS say. The text is appended as the final argument.
type CommandSpeaker struct {
	command []string
}

// NewCommandSpeaker wraps the given command line.
func NewCommandSpeaker(command []string) *CommandSpeaker {
	return &CommandSpeaker{command: command}
}

func (s *CommandSpeaker) Speak(text string) error {
	if len(s.command) == 0 {
		return fmt.Errorf("no speech command configured")
	}
	args := append(append([]string{}, s.command[1:]...), text)
	if out, err := exec.Command(s.command[0], args...).CombinedOutput(); err != nil {
		return fmt.Errorf("speech command failed: %v (%s)", err, out)
	}
	return nil
}

// CommandAlerter shows a desktop alert through an external command such as
// notify-send. Title and body are appended as the final two arguments.
type CommandAlerter struct {
	command []string
}

// NewCommandAlerter wraps the given command line.
func NewCommandAlerter(command []string) *CommandAlerter {
	return &CommandAlerter{command: command}
}

func (a *CommandAlerter) Alert(title, body string) error {
	if len(a.command) == 0 {
		return fmt.Errorf("no alert command configured")
	}
	args := append(append([]string{}, a.command[1:]...), title, body)
	if out, err := exec.Command(a.command[0], args...).CombinedOutput(); err != nil {
		return fmt.Errorf("alert command failed: %v (%s)", err, out)
	}
	return nil
}
