//go:build darwin

package sound

import (
	"io"
	"os/exec"
)

// playCue plays sounds on macOS using afplay
func playCue(c cue, bell io.Writer) error {
	var soundFiles []string

	switch c {
	case cueComplete:
		soundFiles = []string{
			"/System/Library/Sounds/Glass.aiff",
			"/System/Library/Sounds/Tink.aiff",
		}
	case cueStart:
		soundFiles = []string{
			"/System/Library/Sounds/Submarine.aiff",
			"/System/Library/Sounds/Purr.aiff",
		}
	case cueCelebrate:
		soundFiles = []string{
			"/System/Library/Sounds/Hero.aiff",
			"/System/Library/Sounds/Ping.aiff",
		}
	default:
		soundFiles = []string{"/System/Library/Sounds/Pop.aiff"}
	}

	for _, soundFile := range soundFiles {
		cmd := exec.Command("afplay", soundFile)
		if err := cmd.Start(); err == nil {
			return nil
		}
	}

	return terminalBell(bell)
}
