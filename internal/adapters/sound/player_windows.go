//go:build windows

package sound

import (
	"io"
	"os/exec"
)

// playCue plays sounds on Windows using PowerShell system sounds
func playCue(c cue, bell io.Writer) error {
	var script string
	switch c {
	case cueComplete:
		script = "[System.Media.SystemSounds]::Asterisk.Play()"
	case cueStart:
		script = "[System.Media.SystemSounds]::Beep.Play()"
	case cueCelebrate:
		script = "[System.Media.SystemSounds]::Exclamation.Play()"
	default:
		script = "[System.Media.SystemSounds]::Hand.Play()"
	}

	if err := exec.Command("powershell", "-NoProfile", "-Command", script).Start(); err == nil {
		return nil
	}

	return terminalBell(bell)
}
