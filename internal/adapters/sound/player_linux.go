//go:build linux

package sound

import (
	"io"
	"os/exec"
)

type command struct {
	args []string
	name string
}

// playCue plays sounds on Linux using paplay (PulseAudio) or aplay (ALSA)
func playCue(c cue, bell io.Writer) error {
	const dir = "/usr/share/sounds/freedesktop/stereo/"

	var name string
	switch c {
	case cueComplete:
		name = "complete"
	case cueStart:
		name = "service-login"
	case cueCelebrate:
		name = "message-new-instant"
	default:
		name = "bell"
	}

	commands := []command{
		{name: "paplay", args: []string{dir + name + ".oga"}},
		{name: "aplay", args: []string{dir + name + ".wav"}},
	}
	for _, cmd := range commands {
		if err := exec.Command(cmd.name, cmd.args...).Run(); err == nil {
			return nil
		}
	}

	return terminalBell(bell)
}
