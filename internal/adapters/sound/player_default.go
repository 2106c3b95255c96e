//go:build !darwin && !linux && !windows

package sound

import "io"

// playCue falls back to terminal bell on unsupported platforms
func playCue(c cue, bell io.Writer) error {
	return terminalBell(bell)
}
