package sound

import (
	"fmt"
	"io"
	"os"

	"github.com/renato0307/pomar/internal/domain"
	"github.com/renato0307/pomar/internal/ports"
)

// cue is a family of sounds shared by several events
type cue string

const (
	cueCelebrate cue = "celebrate"
	cueComplete  cue = "complete"
	cueDefault   cue = "default"
	cueStart     cue = "start"
)

// cueFor maps an engine event to the sound family played for it
func cueFor(kind domain.EventKind) cue {
	switch kind {
	case domain.EventSessionCompleted, domain.EventTaskCompleted:
		return cueComplete
	case domain.EventSessionStarted, domain.EventSessionResumed:
		return cueStart
	case domain.EventLevelUp, domain.EventStreakMilestone, domain.EventWeeklyGoalMet:
		return cueCelebrate
	default:
		return cueDefault
	}
}

// Player implements ports.SoundPlayer
type Player struct {
	bell    io.Writer
	enabled bool
	play    func(c cue, bell io.Writer) error
}

var _ ports.SoundPlayer = (*Player)(nil)

// NewPlayer creates a sound player. A disabled player is silent.
func NewPlayer(enabled bool) *Player {
	return &Player{bell: os.Stderr, enabled: enabled, play: playCue}
}

// PlaySound plays the default notification sound
func (p *Player) PlaySound() error {
	return p.PlaySoundForEvent(domain.EventSessionCompleted)
}

// PlaySoundForEvent plays a sound chosen by event kind.
// Platform-specific implementations are in player_*.go files with build tags.
func (p *Player) PlaySoundForEvent(kind domain.EventKind) error {
	if !p.enabled {
		return nil
	}
	return p.play(cueFor(kind), p.bell)
}

// terminalBell outputs a terminal bell character as fallback
func terminalBell(w io.Writer) error {
	_, err := fmt.Fprint(w, "\a")
	return err
}
