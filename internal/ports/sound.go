package ports

import "github.com/renato0307/pomar/internal/domain"

// SoundPlayer plays notification sounds
type SoundPlayer interface {
	// PlaySound plays the default notification sound
	PlaySound() error

	// PlaySoundForEvent plays a sound for a specific event kind
	PlaySoundForEvent(kind domain.EventKind) error
}
