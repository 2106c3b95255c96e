package sound

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/pomar/internal/domain"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		kind domain.EventKind
		want cue
	}{
		{domain.EventSessionCompleted, cueComplete},
		{domain.EventTaskCompleted, cueComplete},
		{domain.EventSessionStarted, cueStart},
		{domain.EventSessionResumed, cueStart},
		{domain.EventLevelUp, cueCelebrate},
		{domain.EventStreakMilestone, cueCelebrate},
		{domain.EventWeeklyGoalMet, cueCelebrate},
		{domain.EventDistractionRecorded, cueDefault},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, cueFor(tt.kind))
		})
	}
}

func TestPlayer_DisabledIsSilent(t *testing.T) {
	p := NewPlayer(false)
	p.play = func(c cue, bell io.Writer) error {
		t.Fatalf("unexpected play of %s", c)
		return nil
	}

	require.NoError(t, p.PlaySoundForEvent(domain.EventLevelUp))
	require.NoError(t, p.PlaySound())
}

func TestPlayer_PlaysCueForEvent(t *testing.T) {
	var played []cue
	p := NewPlayer(true)
	p.play = func(c cue, bell io.Writer) error {
		played = append(played, c)
		return nil
	}

	require.NoError(t, p.PlaySoundForEvent(domain.EventStreakMilestone))
	require.NoError(t, p.PlaySound())

	assert.Equal(t, []cue{cueCelebrate, cueComplete}, played)
}

func TestTerminalBell(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, terminalBell(&buf))
	assert.Equal(t, "\a", buf.String())
}
