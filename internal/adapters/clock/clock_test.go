package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_AdvanceAndSet(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := NewManual(start)

	assert.Equal(t, start, c.Now())

	c.Advance(25 * time.Minute)
	assert.Equal(t, start.Add(25*time.Minute), c.Now())

	c.Advance(-5 * time.Minute)
	assert.Equal(t, start.Add(20*time.Minute), c.Now())

	later := start.AddDate(0, 0, 1)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestSystem_Now(t *testing.T) {
	before := time.Now()
	now := System{}.Now()
	assert.False(t, now.Before(before))
}
