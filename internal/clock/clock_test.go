package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual_DefaultStart(t *testing.T) {
	c := NewManual(time.Time{})
	assert.Equal(t, int64(1000000000), c.Now().Unix())
}

func TestManual_Advance(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManual(start)

	c.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())
}

func TestManual_AdvanceNegativePanics(t *testing.T) {
	c := NewManual(time.Time{})
	assert.Panics(t, func() { c.Advance(-time.Second) })
}

func TestSystem_Now(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	assert.False(t, got.Before(before))
}
