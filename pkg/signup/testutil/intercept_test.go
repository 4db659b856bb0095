package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/signup/pkg/signup"
)

func TestBlocker_Blocks(t *testing.T) {
	b := NewBlocker(signup.DefaultBlockPattern)

	assert.True(t, b.Blocks("https://swapi.co/api/people/1/"))
	assert.True(t, b.Blocks("https://swapi.co/api/"))
	assert.False(t, b.Blocks("https://swapi.co/"))
	assert.False(t, b.Blocks("http://localhost:3000/api/login"))
	assert.False(t, b.Blocks("http://localhost:3000/"))
}

func TestBlocker_EmptyPatternBlocksNothing(t *testing.T) {
	b := NewBlocker("")
	assert.False(t, b.Blocks("https://swapi.co/api/people/1/"))
}

func TestBlocker_Record(t *testing.T) {
	b := NewBlocker("x")
	assert.Empty(t, b.Blocked())

	b.record("http://x/1")
	b.record("http://x/2")
	assert.Equal(t, []string{"http://x/1", "http://x/2"}, b.Blocked())
}
