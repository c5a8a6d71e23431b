package music_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/northcove/go-narrate/pkg/music"
)

func TestSelection_Enabled(t *testing.T) {
	assert.False(t, music.None().Enabled())
	assert.False(t, music.Selection{}.Enabled())
	assert.False(t, music.Selection{Source: "none", Gain: 0.5}.Enabled())

	assert.True(t, music.Selection{Source: "https://cdn.example.com/bed.mp3"}.Enabled())
	assert.True(t, music.Selection{Source: "tracks/calm.flac"}.Enabled())
}
