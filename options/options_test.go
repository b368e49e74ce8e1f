package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	opts := Defaults()
	assert.Equal(t, 1280, *opts.Width)
	assert.Equal(t, 720, *opts.Height)
	assert.Equal(t, uint(0x666666), *opts.ClearColor)
	assert.Equal(t, 1000, *opts.DiffuseDelay)
	assert.False(t, *opts.Record)
	assert.False(t, *opts.Headless)
	assert.Equal(t, "h264", *opts.Codec)

	// each call hands out independent storage
	other := Defaults()
	*other.Width = 1
	assert.Equal(t, 1280, *opts.Width)
}
