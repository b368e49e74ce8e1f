package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcesDeclareUniforms(t *testing.T) {
	assert.Contains(t, Vertex(), "#version 300 es")
	assert.Contains(t, Vertex(), "in vec3 position")

	frag := Fragment()
	assert.Contains(t, frag, "#version 300 es")
	for _, name := range []string{"resolution", "time", "xScale", "yScale", "distortion"} {
		assert.Regexp(t, `uniform\s+\w+\s+`+name+`;`, frag)
	}
}
