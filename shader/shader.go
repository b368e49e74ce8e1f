// Package shader holds the GLSL ES 3.00 sources of the wave quad. They are
// translated to the host's GLSL dialect by the renderer.
package shader

import _ "embed"

//go:embed wave.vert
var waveVertex string

//go:embed wave.frag
var waveFragment string

func Vertex() string {
	return waveVertex
}

func Fragment() string {
	return waveFragment
}
