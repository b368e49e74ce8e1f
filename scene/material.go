package scene

// Side selects which triangle faces are drawn.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// ShaderMaterial pairs raw vertex and fragment sources with the uniforms they read.
// Sources are written against GLSL ES 3.00 and translated by the renderer.
type ShaderMaterial struct {
	VertexShader   string
	FragmentShader string
	Uniforms       Uniforms
	Side           Side
}
