package renderer

import (
	"fmt"
	"log"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderwave/scene"
	xlate "github.com/richinsley/goshaderwave/translator"
)

const projectionUniform = "projectionMatrix"

// program is a linked material program with its uniform locations cached by
// source-level name.
type program struct {
	id        uint32
	names     *xlate.Program
	locations map[string]int32
}

func (r *Renderer) program(m *scene.ShaderMaterial) (*program, error) {
	if p, ok := r.programs[m]; ok {
		return p, nil
	}

	translated, err := xlate.Translate(r.ctx, m.VertexShader, m.FragmentShader, r.gles)
	if err != nil {
		return nil, err
	}
	id, err := CompileProgram(translated.Vertex, translated.Fragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	p := &program{
		id:        id,
		names:     translated,
		locations: make(map[string]int32),
	}
	r.programs[m] = p
	log.Printf("Compiled shader program %d (%d uniforms)", id, len(m.Uniforms))
	return p, nil
}

func (p *program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(p.names.MappedName(name)+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *program) upload(uniforms scene.Uniforms) {
	for name, u := range uniforms {
		loc := p.location(name)
		if loc == -1 {
			continue
		}
		v := u.Values()
		switch u.Type {
		case scene.UniformFloat:
			gl.Uniform1f(loc, v[0])
		case scene.UniformVec2:
			gl.Uniform2f(loc, v[0], v[1])
		case scene.UniformMat4:
			gl.UniformMatrix4fv(loc, 1, false, &v[0])
		}
	}
}

func (p *program) uploadProjection(m mgl32.Mat4) {
	if loc := p.location(projectionUniform); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

// CompileProgram compiles and links a vertex and fragment shader pair written for
// the current context.
func CompileProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
