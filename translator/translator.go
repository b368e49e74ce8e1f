package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initOnce   sync.Once
	initErr    error
)

// GetTranslator returns the process-wide ANGLE translator, creating it on first use.
func GetTranslator(ctx context.Context) (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(ctx)
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", initErr)
	}
	return translator, nil
}

// Program is a translated vertex/fragment pair. Names maps each source-level
// variable to the name it carries in the translated code.
type Program struct {
	Vertex   string
	Fragment string
	Names    map[string]string
}

// MappedName returns the translated name for a source variable, falling back to
// the source name for variables the translator did not report.
func (p *Program) MappedName(name string) string {
	if mapped, ok := p.Names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Translate converts WebGL2 (GLSL ES 3.00) sources to desktop GLSL 4.10, or to
// ESSL when the target context is OpenGL ES.
func Translate(ctx context.Context, vertexSource, fragmentSource string, gles bool) (*Program, error) {
	t, err := GetTranslator(ctx)
	if err != nil {
		return nil, err
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	vs, err := t.TranslateShader(vertexSource, "vertex", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("vertex shader translation failed: %w", err)
	}
	fs, err := t.TranslateShader(fragmentSource, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	p := &Program{
		Vertex:   vs.Code,
		Fragment: fs.Code,
		Names:    make(map[string]string),
	}
	for name, v := range vs.Variables {
		p.Names[name] = v.MappedName
	}
	for name, v := range fs.Variables {
		p.Names[name] = v.MappedName
	}
	return p, nil
}
