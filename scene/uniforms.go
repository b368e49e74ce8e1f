package scene

import "sort"

// UniformType is the type tag carried next to each uniform value.
type UniformType string

const (
	UniformFloat UniformType = "f"
	UniformVec2  UniformType = "v2"
	UniformMat4  UniformType = "m4"
)

// Uniform is a single named shader input. The value slice length is fixed by the type.
type Uniform struct {
	Type  UniformType
	value []float32
}

func Float(v float32) *Uniform {
	return &Uniform{Type: UniformFloat, value: []float32{v}}
}

func Vec2(x, y float32) *Uniform {
	return &Uniform{Type: UniformVec2, value: []float32{x, y}}
}

// Mat4 builds a column-major 4x4 matrix uniform.
func Mat4(m [16]float32) *Uniform {
	v := make([]float32, 16)
	copy(v, m[:])
	return &Uniform{Type: UniformMat4, value: v}
}

func (u *Uniform) Float() float32 {
	return u.value[0]
}

func (u *Uniform) SetFloat(v float32) {
	u.value[0] = v
}

func (u *Uniform) Vec2() (float32, float32) {
	return u.value[0], u.value[1]
}

func (u *Uniform) SetVec2(x, y float32) {
	u.value[0], u.value[1] = x, y
}

func (u *Uniform) SetMat4(m [16]float32) {
	copy(u.value, m[:])
}

// Values returns a copy of the raw components.
func (u *Uniform) Values() []float32 {
	v := make([]float32, len(u.value))
	copy(v, u.value)
	return v
}

// Uniforms maps shader uniform names to their current values.
type Uniforms map[string]*Uniform

// Names returns the uniform names in sorted order.
func (u Uniforms) Names() []string {
	names := make([]string, 0, len(u))
	for name := range u {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
