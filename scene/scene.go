package scene

// Object is a drawable: a geometry rendered with a material.
type Object struct {
	Geometry *Geometry
	Material *ShaderMaterial
	Visible  bool
}

func NewObject(geometry *Geometry, material *ShaderMaterial) *Object {
	return &Object{Geometry: geometry, Material: material, Visible: true}
}

// Scene is the root container of everything the renderer draws.
type Scene struct {
	children []*Object
}

func New() *Scene {
	return &Scene{}
}

// Add attaches o to the scene. Adding an object that is already attached is a no-op.
func (s *Scene) Add(o *Object) {
	for _, c := range s.children {
		if c == o {
			return
		}
	}
	s.children = append(s.children, o)
}

// Remove detaches o and reports whether it was attached.
func (s *Scene) Remove(o *Object) bool {
	for i, c := range s.children {
		if c == o {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children returns the attached objects in insertion order.
func (s *Scene) Children() []*Object {
	out := make([]*Object, len(s.children))
	copy(out, s.children)
	return out
}

func (s *Scene) Len() int {
	return len(s.children)
}
