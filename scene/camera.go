package scene

import "github.com/go-gl/mathgl/mgl32"

// OrthographicCamera projects without perspective foreshortening. The horizontal
// bounds are widened by Aspect when the projection matrix is rebuilt, so callers must
// call UpdateProjectionMatrix after changing Aspect or any bound.
type OrthographicCamera struct {
	Left, Right, Top, Bottom, Near, Far float32
	Aspect                              float32

	projection mgl32.Mat4
}

func NewOrthographicCamera(left, right, top, bottom, near, far float32) *OrthographicCamera {
	c := &OrthographicCamera{
		Left:   left,
		Right:  right,
		Top:    top,
		Bottom: bottom,
		Near:   near,
		Far:    far,
		Aspect: 1,
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *OrthographicCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Ortho(c.Left*c.Aspect, c.Right*c.Aspect, c.Bottom, c.Top, c.Near, c.Far)
}

func (c *OrthographicCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}
