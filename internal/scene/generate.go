package scene

import (
	"fmt"

	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/mesh"
	"github.com/Faultbox/tinymesh/pkg/shapes"
)

// Kinds lists the primitives Generate accepts.
var Kinds = []string{"box", "disk", "sphere", "cylinder", "torus", "capsule"}

// Shape describes a single primitive. Fields a kind does not use are ignored.
type Shape struct {
	Kind      string
	Center    math.Vec3
	Radius    float64
	Height    float64 // Cylinder and capsule half height
	Thickness float64 // Torus tube radius
}

// Generate validates s and builds it with the configured divisions. Shapes
// without their own center are translated to Center.
func (b *Builder) Generate(s Shape) (*mesh.Mesh, error) {
	gen := b.cfg.Generation

	var (
		m   *mesh.Mesh
		err error
	)
	switch s.Kind {
	case "box":
		box := shapes.NewCube(s.Radius)
		if err = box.Validate(); err == nil {
			m = mesh.NewBox(box)
			m.Translate(s.Center)
		}
	case "disk":
		disk := shapes.NewDisk(s.Center, s.Radius)
		if err = disk.Validate(); err == nil {
			m = mesh.NewDisk(disk, gen.Div)
		}
	case "sphere":
		sphere := shapes.NewSphere(s.Center, s.Radius)
		if err = sphere.Validate(); err == nil {
			m = mesh.NewSphere(sphere, gen.Div)
		}
	case "cylinder":
		cyl := shapes.NewCylinder(s.Radius, s.Height)
		if err = cyl.Validate(); err == nil {
			m = mesh.NewCylinder(cyl, gen.Div)
			m.Translate(s.Center)
		}
	case "torus":
		torus := shapes.NewTorus(s.Radius, s.Thickness)
		if err = torus.Validate(); err == nil {
			m = mesh.NewTorus(torus, gen.TorusDivR, gen.TorusDivT)
			m.Translate(s.Center)
		}
	case "capsule":
		capsule := shapes.NewCapsule(s.Radius, s.Height)
		if err = capsule.Validate(); err == nil {
			m = mesh.NewCapsule(capsule, gen.Div)
			m.Translate(s.Center)
		}
	default:
		return nil, fmt.Errorf("%w: %q is not a primitive", shapes.ErrInvalidParameter, s.Kind)
	}
	if err != nil {
		return nil, err
	}

	if gen.Smooth {
		m.SmoothNormals()
	}
	return m, nil
}
