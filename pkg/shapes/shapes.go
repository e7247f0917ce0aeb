// Package shapes provides immutable descriptors for the primitive solids
// the mesh generators understand.
//
// Constructors never validate their arguments; call Validate to reject
// non-positive dimensions before generating geometry.
package shapes

import (
	"errors"
	"fmt"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// ErrInvalidParameter is returned by Validate for unusable shape dimensions.
var ErrInvalidParameter = errors.New("invalid shape parameter")

func positive(shape, name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s %s must be positive, got %g", ErrInvalidParameter, shape, name, v)
	}
	return nil
}

// Disk is a flat disk lying in the XZ plane.
type Disk struct {
	center math.Vec3
	radius float64
}

// NewDisk creates a disk centered on center.
func NewDisk(center math.Vec3, radius float64) Disk {
	return Disk{center: center, radius: radius}
}

// Center returns the disk center.
func (d Disk) Center() math.Vec3 { return d.center }

// Radius returns the disk radius.
func (d Disk) Radius() float64 { return d.radius }

// Validate checks the disk dimensions.
func (d Disk) Validate() error { return positive("disk", "radius", d.radius) }

// Sphere is a sphere given by center and radius.
type Sphere struct {
	center math.Vec3
	radius float64
}

// NewSphere creates a sphere.
func NewSphere(center math.Vec3, radius float64) Sphere {
	return Sphere{center: center, radius: radius}
}

// Center returns the sphere center.
func (s Sphere) Center() math.Vec3 { return s.center }

// Radius returns the sphere radius.
func (s Sphere) Radius() float64 { return s.radius }

// Validate checks the sphere dimensions.
func (s Sphere) Validate() error { return positive("sphere", "radius", s.radius) }

// Cylinder is a Y-aligned cylinder centered on the origin.
// Its side spans y in [-Height, Height].
type Cylinder struct {
	radius float64
	height float64
}

// NewCylinder creates a cylinder.
func NewCylinder(radius, height float64) Cylinder {
	return Cylinder{radius: radius, height: height}
}

// Radius returns the cylinder radius.
func (c Cylinder) Radius() float64 { return c.radius }

// Height returns the half extent of the cylinder along Y.
func (c Cylinder) Height() float64 { return c.height }

// Validate checks the cylinder dimensions.
func (c Cylinder) Validate() error {
	return errors.Join(
		positive("cylinder", "radius", c.radius),
		positive("cylinder", "height", c.height),
	)
}

// Torus is a ring around the Z axis.
type Torus struct {
	radius    float64
	thickness float64
}

// NewTorus creates a torus. radius is the distance from the axis to the
// center of the tube, thickness the tube radius.
func NewTorus(radius, thickness float64) Torus {
	return Torus{radius: radius, thickness: thickness}
}

// Radius returns the distance from the Z axis to the tube center.
func (t Torus) Radius() float64 { return t.radius }

// Thickness returns the tube radius.
func (t Torus) Thickness() float64 { return t.thickness }

// Validate checks the torus dimensions.
func (t Torus) Validate() error {
	return errors.Join(
		positive("torus", "radius", t.radius),
		positive("torus", "thickness", t.thickness),
	)
}

// Capsule is a Y-aligned cylinder of half height Height closed by two
// hemispheres of the same radius.
type Capsule struct {
	radius float64
	height float64
}

// NewCapsule creates a capsule.
func NewCapsule(radius, height float64) Capsule {
	return Capsule{radius: radius, height: height}
}

// Radius returns the capsule radius.
func (c Capsule) Radius() float64 { return c.radius }

// Height returns the half length of the straight section.
func (c Capsule) Height() float64 { return c.height }

// Validate checks the capsule dimensions. A zero height is allowed and
// degenerates to a sphere.
func (c Capsule) Validate() error {
	err := positive("capsule", "radius", c.radius)
	if c.height < 0 {
		err = errors.Join(err, fmt.Errorf("%w: capsule height must not be negative, got %g", ErrInvalidParameter, c.height))
	}
	return err
}

// Box is an axis-aligned box.
type Box struct {
	min math.Vec3
	max math.Vec3
}

// NewBox creates a box from two opposite corners, in any order.
func NewBox(a, b math.Vec3) Box {
	return Box{min: a.Min(b), max: a.Max(b)}
}

// NewCube creates a cube centered on the origin, spanning [-r, r] on every axis.
func NewCube(r float64) Box {
	return NewBox(math.V3(-r, -r, -r), math.V3(r, r, r))
}

// Min returns the lowest corner.
func (b Box) Min() math.Vec3 { return b.min }

// Max returns the highest corner.
func (b Box) Max() math.Vec3 { return b.max }

// Center returns the middle of the box.
func (b Box) Center() math.Vec3 { return b.Bounds().Center() }

// Bounds returns the box as a math.Box.
func (b Box) Bounds() math.Box { return math.Box{Min: b.min, Max: b.max} }

// Vertex returns corner k (0..7); see math.Box.Vertex.
func (b Box) Vertex(k int) math.Vec3 { return b.Bounds().Vertex(k) }

// Validate checks that the box has a positive extent on every axis.
func (b Box) Validate() error {
	s := b.max.Sub(b.min)
	return errors.Join(
		positive("box", "width", s.X),
		positive("box", "height", s.Y),
		positive("box", "depth", s.Z),
	)
}
