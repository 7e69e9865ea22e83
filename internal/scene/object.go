package scene

import (
	"math"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var nextID atomic.Uint32

// Node is anything that can sit in the scene graph.
type Node interface {
	Object() *Object
}

// Euler is a rotation in radians applied in X, then Y, then Z order.
type Euler struct {
	X, Y, Z float32
}

// Object carries the transform and hierarchy shared by every node.
// Embed it and call Init with the outer value.
type Object struct {
	ID   uint32
	UUID uuid.UUID
	Name string

	Position mgl32.Vec3
	Rotation Euler
	Scale    mgl32.Vec3
	Up       mgl32.Vec3
	Visible  bool

	self     Node
	parent   *Object
	children []Node
	camera   bool

	matrixWorld mgl32.Mat4
}

// Init resets o to the identity transform and records self as the node that
// embeds it. It must be called before o is added to a graph.
func (o *Object) Init(self Node) {
	o.ID = nextID.Add(1)
	o.UUID = uuid.New()
	o.Position = mgl32.Vec3{}
	o.Rotation = Euler{}
	o.Scale = mgl32.Vec3{1, 1, 1}
	o.Up = mgl32.Vec3{0, 1, 0}
	o.Visible = true
	o.self = self
	o.matrixWorld = mgl32.Ident4()
}

// Object implements Node.
func (o *Object) Object() *Object { return o }

// Node returns the value embedding o.
func (o *Object) Node() Node {
	if o.self == nil {
		return o
	}
	return o.self
}

// MarkCamera makes LookAt point the object's -Z axis at its target.
func (o *Object) MarkCamera() { o.camera = true }

// Parent returns the immediate ancestor, nil for roots.
func (o *Object) Parent() *Object { return o.parent }

// Children returns the immediate descendants in insertion order.
func (o *Object) Children() []Node { return o.children }

// Add attaches each child to o, detaching it from any previous parent.
// Adding an object to itself is ignored.
func (o *Object) Add(children ...Node) {
	for _, child := range children {
		c := child.Object()
		if c == o {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(child)
		}
		c.parent = o
		o.children = append(o.children, c.Node())
	}
}

// Remove detaches each child from o. Nodes that are not children of o are ignored.
func (o *Object) Remove(children ...Node) {
	for _, child := range children {
		c := child.Object()
		for i, existing := range o.children {
			if existing.Object() == c {
				o.children = append(o.children[:i], o.children[i+1:]...)
				c.parent = nil
				break
			}
		}
	}
}

// Traverse calls fn for o and then every descendant, depth first.
func (o *Object) Traverse(fn func(Node)) {
	fn(o.Node())
	for _, child := range o.children {
		child.Object().Traverse(fn)
	}
}

// TraverseVisible is Traverse that skips invisible subtrees.
func (o *Object) TraverseVisible(fn func(Node)) {
	if !o.Visible {
		return
	}
	fn(o.Node())
	for _, child := range o.children {
		child.Object().TraverseVisible(fn)
	}
}

// Quaternion returns the rotation as a quaternion.
func (o *Object) Quaternion() mgl32.Quat {
	return eulerToQuat(o.Rotation)
}

// SetQuaternion sets the rotation from a unit quaternion.
func (o *Object) SetQuaternion(q mgl32.Quat) {
	o.Rotation = eulerFromMatrix(q.Normalize().Mat4())
}

// Matrix returns the local transform: translate * rotate * scale.
func (o *Object) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(rotationMatrix(o.Rotation)).
		Mul4(mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2]))
}

// UpdateMatrixWorld recomputes the cached world matrix of o and its descendants.
func (o *Object) UpdateMatrixWorld() {
	if o.parent == nil {
		o.matrixWorld = o.Matrix()
	} else {
		o.matrixWorld = o.parent.matrixWorld.Mul4(o.Matrix())
	}
	for _, child := range o.children {
		child.Object().UpdateMatrixWorld()
	}
}

// MatrixWorld returns the world matrix cached by the last UpdateMatrixWorld.
func (o *Object) MatrixWorld() mgl32.Mat4 { return o.matrixWorld }

// WorldMatrix computes the world matrix from the current transforms of o and its ancestors.
func (o *Object) WorldMatrix() mgl32.Mat4 {
	m := o.Matrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.Matrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the origin of o in world space.
func (o *Object) WorldPosition() mgl32.Vec3 {
	return o.WorldMatrix().Col(3).Vec3()
}

// LookAt rotates o to face target, given in world space. Cameras point -Z at the
// target, everything else points +Z.
func (o *Object) LookAt(target mgl32.Vec3) {
	position := o.WorldPosition()

	var rot mgl32.Mat4
	if o.camera {
		rot = lookRotation(position, target, o.Up)
	} else {
		rot = lookRotation(target, position, o.Up)
	}
	q := mgl32.Mat4ToQuat(rot)

	if o.parent != nil {
		q = o.parent.worldQuaternion().Inverse().Mul(q)
	}
	o.SetQuaternion(q)
}

func (o *Object) worldQuaternion() mgl32.Quat {
	q := o.Quaternion()
	for p := o.parent; p != nil; p = p.parent {
		q = p.Quaternion().Mul(q)
	}
	return q
}

// lookRotation builds the rotation whose +Z axis points from target to eye.
func lookRotation(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	z := eye.Sub(target)
	if z.Len() == 0 {
		z[2] = 1
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() == 0 {
		// up and z are parallel
		if math.Abs(float64(up[2])) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}

func rotationMatrix(e Euler) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(e.X).
		Mul4(mgl32.HomogRotate3DY(e.Y)).
		Mul4(mgl32.HomogRotate3DZ(e.Z))
}

func eulerToQuat(e Euler) mgl32.Quat {
	c1, s1 := cosSin(e.X / 2)
	c2, s2 := cosSin(e.Y / 2)
	c3, s3 := cosSin(e.Z / 2)

	return mgl32.Quat{
		W: c1*c2*c3 - s1*s2*s3,
		V: mgl32.Vec3{
			s1*c2*c3 + c1*s2*s3,
			c1*s2*c3 - s1*c2*s3,
			c1*c2*s3 + s1*s2*c3,
		},
	}
}

// eulerFromMatrix extracts XYZ Euler angles from the rotation part of m.
func eulerFromMatrix(m mgl32.Mat4) Euler {
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	y := float32(math.Asin(float64(mgl32.Clamp(m13, -1, 1))))
	if math.Abs(float64(m13)) < 0.9999999 {
		return Euler{
			X: atan2(-m23, m33),
			Y: y,
			Z: atan2(-m12, m11),
		}
	}
	return Euler{X: atan2(m32, m22), Y: y}
}

func cosSin(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(c), float32(s)
}

func atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}
