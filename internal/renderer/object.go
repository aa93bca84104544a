package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Node is anything that can be placed in the scene graph.
type Node interface {
	Object() *Object3D
}

// Object3D holds the transform and children shared by every scene node.
// Rotation is an Euler triple in radians applied in X, Y, Z order.
type Object3D struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
	Visible  bool

	parent      *Object3D
	children    []Node
	matrixWorld mgl32.Mat4
}

func NewObject3D(name string) Object3D {
	return Object3D{
		Name:        name,
		Scale:       mgl32.Vec3{1, 1, 1},
		Visible:     true,
		matrixWorld: mgl32.Ident4(),
	}
}

func (o *Object3D) Object() *Object3D {
	return o
}

// Add attaches nodes as children. A node that already has a parent is moved.
func (o *Object3D) Add(nodes ...Node) {
	for _, n := range nodes {
		child := n.Object()
		if child == o {
			continue
		}
		if child.parent != nil {
			child.parent.remove(child)
		}
		child.parent = o
		o.children = append(o.children, n)
	}
}

func (o *Object3D) remove(child *Object3D) {
	for i, n := range o.children {
		if n.Object() == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

func (o *Object3D) Children() []Node {
	return o.children
}

func (o *Object3D) Parent() *Object3D {
	return o.parent
}

func (o *Object3D) SetPosition(x, y, z float32) {
	o.Position = mgl32.Vec3{x, y, z}
}

func (o *Object3D) RotateX(angle float32) {
	o.Rotation[0] += angle
}

func (o *Object3D) RotateY(angle float32) {
	o.Rotation[1] += angle
}

func (o *Object3D) RotateZ(angle float32) {
	o.Rotation[2] += angle
}

// LocalMatrix returns T * Rx * Ry * Rz * S.
func (o *Object3D) LocalMatrix() mgl32.Mat4 {
	rotation := mgl32.HomogRotate3DX(o.Rotation[0]).
		Mul4(mgl32.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(o.Rotation[2]))
	translation := mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	scale := mgl32.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2])
	return translation.Mul4(rotation).Mul4(scale)
}

// UpdateMatrixWorld recomputes world matrices for o and its subtree.
func (o *Object3D) UpdateMatrixWorld(parentWorld mgl32.Mat4) {
	o.matrixWorld = parentWorld.Mul4(o.LocalMatrix())
	for _, child := range o.children {
		child.Object().UpdateMatrixWorld(o.matrixWorld)
	}
}

func (o *Object3D) MatrixWorld() mgl32.Mat4 {
	return o.matrixWorld
}

func (o *Object3D) WorldPosition() mgl32.Vec3 {
	return o.matrixWorld.Col(3).Vec3()
}

// Traverse visits n and every descendant depth first.
func Traverse(n Node, fn func(Node)) {
	fn(n)
	for _, child := range n.Object().children {
		Traverse(child, fn)
	}
}

// Scene is the root of the graph handed to the renderer.
type Scene struct {
	Object3D
	Background mgl32.Vec3
}

func NewScene() *Scene {
	return &Scene{Object3D: NewObject3D("scene")}
}

// UpdateMatrixWorld refreshes the world transform of the whole graph.
func (s *Scene) UpdateMatrixWorld() {
	s.Object3D.UpdateMatrixWorld(mgl32.Ident4())
}

// Traverse visits every node below the scene root.
func (s *Scene) Traverse(fn func(Node)) {
	for _, child := range s.children {
		Traverse(child, fn)
	}
}
