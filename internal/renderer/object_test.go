package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestObject3DAddReparents(t *testing.T) {
	a := NewObject3D("a")
	b := NewObject3D("b")
	child := NewMesh("child", nil, nil)

	a.Add(child)
	b.Add(child)

	if len(a.Children()) != 0 {
		t.Errorf("Expected child to leave its old parent, got %d children", len(a.Children()))
	}
	if len(b.Children()) != 1 || child.Parent() != &b {
		t.Error("Expected child to be attached to the new parent")
	}
}

func TestObject3DAddIgnoresSelf(t *testing.T) {
	o := NewObject3D("o")
	o.Add(&o)
	if len(o.Children()) != 0 {
		t.Error("An object should not become its own child")
	}
}

func TestRotateAccumulates(t *testing.T) {
	o := NewObject3D("o")
	o.RotateX(0.5)
	o.RotateX(0.25)
	o.RotateY(1)
	if o.Rotation != (mgl32.Vec3{0.75, 1, 0}) {
		t.Errorf("Expected rotation (0.75, 1, 0), got %v", o.Rotation)
	}
}

func TestUpdateMatrixWorld(t *testing.T) {
	scene := NewScene()
	parent := NewMesh("parent", nil, nil)
	parent.SetPosition(0, 2, 0)
	child := NewMesh("child", nil, nil)
	child.SetPosition(1, 0, 0)
	parent.Add(child)
	scene.Add(parent)

	scene.UpdateMatrixWorld()

	want := mgl32.Vec3{1, 2, 0}
	if got := child.WorldPosition(); !near(got, want) {
		t.Errorf("Expected world position %v, got %v", want, got)
	}
}

func TestLocalMatrixRotation(t *testing.T) {
	o := NewObject3D("o")
	o.RotateX(-mgl32.DegToRad(90))

	// A plane facing +Z ends up facing +Y.
	n := o.LocalMatrix().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
	if !near(n, mgl32.Vec3{0, 1, 0}) {
		t.Errorf("Expected +Y, got %v", n)
	}
}

func TestSceneTraverseSkipsRoot(t *testing.T) {
	scene := NewScene()
	a := NewMesh("a", nil, nil)
	b := NewMesh("b", nil, nil)
	a.Add(b)
	scene.Add(a, NewAxesHelper(1))

	var names []string
	scene.Traverse(func(n Node) {
		names = append(names, n.Object().Name)
	})

	want := []string{"a", "b", "axes"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < 1e-4
}
