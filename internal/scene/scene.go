package scene

import (
	"sort"

	"robot-viewer/internal/primitives"
	"robot-viewer/internal/scenegraph"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	gridExtent     = 5    // meters in each direction
	gridMinorStep  = 0.1  // meters
	gridMajorEvery = 10   // every 10th minor line is a major line
	gridMinorAlpha = 40
	gridMajorAlpha = 110
	axisLineAlpha  = 220
)

// lightDir is the direction to the key light (above-right), passed to the lit shader each frame.
var lightDir = [3]float32{0.5, 1, 0.5}

// Scene holds a 3D camera and draws the scene graph under Root. Update runs camera logic (free camera);
// Draw renders between BeginMode3D and EndMode3D. Based on raylib examples/core/core_3d_camera_free.
type Scene struct {
	Camera      rl.Camera3D
	Root        *scenegraph.Node
	GridVisible bool
	// CameraLocked stops camera movement and releases the cursor (e.g. while the console is open).
	CameraLocked bool
	cursorHidden bool
	registry     *primitives.Registry
	translucent  []drawItem // reused every frame
}

// drawItem is a node queued for the translucent pass.
type drawItem struct {
	node  *scenegraph.Node
	world mgl32.Mat4
	dist  float32
}

// New returns a scene with an empty root and a perspective camera looking at the origin.
// Camera: position (2,1.5,2), target (0,0.3,0), up (0,1,0), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{
		Root:        scenegraph.NewNode("scene"),
		GridVisible: true,
		registry:    primitives.NewRegistry(),
	}
	s.Camera.Position = rl.NewVector3(2, 1.5, 2)
	s.Camera.Target = rl.NewVector3(0, 0.3, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	return s
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs once per frame. Uses raylib UpdateCamera with CameraFree so the user can
// move the camera with mouse (zoom, pan) and keyboard. While the camera is unlocked the cursor
// is disabled so the mouse is captured for camera control.
func (s *Scene) Update() {
	if s.CameraLocked {
		if s.cursorHidden {
			rl.EnableCursor()
			s.cursorHidden = false
		}
		return
	}
	if !s.cursorHidden {
		rl.DisableCursor()
		s.cursorHidden = true
	}
	rl.UpdateCamera(&s.Camera, rl.CameraFree)
}

// Draw renders the 3D scene. Call after ClearBackground and before 2D overlay (e.g. terminal).
// Draws the grid on the XZ plane (Y=0) when GridVisible is true, then the scene graph:
// opaque nodes first, translucent nodes afterwards from far to near.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawGrid()
	}
	s.drawGraph()
	rl.EndMode3D()
}

// drawGraph draws every visible node with geometry. Hidden nodes prune their whole subtree.
func (s *Scene) drawGraph() {
	if s.Root == nil {
		return
	}
	cam := mgl32.Vec3{s.Camera.Position.X, s.Camera.Position.Y, s.Camera.Position.Z}
	s.registry.SetView([3]float32(cam), lightDir)
	s.translucent = s.translucent[:0]
	s.drawNode(s.Root, mgl32.Ident4(), cam)

	sort.SliceStable(s.translucent, func(i, j int) bool {
		return s.translucent[i].dist > s.translucent[j].dist
	})
	for _, it := range s.translucent {
		s.registry.Draw(it.node.Geometry, it.world, it.node.Material)
	}
}

func (s *Scene) drawNode(n *scenegraph.Node, parent mgl32.Mat4, cam mgl32.Vec3) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.LocalMatrix())
	if n.Geometry != nil && n.Material != nil {
		if n.Material.Transparent {
			center := world.Col(3).Vec3()
			s.translucent = append(s.translucent, drawItem{node: n, world: world, dist: center.Sub(cam).Len()})
		} else {
			s.registry.Draw(n.Geometry, world, n.Material)
		}
	}
	for _, c := range n.Children() {
		s.drawNode(c, world, cam)
	}
}

// PickAtMouse returns the nearest pickable node under the mouse cursor.
func (s *Scene) PickAtMouse() (scenegraph.Hit, bool) {
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
	return scenegraph.Pick(s.Root, scenegraph.Ray{
		Origin: mgl32.Vec3{ray.Position.X, ray.Position.Y, ray.Position.Z},
		Dir:    mgl32.Vec3{ray.Direction.X, ray.Direction.Y, ray.Direction.Z},
	})
}

// Unload releases GPU resources held by the scene. Call before the window closes.
func (s *Scene) Unload() {
	s.registry.Unload()
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	lines := int(gridExtent / gridMinorStep)
	var start, end rl.Vector3
	for i := -lines; i <= lines; i++ {
		c := major
		if i%gridMajorEvery != 0 {
			c = minor
		}
		v := float32(i) * gridMinorStep
		start.X, start.Y, start.Z = v, 0, -gridExtent
		end.X, end.Y, end.Z = v, 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, v
		end.X, end.Y, end.Z = gridExtent, 0, v
		rl.DrawLine3D(start, end, c)
	}

	// Axis lines through origin (X=red, Y=green, Z=blue)
	start.X, start.Y, start.Z = -gridExtent, 0, 0
	end.X, end.Y, end.Z = gridExtent, 0, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, -gridExtent, 0
	end.X, end.Y, end.Z = 0, gridExtent, 0
	rl.DrawLine3D(start, end, axisY)
	start.X, start.Y, start.Z = 0, 0, -gridExtent
	end.X, end.Y, end.Z = 0, 0, gridExtent
	rl.DrawLine3D(start, end, axisZ)
}
