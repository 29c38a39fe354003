package primitives

import (
	"fmt"

	"robot-viewer/internal/scenegraph"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Registry maps scene-graph geometry to unit meshes and holds the shared lit/unlit raylib materials.
// Meshes are created on first use so that GPU resources are allocated after the window/OpenGL context exists.
// Every draw scales a unit mesh, so a thousand spheres of different radii share one mesh.
type Registry struct {
	meshes   map[string]rl.Mesh
	lit      rl.Material
	unlit    rl.Material
	loaded   bool
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no meshes.
func NewRegistry() *Registry {
	return &Registry{
		meshes:   make(map[string]rl.Mesh),
		lightDir: [3]float32{0.5, 1, 0.5}, // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

const defaultCylinderSlices = 16

// defaultPlaneResX/Z: 1 subdivision = single quad (1×1 in XZ).
const defaultPlaneResX = 1
const defaultPlaneResZ = 1

func (r *Registry) ensureMaterials() {
	if r.loaded {
		return
	}
	r.lit = rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		r.lit.Shader = shader
	}
	r.unlit = rl.LoadMaterialDefault()
	r.loaded = true
}

// meshFor returns the cached unit mesh for g, generating it on first use. Unit meshes are radius 1 spheres and
// cylinders (height 1, base at Y=0), a 1×1×1 cube and a 1×1 plane.
func (r *Registry) meshFor(g scenegraph.Geometry) (rl.Mesh, bool) {
	key := meshKey(g)
	if m, ok := r.meshes[key]; ok {
		return m, true
	}
	var m rl.Mesh
	switch g := g.(type) {
	case scenegraph.SphereGeometry:
		rings, slices := g.HeightSegments, g.WidthSegments
		if rings <= 0 {
			rings = 12
		}
		if slices <= 0 {
			slices = 16
		}
		m = rl.GenMeshSphere(1, rings, slices)
	case scenegraph.BoxGeometry:
		m = rl.GenMeshCube(1, 1, 1)
	case scenegraph.CylinderGeometry:
		slices := g.Segments
		if slices <= 0 {
			slices = defaultCylinderSlices
		}
		m = rl.GenMeshCylinder(1, 1, slices)
	case scenegraph.PlaneGeometry:
		m = rl.GenMeshPlane(1, 1, defaultPlaneResX, defaultPlaneResZ)
	default:
		return m, false
	}
	r.meshes[key] = m
	return m, true
}

// meshKey separates tessellations of the same kind, e.g. "sphere:16x12".
func meshKey(g scenegraph.Geometry) string {
	switch g := g.(type) {
	case scenegraph.SphereGeometry:
		return fmt.Sprintf("%s:%dx%d", g.Kind(), g.WidthSegments, g.HeightSegments)
	case scenegraph.CylinderGeometry:
		return fmt.Sprintf("%s:%d", g.Kind(), g.Segments)
	}
	return string(g.Kind())
}

// meshTransform returns the scale (and centering offset) that turns the unit mesh into g.
// Raylib cylinders have their base at Y=0, so they are shifted down by half their height.
func meshTransform(g scenegraph.Geometry) mgl32.Mat4 {
	switch g := g.(type) {
	case scenegraph.SphereGeometry:
		return mgl32.Scale3D(g.Radius, g.Radius, g.Radius)
	case scenegraph.BoxGeometry:
		return mgl32.Scale3D(g.Size.X(), g.Size.Y(), g.Size.Z())
	case scenegraph.CylinderGeometry:
		return mgl32.Scale3D(g.Radius, g.Height, g.Radius).Mul4(mgl32.Translate3D(0, -0.5, 0))
	case scenegraph.PlaneGeometry:
		return mgl32.Scale3D(g.Width, 1, g.Depth)
	}
	return mgl32.Ident4()
}

// Draw draws geometry g with world transform world and material mat.
// Must be called between BeginMode3D and EndMode3D; SetView must be called once per frame before drawing.
// Render state (blend, depth write, depth test, culling) follows the material and is restored afterwards.
func (r *Registry) Draw(g scenegraph.Geometry, world mgl32.Mat4, mat *scenegraph.Material) {
	if g == nil || mat == nil {
		return
	}
	mesh, ok := r.meshFor(g)
	if !ok {
		return
	}
	r.ensureMaterials()

	mtl := r.lit
	if mat.Shading == scenegraph.ShadingUnlit {
		mtl = r.unlit
	} else {
		r.setLitShaderUniforms(mtl.Shader)
	}
	c := mat.EffectiveColor()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, c.A)
	}

	if mat.Transparent {
		rl.BeginBlendMode(rl.BlendAlpha)
		defer rl.EndBlendMode()
	}
	if !mat.DepthWrite {
		rl.DisableDepthMask()
		defer rl.EnableDepthMask()
	}
	if !mat.DepthTest {
		rl.DisableDepthTest()
		defer rl.EnableDepthTest()
	}
	if mat.Side == scenegraph.SideDouble {
		rl.DisableBackfaceCulling()
		defer rl.EnableBackfaceCulling()
	}
	rl.DrawMesh(mesh, mtl, ToMatrix(world.Mul4(meshTransform(g))))
}

// ToMatrix converts a column-major mgl32 matrix to raylib's layout (M<i> is column-major index i).
func ToMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}

// Unload releases every GPU mesh and shader. Call before closing the window.
func (r *Registry) Unload() {
	for key, m := range r.meshes {
		rl.UnloadMesh(&m)
		delete(r.meshes, key)
	}
	if r.loaded {
		if rl.IsShaderValid(r.lit.Shader) {
			rl.UnloadShader(r.lit.Shader)
		}
		r.loaded = false
	}
}

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity, and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}
