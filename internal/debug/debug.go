package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	hudFontSize   = 20
	hudPadding    = 12
	hudLineHeight = hudFontSize + 4
	// updateInterval: only refresh HUD text every N frames to reduce allocations.
	updateInterval = 30
)

// CollisionStats reports what the collision overlay currently shows.
type CollisionStats func() (spheres, links int, visible bool)

// Debug holds runtime debugging features (FPS, memory, collision overlay counters). All overlays are off by default.
type Debug struct {
	ShowFPS       bool
	ShowMemAlloc  bool
	ShowCollision bool
	Collision     CollisionStats // optional; the collision line is skipped when nil
	frameCount    uint32
	lastFpsText   string
	lastMemText   string
	lastColText   string
	lastMemStats  runtime.MemStats
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetShowCollision sets whether the collision sphere counter is drawn (top-right, last line).
func (d *Debug) SetShowCollision(show bool) {
	d.ShowCollision = show
	d.lastColText = ""
}

// Draw renders any enabled debug overlays. Call after scene and terminal in the draw loop.
// Text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") || (d.ShowCollision && d.lastColText == "") {
		update = true
	}

	y := int32(hudPadding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, y)
		y += hudLineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, y)
		y += hudLineHeight
	}
	if d.ShowCollision && d.Collision != nil {
		if update {
			n, links, visible := d.Collision()
			state := "shown"
			if !visible {
				state = "hidden"
			}
			d.lastColText = fmt.Sprintf("Spheres: %d (%d links, %s)", n, links, state)
		}
		drawRight(d.lastColText, y)
	}
}

// drawRight draws text right-aligned at y in green with the default font.
func drawRight(text string, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, hudFontSize)
	x := int32(rl.GetScreenWidth()) - w - hudPadding
	rl.DrawText(text, x, y, hudFontSize, rl.Green)
}
