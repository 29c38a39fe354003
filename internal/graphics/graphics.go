package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the viewer window. Zero Width/Height in windowed mode means 1280×720.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// Run opens the window and runs the main loop. Each frame it calls update (e.g. input), then clears the screen and
// calls draw. unload, if set, runs before the window closes so GPU resources are released while the context exists.
// ESC is reserved for the console; close via the window button.
func Run(w Window, update, draw, unload func()) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	width, height := w.Width, w.Height
	if w.Fullscreen {
		rl.SetConfigFlags(rl.FlagFullscreenMode)
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	if width <= 0 || height <= 0 {
		width, height = 1280, 720
	}
	rl.InitWindow(width, height, w.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 36, 255))
		draw()
		rl.EndDrawing()
	}
	if unload != nil {
		unload()
	}
}
