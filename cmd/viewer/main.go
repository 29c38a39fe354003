package main

import (
	"robot-viewer/internal/debug"
	"robot-viewer/internal/engineconfig"
	"robot-viewer/internal/env"
	"robot-viewer/internal/graphics"
	"robot-viewer/internal/logger"
	"robot-viewer/internal/scene"
	"robot-viewer/internal/terminal"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	log := logger.New()
	if err := env.Load(".env"); err != nil {
		log.Logf("env: %v", err)
	}
	prefs, _ := engineconfig.Load(engineconfig.EngineConfigPath)
	prefs.ApplyEnv()

	scn := scene.New()
	scn.SetGridVisible(prefs.GridVisible)
	hud := debug.New()
	hud.SetShowFPS(prefs.ShowFPS)
	hud.SetShowMemAlloc(prefs.ShowMemAlloc)

	v := newViewer(log, scn, hud, prefs)
	if err := v.loadModel(prefs.ModelPath); err != nil {
		log.Log(err.Error())
	}
	if err := v.loadSpheres(prefs.SpheresPath); err != nil {
		log.Log(err.Error())
	}

	term := terminal.New(log, v.registerCommands())
	term.OnToggle = func(open bool) {
		scn.CameraLocked = open
	}

	update := func() {
		v.reloadChanged()
		term.Update()
		scn.Update()
		if term.IsOpen() && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			v.pickAtMouse()
		}
	}
	draw := func() {
		scn.Draw()
		v.drawInspector(term.IsOpen())
		term.Draw()
		hud.Draw()
	}
	unload := func() {
		v.close()
		scn.Unload()
	}
	graphics.Run(graphics.Window{Title: "robot viewer", Fullscreen: prefs.Fullscreen}, update, draw, unload)
}
