package main

import (
	"errors"
	"fmt"
	"strings"

	"robot-viewer/internal/collision"
	"robot-viewer/internal/commands"
)

// registerCommands builds the console commands that drive the viewer.
func (v *viewer) registerCommands() *commands.Registry {
	reg := commands.NewRegistry()

	colFS := commands.NewFlagSet("collision")
	colShow := colFS.Bool("show", false, "show collision spheres")
	colHide := colFS.Bool("hide", false, "hide collision spheres")
	colClear := colFS.Bool("clear", false, "remove all collision spheres")
	colLoad := colFS.String("load", "", "load a sphere hierarchy file")
	colOpacity := colFS.Float64("opacity", -1, "sphere opacity in [0,1]")
	reg.Register("collision", "-show | -hide | -clear | -load <file> | -opacity <a>", colFS, func() error {
		defer func() {
			*colShow, *colHide, *colClear, *colLoad, *colOpacity = false, false, false, "", -1
		}()
		if *colShow && *colHide {
			return errors.New("collision: -show and -hide are exclusive")
		}
		if *colLoad != "" {
			if err := v.loadSpheres(*colLoad); err != nil {
				return err
			}
			v.prefs.SpheresPath = *colLoad
		}
		if *colClear {
			v.overlay.Clear()
			v.sets = nil
		}
		if *colShow || *colHide {
			v.overlay.SetVisible(*colShow)
			v.prefs.ShowCollision = *colShow
		}
		if *colOpacity >= 0 {
			v.overlay.SetOpacity(float32(*colOpacity))
			v.prefs.CollisionOpacity = v.overlay.Opacity()
		}
		if *colShow || *colHide || *colOpacity >= 0 || *colLoad != "" {
			v.savePrefs()
		}
		v.log.Log(v.status())
		return nil
	})

	gridFS := commands.NewFlagSet("grid")
	gridOn := gridFS.Bool("on", false, "show the floor grid")
	gridOff := gridFS.Bool("off", false, "hide the floor grid")
	reg.Register("grid", "-on | -off", gridFS, func() error {
		defer func() { *gridOn, *gridOff = false, false }()
		on, err := toggle("grid", *gridOn, *gridOff)
		if err != nil {
			return err
		}
		v.scn.SetGridVisible(on)
		v.prefs.GridVisible = on
		v.savePrefs()
		return nil
	})

	fpsFS := commands.NewFlagSet("fps")
	fpsOn := fpsFS.Bool("on", false, "show FPS and memory")
	fpsOff := fpsFS.Bool("off", false, "hide FPS and memory")
	reg.Register("fps", "-on | -off", fpsFS, func() error {
		defer func() { *fpsOn, *fpsOff = false, false }()
		on, err := toggle("fps", *fpsOn, *fpsOff)
		if err != nil {
			return err
		}
		v.hud.SetShowFPS(on)
		v.hud.SetShowMemAlloc(on)
		v.prefs.ShowFPS, v.prefs.ShowMemAlloc = on, on
		v.savePrefs()
		return nil
	})

	pickFS := commands.NewFlagSet("pick")
	reg.Register("pick", "<link>", pickFS, func() error {
		link := strings.TrimSpace(strings.Join(pickFS.Args(), " "))
		if link == "" {
			return errors.New("pick: missing link name")
		}
		v.selectLink(link)
		return nil
	})

	linksFS := commands.NewFlagSet("links")
	reg.Register("links", "list model links", linksFS, func() error {
		names := v.model.LinkNames()
		if len(names) == 0 {
			return errors.New("links: no model loaded")
		}
		for _, name := range names {
			link := collision.LinkForNode(v.model.Root.FindByName(name))
			v.log.Logf("%s (%d spheres)", name, v.overlay.CountForLink(link))
		}
		return nil
	})
	return reg
}

// toggle reads an -on/-off flag pair.
func toggle(name string, on, off bool) (bool, error) {
	switch {
	case on && off:
		return false, fmt.Errorf("%s: -on and -off are exclusive", name)
	case !on && !off:
		return false, fmt.Errorf("%s: need -on or -off", name)
	}
	return on, nil
}
