package main

import (
	"fmt"

	"robot-viewer/internal/collision"
	"robot-viewer/internal/debug"
	"robot-viewer/internal/engineconfig"
	"robot-viewer/internal/logger"
	"robot-viewer/internal/model"
	"robot-viewer/internal/scene"
	"robot-viewer/internal/scenegraph"
	"robot-viewer/internal/spheres"
	"robot-viewer/internal/ui"
	"robot-viewer/internal/watch"
)

// viewer ties the loaded model, its collision overlay and the on-screen panels together.
type viewer struct {
	log       *logger.Logger
	scn       *scene.Scene
	hud       *debug.Debug
	prefs     engineconfig.EnginePrefs
	model     *model.Model
	overlay   *collision.Overlay
	sets      []spheres.LinkSpheres
	watcher   *watch.Watcher // nil when file watching is off
	modelPath string
	setsPath  string
	ui        *ui.Engine
	inspector *ui.Inspector
	selected  string // link shown in the inspector
	uiNodes   []*ui.Node
}

func newViewer(log *logger.Logger, scn *scene.Scene, hud *debug.Debug, prefs engineconfig.EnginePrefs) *viewer {
	v := &viewer{
		log:       log,
		scn:       scn,
		hud:       hud,
		prefs:     prefs,
		overlay:   collision.New(scn.Root, log),
		ui:        ui.New(),
		inspector: ui.NewInspector(),
	}
	v.overlay.SetOpacity(prefs.CollisionOpacity)
	v.overlay.SetVisible(prefs.ShowCollision)
	hud.Collision = func() (int, int, bool) {
		return v.overlay.Len(), v.overlay.LinkCount(), v.overlay.Visible()
	}
	hud.SetShowCollision(true)
	if err := v.ui.LoadCSS("assets/ui/viewer.css"); err == nil {
		log.Log("ui: loaded assets/ui/viewer.css")
	}
	if prefs.WatchFiles {
		w, err := watch.New(log)
		if err != nil {
			log.Log(err.Error())
		} else {
			v.watcher = w
		}
	}
	return v
}

// watchFile reloads path whenever it changes on disk.
func (v *viewer) watchFile(path string) {
	if v.watcher == nil {
		return
	}
	if err := v.watcher.Add(path); err != nil {
		v.log.Log(err.Error())
	}
}

// reloadChanged applies file changes reported by the watcher. Call once per frame on the main thread.
func (v *viewer) reloadChanged() {
	if v.watcher == nil {
		return
	}
	for {
		select {
		case path := <-v.watcher.Changed():
			var err error
			switch {
			case watch.SamePath(path, v.modelPath):
				err = v.loadModel(v.modelPath)
			case watch.SamePath(path, v.setsPath):
				err = v.loadSpheres(v.setsPath)
			default:
				continue
			}
			if err != nil {
				v.log.Log(err.Error())
			}
		default:
			return
		}
	}
}

func (v *viewer) close() {
	if v.watcher != nil {
		_ = v.watcher.Close()
	}
}

// loadModel replaces the current model and re-attaches the current spheres to it.
// The path is watched even when loading fails, so fixing the file reloads it.
func (v *viewer) loadModel(path string) error {
	v.modelPath = path
	v.watchFile(path)
	m, err := model.Load(path)
	if err != nil {
		return err
	}
	if v.model != nil {
		v.model.Root.RemoveFromParent()
	}
	v.model = m
	v.scn.Root.Add(m.Root)
	v.log.Logf("model: %s (%d links) from %s", m.Name, len(m.LinkNames()), path)
	if v.sets != nil {
		v.overlay.ShowFromParsed(v.model, v.sets)
	}
	return nil
}

// loadSpheres reads a sphere hierarchy, keeps the finest valid set per link and shows it on the model.
func (v *viewer) loadSpheres(path string) error {
	v.setsPath = path
	v.watchFile(path)
	h, err := spheres.Load(path)
	if err != nil {
		return err
	}
	v.sets = spheres.Reduce(h)
	v.log.Logf("spheres: %d spheres for %d links from %s", spheres.Count(v.sets), len(v.sets), path)
	v.overlay.ShowFromParsed(v.model, v.sets)
	return nil
}

func (v *viewer) savePrefs() {
	if err := engineconfig.Save(engineconfig.EngineConfigPath, v.prefs); err != nil {
		v.log.Logf("config: %v", err)
	}
}

// selectLink shows link in the inspector and logs where it resolved.
func (v *viewer) selectLink(link string) {
	v.selected = link
	sel := v.selection()
	if sel.Node == "" {
		v.log.Logf("pick: %s not found in model", link)
		return
	}
	v.log.Logf("pick: %s -> %s at (%.3f, %.3f, %.3f)", link, sel.Node, sel.Position[0], sel.Position[1], sel.Position[2])
}

func (v *viewer) pickAtMouse() {
	hit, ok := v.scn.PickAtMouse()
	if !ok {
		v.selected = ""
		return
	}
	if n := model.LinkNode(hit.Node); n != nil {
		v.selectLink(collision.LinkForNode(n))
	}
}

// selection describes the selected link for the inspector.
func (v *viewer) selection() ui.Selection {
	c := collision.ColorForLink(v.selected)
	sel := ui.Selection{
		Link:    v.selected,
		Spheres: v.overlay.CountForLink(v.selected),
		Color:   c.AsRGBA(),
		Hex:     c.Hex(),
	}
	var n *scenegraph.Node
	if root := v.model.RootNode(); root != nil {
		n = collision.FindLinkNode(root, v.selected)
	}
	if n != nil {
		sel.Node = n.Name
		sel.Position = [3]float32(n.WorldPosition())
	}
	return sel
}

func (v *viewer) drawInspector(open bool) {
	v.uiNodes = v.uiNodes[:0]
	if open && v.selected != "" {
		v.uiNodes = v.inspector.AppendNodes(v.uiNodes, true, v.selection())
	}
	v.ui.SetNodes(v.uiNodes)
	v.ui.Draw()
}

func (v *viewer) status() string {
	state := "shown"
	if !v.overlay.Visible() {
		state = "hidden"
	}
	return fmt.Sprintf("collision: %d spheres on %d links, %s, opacity %.2f",
		v.overlay.Len(), v.overlay.LinkCount(), state, v.overlay.Opacity())
}
