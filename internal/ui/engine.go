package ui

import (
	_ "embed"
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

//go:embed default.css
var defaultCSS string

// Engine holds the current stylesheet and nodes, and draws them with raylib's default font.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached and only recomputed when sheet or nodes change to avoid per-frame allocations.
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
}

// New creates a UI engine with the built-in stylesheet and no nodes.
func New() *Engine {
	sheet, err := ParseCSS(defaultCSS)
	if err != nil {
		panic(err)
	}
	return &Engine{sheet: sheet}
}

// LoadCSS loads a CSS file from path and appends its rules after the current ones, so it can override the defaults.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ui: load css: %w", err)
	}
	extra, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	merged := &Stylesheet{}
	if e.sheet != nil {
		merged.Rules = append(merged.Rules, e.sheet.Rules...)
	}
	merged.Rules = append(merged.Rules, extra.Rules...)
	e.SetStylesheet(merged)
	return nil
}

// SetStylesheet replaces the stylesheet.
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

// SetNodes replaces all nodes. Passing the same slice contents again keeps the style cache.
func (e *Engine) SetNodes(nodes []*Node) {
	if sameNodes(e.nodes, nodes) {
		return
	}
	e.nodes = append(e.nodes[:0], nodes...)
	e.cacheValid = false
}

func sameNodes(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Draw draws all nodes: for each node, resolve style (cached), then draw background, border, and text.
func (e *Engine) Draw() {
	if len(e.nodes) == 0 {
		return
	}
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	if !e.cacheValid {
		e.cachedStyles = e.cachedStyles[:0]
		for _, n := range e.nodes {
			e.cachedStyles = append(e.cachedStyles, e.sheet.Resolve(n))
		}
		e.cacheValid = true
	}
	for i, n := range e.nodes {
		style := e.cachedStyles[i]
		n.Bounds = Place(style, screenW, screenH)
		x, y := int32(n.Bounds.X), int32(n.Bounds.Y)
		w, h := int32(n.Bounds.Width), int32(n.Bounds.Height)

		bg := style.Background
		if n.Fill.A > 0 {
			bg = n.Fill
		}
		if bg.A > 0 {
			rl.DrawRectangle(x, y, w, h, bg)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text != "" {
			rl.DrawText(n.Text, x+style.Padding, y+style.Padding, style.FontSize, style.Color)
		}
	}
}

// Place computes a node's screen rectangle from its style. Percentages position the box inside the free space;
// negative pixel offsets are measured from the right or bottom edge.
func Place(style ComputedStyle, screenW, screenH int32) rl.Rectangle {
	w, h := style.Width, style.Height
	x, y := style.Left, style.Top
	switch {
	case style.LeftPct >= 0:
		x = (screenW - w) * style.LeftPct / 100
	case x < 0:
		x = screenW + x - w
	}
	switch {
	case style.TopPct >= 0:
		y = (screenH - h) * style.TopPct / 100
	case y < 0:
		y = screenH + y - h
	}
	return rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
}
