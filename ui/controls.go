package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// KeyBinding describes a non-overlay shortcut for the help panel.
type KeyBinding struct {
	KeyLabel string
	Action   string
}

// ControlsPanel lists overlay toggles and other shortcuts.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition moves the panel.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Draw renders overlays with their state, then bindings. Returns the Y
// below the panel.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, bindings []KeyBinding) int32 {
	r := c.renderer
	pad := r.Theme.Padding
	lh := r.Theme.LineHeight

	descs := overlays.All()
	lines := int32(len(descs)+len(bindings)) + 3
	height := lines*lh + pad*2
	r.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + pad
	y := c.y + pad
	inner := c.width - pad*2

	y = r.DrawSectionHeader(x, y, "Overlays")
	for _, d := range descs {
		c.drawToggle(x, y, d, overlays.IsEnabled(d.ID), inner)
		y += lh
	}

	y = r.DrawSectionHeader(x, y+4, "Keys")
	for _, b := range bindings {
		c.drawKey(x, y, b.Action, b.KeyLabel, r.Theme.LabelColor, inner)
		y += lh
	}
	return c.y + height
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	status := rl.Color{R: 80, G: 80, B: 80, A: 255}
	name := c.renderer.Theme.LabelColor
	if enabled {
		status = rl.Color{R: 100, G: 200, B: 100, A: 255}
		name = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, status)
	c.drawKey(x+14, y, desc.Name, desc.KeyLabel, name, width-14)
}

func (c *ControlsPanel) drawKey(x, y int32, label, key string, color rl.Color, width int32) {
	fs := c.renderer.Theme.FontSize
	rl.DrawText(label, x, y, fs, color)
	if key == "" {
		return
	}
	text := fmt.Sprintf("[%s]", key)
	rl.DrawText(text, x+width-rl.MeasureText(text, fs), y, fs, c.renderer.Theme.MutedColor)
}
