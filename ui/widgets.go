package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/gradient"
	"github.com/pthm-cable/flowtrails/renderer"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawGradient draws g as a horizontal strip, sampling one color per pixel
// column. Returns the new Y position.
func (r *Renderer) DrawGradient(x, y, width, height int32, g gradient.Gradient) int32 {
	rl.DrawRectangle(x, y, width, height, rl.Black)
	for i := int32(0); i < width; i++ {
		ratio := float64(i) / float64(max(width-1, 1))
		rl.DrawRectangle(x+i, y, 1, height, renderer.ToRGBA(g.ColorAt(ratio)))
	}
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
	return y + height + 4
}
