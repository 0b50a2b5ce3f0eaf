package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/systems"
	"github.com/pthm-cable/flowtrails/vector"
)

// Panel dimensions
const (
	PanelWidth   = 260
	PanelPadding = 10
	HeaderHeight = 30

	pickRadius = 12 // px around an entity's head that counts as a hit
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorHighlight   = rl.Color{R: 255, G: 220, B: 80, A: 220}
)

// Picker finds the entity under a point.
type Picker interface {
	Pick(p vector.Vec2, radius float64) (uint64, bool)
}

// Inspector tracks the selected entity and draws its panel.
type Inspector struct {
	selected    uint64
	hasSelected bool
	panelX      int32
	panelY      int32
}

// NewInspector creates an inspector whose panel sits at (x, y).
func NewInspector(x, y int32) *Inspector {
	return &Inspector{panelX: x, panelY: y}
}

// SetPosition moves the panel.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// HandleInput selects on left click and deselects on right click. Clicks
// where blocked is true belong to other widgets and are ignored.
func (ins *Inspector) HandleInput(mouse vector.Vec2, picker Picker, blocked bool) {
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		ins.Deselect()
		return
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) || blocked {
		return
	}

	if ins.hasSelected {
		mx, my := int32(mouse.X), int32(mouse.Y)
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if mx >= closeX && mx <= closeX+20 && my >= closeY && my <= closeY+20 {
			ins.Deselect()
			return
		}
		if mx >= ins.panelX && mx <= ins.panelX+PanelWidth &&
			my >= ins.panelY && my <= ins.panelY+ins.height() {
			return
		}
	}

	if id, ok := picker.Pick(mouse, pickRadius); ok {
		ins.selected = id
		ins.hasSelected = true
	}
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the ID of the selected entity.
func (ins *Inspector) Selected() (uint64, bool) {
	return ins.selected, ins.hasSelected
}

func (ins *Inspector) height() int32 {
	h := int32(HeaderHeight + 2*PanelPadding)
	for _, f := range ExtractFields(systems.EntityView{}) {
		h += rowHeight(f)
	}
	return h
}

// Draw renders the panel for view.
func (ins *Inspector) Draw(view systems.EntityView) {
	if !ins.hasSelected {
		return
	}
	fields := ExtractFields(view)

	h := ins.height()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, h, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(h)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ENTITY #%d", view.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, f := range fields {
		y += DrawField(x, y, f)
	}
}

// DrawSelectionHighlight rings the selected entity's head and shows its
// velocity.
func (ins *Inspector) DrawSelectionHighlight(view systems.EntityView) {
	if !ins.hasSelected {
		return
	}
	center := rl.Vector2{X: float32(view.Position.X), Y: float32(view.Position.Y)}
	rl.DrawCircleLinesV(center, pickRadius, ColorHighlight)

	if view.Speed > 0 {
		tip := view.Position.Add(vector.FromAngle(view.Heading).Mul(pickRadius * 2))
		rl.DrawLineEx(center, rl.Vector2{X: float32(tip.X), Y: float32(tip.Y)}, 2, ColorHighlight)
	}
}
