package ui

import (
	"fmt"
	"log/slog"
	"slices"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowtrails/config"
	"github.com/pthm-cable/flowtrails/gradient"
)

const (
	rowHeight   = 20
	buttonGap   = 6
	stripHeight = 10
	maxPreviews = 4
	pastedHold  = 8000
)

// Panel edits the group set with raygui controls, one group at a time.
type Panel struct {
	renderer *Renderer
	sliders  []SliderDescriptor
	x, y     int32
	width    int32
	visible  bool
	selected string
}

// NewPanel creates a hidden panel.
func NewPanel(x, y, width int32) *Panel {
	return &Panel{
		renderer: NewRenderer(),
		sliders:  GroupSliders(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetVisible shows or hides the panel.
func (p *Panel) SetVisible(visible bool) {
	p.visible = visible
}

// IsVisible returns whether the panel is shown.
func (p *Panel) IsVisible() bool {
	return p.visible
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Selected returns the id of the group being edited.
func (p *Panel) Selected() string {
	return p.selected
}

// SetPosition moves the panel, e.g. after a resize.
func (p *Panel) SetPosition(x, y int32) {
	p.x, p.y = x, y
}

func (p *Panel) height() int32 {
	lh := p.renderer.Theme.LineHeight
	rows := int32(len(p.sliders))*(lh+rowHeight+2) + 7*(rowHeight+buttonGap)
	return rows + maxPreviews*(lh+stripHeight+4) + p.renderer.Theme.Padding*3 + lh
}

// Draw renders the panel and applies edits to set in place. Returns true
// if set changed.
func (p *Panel) Draw(set *config.GroupSet) bool {
	if !p.visible || set == nil {
		return false
	}
	ids := set.IDs()
	if len(ids) > 0 && !slices.Contains(ids, p.selected) {
		p.selected = ids[0]
	}

	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := float32(p.x + pad)
	y := p.y + pad
	inner := float32(p.width - pad*2)
	half := (inner - buttonGap) / 2
	changed := false

	rl.DrawText("Groups", int32(x), y, 16, rl.White)
	y += r.Theme.LineHeight + 4

	// Group selector.
	i := slices.Index(ids, p.selected)
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: 30, Height: rowHeight}, "<") && len(ids) > 0 {
		p.selected = ids[(i-1+len(ids))%len(ids)]
	}
	label := "no groups"
	if i >= 0 {
		label = fmt.Sprintf("Group %s (%d/%d)", p.selected, i+1, len(ids))
	}
	rl.DrawText(label, int32(x)+40, y+4, r.Theme.FontSize, r.Theme.ValueColor)
	if gui.Button(rl.Rectangle{X: x + inner - 30, Y: float32(y), Width: 30, Height: rowHeight}, ">") && len(ids) > 0 {
		p.selected = ids[(i+1)%len(ids)]
	}
	y += rowHeight + buttonGap

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: rowHeight}, "Add group") {
		id := set.NextID()
		set.Set(id, config.DefaultGroup())
		p.selected = id
		changed = true
		slog.Debug("group added", "group", id)
	}
	if gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: float32(y), Width: half, Height: rowHeight}, "Remove group") && set.Len() > 1 {
		set.Delete(p.selected)
		p.selected = ""
		return true
	}
	y += rowHeight + buttonGap

	cfg := set.Get(p.selected)
	if cfg == nil {
		return changed
	}

	for _, d := range p.sliders {
		rl.DrawText(d.Label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		text := d.Text(cfg)
		tw := rl.MeasureText(text, r.Theme.FontSize)
		rl.DrawText(text, int32(x+inner)-tw, y, r.Theme.FontSize, r.Theme.ValueColor)
		y += r.Theme.LineHeight

		lo, hi := d.Range()
		pos := d.Position(d.Get(cfg))
		next := gui.SliderBar(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: rowHeight}, "", "", pos, lo, hi)
		if next != pos {
			d.Set(cfg, d.Value(next))
			changed = true
		}
		y += rowHeight + 2
	}

	// Cycling choices.
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: rowHeight}, "Spawn: "+string(cfg.SpawnLocation)) {
		cfg.SpawnLocation = cfg.SpawnLocation.Next()
		changed = true
	}
	if gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: float32(y), Width: half, Height: rowHeight}, "Noise: "+string(cfg.NoiseType)) {
		cfg.NoiseType = cfg.NoiseType.Next()
		changed = true
	}
	y += rowHeight + buttonGap

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: rowHeight}, "Separate: "+targetLabel(cfg.SeparationTargetGroupID)) {
		cfg.SeparationTargetGroupID = set.NextTarget(cfg.SeparationTargetGroupID)
		changed = true
	}
	if gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: float32(y), Width: half, Height: rowHeight}, "Follow: "+targetLabel(cfg.FollowTargetGroupID)) {
		cfg.FollowTargetGroupID = set.NextTarget(cfg.FollowTargetGroupID)
		changed = true
	}
	y += rowHeight + buttonGap

	// Color stops.
	y = r.DrawSectionHeader(int32(x), y, "Colors")
	for n, s := range cfg.ColorAnimation.Stops {
		if n >= maxPreviews {
			break
		}
		rl.DrawText(fmt.Sprintf("stop %d, hold %.0f ms", n+1, s.Hold), int32(x), y, r.Theme.FontSize, r.Theme.MutedColor)
		y += r.Theme.LineHeight
		y = r.DrawGradient(int32(x), y, int32(inner), stripHeight, s.Gradient)
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: half, Height: rowHeight}, "Paste stop") {
		if g, err := gradient.Parse(rl.GetClipboardText()); err != nil || len(g) == 0 {
			slog.Warn("clipboard is not a gradient", "error", err)
		} else {
			cfg.ColorAnimation.Stops = append(cfg.ColorAnimation.Stops, gradient.Stop{Gradient: g, Hold: pastedHold})
			changed = true
		}
	}
	if gui.Button(rl.Rectangle{X: x + half + buttonGap, Y: float32(y), Width: half, Height: rowHeight}, "Drop stop") && len(cfg.ColorAnimation.Stops) > 1 {
		stops := cfg.ColorAnimation.Stops
		cfg.ColorAnimation.Stops = stops[:len(stops)-1:len(stops)-1]
		changed = true
	}
	y += rowHeight + buttonGap

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: rowHeight}, "Hide panel [H]") {
		p.visible = false
	}

	return changed
}

func targetLabel(id string) string {
	if id == "" {
		return "none"
	}
	return id
}
