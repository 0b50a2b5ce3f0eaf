package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Background clears the frame to a solid color.
type Background struct {
	color rl.Color
}

// NewBackground parses a hex color such as "#000" or "#101820".
func NewBackground(hex string) (*Background, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("parsing background %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return &Background{color: rl.Color{R: r, G: g, B: b, A: 255}}, nil
}

// Color returns the clear color.
func (bg *Background) Color() rl.Color {
	return bg.color
}

// Draw clears the current frame.
func (bg *Background) Draw() {
	rl.ClearBackground(bg.color)
}
