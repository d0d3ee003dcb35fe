package gui

import (
	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/driftfield/internal/viz"
)

func toColor(c lipgloss.Color) rl.Color {
	v := viz.RGBA(c)
	return rl.NewColor(v.R, v.G, v.B, v.A)
}

// RenderField draws every particle as a filled circle over a soft glow,
// then marks the pointer.
func (a *App) RenderField() {
	col := toColor(a.Theme.Primary)
	glow := toColor(a.Theme.Secondary)
	texSize := float32(a.ParticleTex.Width)

	for _, c := range a.Last.Commands {
		r := float32(c.Diameter / 2)
		pos := rl.NewVector2(float32(c.X), float32(c.Y))

		scale := 3 * r / texSize
		origin := rl.NewVector2(pos.X-1.5*r, pos.Y-1.5*r)
		rl.DrawTextureEx(a.ParticleTex, origin, 0, scale, rl.Fade(glow, float32(0.15*c.Opacity)))
		rl.DrawCircleV(pos, r, rl.Fade(col, float32(0.35*c.Opacity)))
		rl.DrawCircleLinesV(pos, r, rl.Fade(col, float32(0.8*c.Opacity)))
	}

	if p := a.Last.Pointer; !p.IsUnset() {
		pos := rl.NewVector2(float32(p.X), float32(p.Y))
		rl.DrawCircleLinesV(pos, 6, rl.Fade(toColor(a.Theme.Text), 0.4))
		rl.DrawCircleLinesV(pos, 100, rl.Fade(toColor(a.Theme.Text), 0.08))
	}
}
