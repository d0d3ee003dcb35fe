package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/driftfield/internal/analysis"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/viz"
)

func header(sb *strings.Builder, width, height float64, bg string) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, bg))
}

// FrameToSVG draws one frame at viewport scale: a filled circle per draw
// command, faded by its opacity, and the pointer when it has moved.
func FrameToSVG(f sim.Frame, theme viz.Theme) string {
	if f.Bounds.Degenerate() {
		return ""
	}

	var sb strings.Builder
	header(&sb, f.Bounds.Width, f.Bounds.Height, string(theme.Background))

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\" stroke=\"%s\" stroke-width=\"1\">\n", theme.Primary, theme.Secondary))
	for _, c := range f.Commands {
		sb.WriteString(fmt.Sprintf(`<circle id="p%d" cx="%.1f" cy="%.1f" r="%.1f" fill-opacity="%.2f"/>
`, c.ID, c.X, c.Y, c.Diameter/2, 0.35*c.Opacity))
	}
	sb.WriteString("</g>\n")

	if !f.Pointer.IsUnset() {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="%s"/>
`, f.Pointer.X, f.Pointer.Y, theme.Accent))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64, theme viz.Theme) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	header(&sb, width, height, string(theme.Background))
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", theme.Primary))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TraceToSVG draws the path of one slot inside its viewport. The path
// breaks wherever the slot's particle was respawned.
func TraceToSVG(trace *analysis.Trace, strokeColor string) string {
	if trace == nil || len(trace.Points) < 2 || trace.Bounds.Degenerate() {
		return ""
	}

	var sb strings.Builder
	header(&sb, trace.Bounds.Width, trace.Bounds.Height, "#0a0a0a")
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokeColor))

	for i, p := range trace.Points {
		if i == 0 || p.ID != trace.Points[i-1].ID {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
