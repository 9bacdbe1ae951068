package graph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fogleman/gg"
)

// RenderPNG rasterizes a laid-out graph. Nodes draw as discs sized and
// colored per style, links as solid (sequence) or dashed (keyword) strokes
// with reduced opacity, labels as up to two centered lines. highlightID may
// be empty.
func RenderPNG(w io.Writer, g *Graph, positions []NodePosition, style Style, cfg Config, highlightID string) error {
	dc := gg.NewContext(int(cfg.Width), int(cfg.Height))
	dc.SetHexColor("#ffffff")
	dc.Clear()

	pos := make(map[string]NodePosition, len(positions))
	for _, p := range positions {
		pos[p.ID] = p
	}

	for _, l := range g.Links {
		a, ok := pos[l.Source]
		if !ok {
			continue
		}
		b, ok := pos[l.Target]
		if !ok {
			continue
		}
		color, dash := style.LinkStroke(l.Type)
		r, gr, bl, err := parseHexColor(color)
		if err != nil {
			return err
		}
		dc.SetRGBA(r, gr, bl, style.LinkOpacity)
		if len(dash) > 0 {
			dc.SetDash(dash...)
		} else {
			dc.SetDash()
		}
		dc.SetLineWidth(1.2)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
	dc.SetDash()

	for i := range g.Nodes {
		n := &g.Nodes[i]
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		radius := style.NodeRadius(*n)
		palette := style.NodePalette(*n, highlightID != "" && n.ID == highlightID)

		dc.SetHexColor(palette.Fill)
		dc.DrawCircle(p.X, p.Y, radius)
		dc.FillPreserve()
		dc.SetHexColor(palette.Border)
		dc.SetLineWidth(1.5)
		dc.Stroke()

		lines := style.LabelLines(n.Label)
		dc.SetHexColor("#1f2937")
		for li, line := range lines {
			offset := (float64(li) - float64(len(lines)-1)/2) * 12
			dc.DrawStringAnchored(line, p.X, p.Y+radius+10+offset, 0.5, 0.5)
		}
	}

	return dc.EncodePNG(w)
}

func parseHexColor(s string) (r, g, b float64, err error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", s)
	}
	r = float64(v>>16&0xff) / 255
	g = float64(v>>8&0xff) / 255
	b = float64(v&0xff) / 255
	return r, g, b, nil
}
