package graph

import (
	"bytes"
	"testing"
)

func TestRenderPNG(t *testing.T) {
	g := layoutTestGraph()
	cfg := DefaultConfig()
	cfg.Width = 200
	cfg.Height = 160
	positions := NewSimulation(g, cfg).Run()

	var buf bytes.Buffer
	if err := RenderPNG(&buf, g, positions, DefaultStyle(), cfg, "1"); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}

	// PNG magic bytes.
	if buf.Len() < 8 || !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Errorf("output is not a PNG (%d bytes)", buf.Len())
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := parseHexColor("#ff0080")
	if err != nil {
		t.Fatalf("parseHexColor: %v", err)
	}
	if r != 1 || g != 0 || b < 0.5 || b > 0.51 {
		t.Errorf("parsed (%v,%v,%v)", r, g, b)
	}
	if _, _, _, err := parseHexColor("red"); err == nil {
		t.Error("expected an error for a non-hex color")
	}
}
