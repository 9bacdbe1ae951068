package graph

import "strings"

// Palette is a fill/border color pair, hex-encoded.
type Palette struct {
	Fill   string
	Border string
}

// Style holds the visual encoding for nodes and links. The zero value is not
// usable; start from DefaultStyle and override fields as needed (the
// front-end maps its theme variables onto the same slots).
type Style struct {
	// WeightPalette indexes fill/border by weight level 1-5.
	WeightPalette [5]Palette
	Concept       Palette
	Highlight     Palette

	EntityBaseRadius   float64
	EntityRadiusStep   float64
	ConceptRadius      float64
	SequenceColor      string
	KeywordColor       string
	LinkOpacity        float64
	KeywordDash        []float64
	LabelLineRunes     int
	LabelMaxLines      int
	Ellipsis           string
}

// DefaultStyle is the fixed five-color weight ramp used when no theme
// overrides are supplied.
func DefaultStyle() Style {
	return Style{
		WeightPalette: [5]Palette{
			{Fill: "#dbeafe", Border: "#93c5fd"},
			{Fill: "#bfdbfe", Border: "#60a5fa"},
			{Fill: "#93c5fd", Border: "#3b82f6"},
			{Fill: "#60a5fa", Border: "#2563eb"},
			{Fill: "#3b82f6", Border: "#1d4ed8"},
		},
		Concept:   Palette{Fill: "#fef3c7", Border: "#f59e0b"},
		Highlight: Palette{Fill: "#fda4af", Border: "#e11d48"},

		EntityBaseRadius: 12,
		EntityRadiusStep: 3,
		ConceptRadius:    8,
		SequenceColor:    "#9ca3af",
		KeywordColor:     "#f59e0b",
		LinkOpacity:      0.85,
		KeywordDash:      []float64{4, 2},
		LabelLineRunes:   8,
		LabelMaxLines:    2,
		Ellipsis:         "…",
	}
}

// NodeRadius returns the node's visual radius. Entity radius grows with
// weight; concept nodes use a fixed smaller radius. Hit testing must use the
// same radius so pointer picking matches the visible shape.
func (s Style) NodeRadius(n Node) float64 {
	if n.Type == NodeTypeConcept {
		return s.ConceptRadius
	}
	return s.EntityBaseRadius + s.EntityRadiusStep*float64(n.Weight-1)
}

// NodePalette returns the node's fill/border. A highlighted node overrides
// its weight or concept colors with the highlight palette.
func (s Style) NodePalette(n Node, highlighted bool) Palette {
	if highlighted {
		return s.Highlight
	}
	if n.Type == NodeTypeConcept {
		return s.Concept
	}
	level := n.Weight
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return s.WeightPalette[level-1]
}

// LinkStroke returns the stroke color and dash pattern for a link. Sequence
// links draw solid, keyword links dashed; a nil dash means solid.
func (s Style) LinkStroke(t LinkType) (color string, dash []float64) {
	if t == LinkTypeKeyword {
		return s.KeywordColor, s.KeywordDash
	}
	return s.SequenceColor, nil
}

// LabelLines wraps a label into at most LabelMaxLines lines of LabelLineRunes
// runes. Content beyond the last line is truncated with an ellipsis.
func (s Style) LabelLines(label string) []string {
	runes := []rune(strings.TrimSpace(label))
	if len(runes) == 0 {
		return nil
	}

	perLine := s.LabelLineRunes
	maxLines := s.LabelMaxLines
	if perLine <= 0 || maxLines <= 0 {
		return []string{string(runes)}
	}

	lines := make([]string, 0, maxLines)
	for len(runes) > 0 && len(lines) < maxLines {
		end := perLine
		if end > len(runes) {
			end = len(runes)
		}
		lines = append(lines, string(runes[:end]))
		runes = runes[end:]
	}

	if len(runes) > 0 {
		last := []rune(lines[len(lines)-1])
		if len(last) > 0 {
			last = last[:len(last)-1]
		}
		lines[len(lines)-1] = string(last) + s.Ellipsis
	}
	return lines
}
