package graph

import (
	"reflect"
	"testing"
)

func TestLabelLines(t *testing.T) {
	style := DefaultStyle()

	tests := []struct {
		name  string
		label string
		want  []string
	}{
		{
			name:  "empty",
			label: "",
			want:  nil,
		},
		{
			name:  "single short line",
			label: "cache",
			want:  []string{"cache"},
		},
		{
			name:  "exactly one line",
			label: "12345678",
			want:  []string{"12345678"},
		},
		{
			name:  "two lines",
			label: "123456789",
			want:  []string{"12345678", "9"},
		},
		{
			name:  "exactly two lines",
			label: "1234567812345678",
			want:  []string{"12345678", "12345678"},
		},
		{
			name:  "truncated with ellipsis",
			label: "12345678123456789",
			want:  []string{"12345678", "1234567…"},
		},
		{
			name:  "multibyte",
			label: "知识点内容相当长超过十六个字符了",
			want:  []string{"知识点内容相当长", "超过十六个字符了"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := style.LabelLines(tt.label)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LabelLines(%q) = %#v, want %#v", tt.label, got, tt.want)
			}
		})
	}
}

func TestNodeRadius(t *testing.T) {
	style := DefaultStyle()

	entity := Node{Type: NodeTypeEntity, Weight: 1}
	base := style.NodeRadius(entity)
	for w := 2; w <= 5; w++ {
		entity.Weight = w
		r := style.NodeRadius(entity)
		if r <= base {
			t.Errorf("radius must grow with weight: weight %d radius %v <= base %v", w, r, base)
		}
		base = r
	}

	concept := Node{Type: NodeTypeConcept}
	if r := style.NodeRadius(concept); r >= style.NodeRadius(Node{Type: NodeTypeEntity, Weight: 1}) {
		t.Errorf("concept radius %v should be smaller than the lightest entity", r)
	}
}

func TestNodePalette(t *testing.T) {
	style := DefaultStyle()

	n := Node{Type: NodeTypeEntity, Weight: 3}
	if got := style.NodePalette(n, false); got != style.WeightPalette[2] {
		t.Errorf("weight 3 palette = %#v, want ramp index 2", got)
	}
	if got := style.NodePalette(n, true); got != style.Highlight {
		t.Errorf("highlight must override the weight palette, got %#v", got)
	}
	if got := style.NodePalette(Node{Type: NodeTypeConcept}, false); got != style.Concept {
		t.Errorf("concept palette = %#v", got)
	}

	// Out-of-range weights must not panic and clamp onto the ramp.
	if got := style.NodePalette(Node{Type: NodeTypeEntity, Weight: 0}, false); got != style.WeightPalette[0] {
		t.Errorf("weight 0 palette = %#v, want ramp index 0", got)
	}
	if got := style.NodePalette(Node{Type: NodeTypeEntity, Weight: 9}, false); got != style.WeightPalette[4] {
		t.Errorf("weight 9 palette = %#v, want ramp index 4", got)
	}
}

func TestLinkStroke(t *testing.T) {
	style := DefaultStyle()

	if _, dash := style.LinkStroke(LinkTypeSequence); dash != nil {
		t.Errorf("sequence links draw solid, got dash %v", dash)
	}
	if _, dash := style.LinkStroke(LinkTypeKeyword); len(dash) == 0 {
		t.Error("keyword links draw dashed")
	}
}
