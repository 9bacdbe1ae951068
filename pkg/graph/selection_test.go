package graph

import "testing"

func TestSelectionToggle(t *testing.T) {
	s := NewSelection(nil)

	if _, ok := s.Highlighted(); ok {
		t.Fatal("fresh selection must be idle")
	}

	n := Node{ID: "1", Type: NodeTypeEntity}
	s.ClickNode(n)
	if id, ok := s.Highlighted(); !ok || id != "1" {
		t.Fatalf("click should highlight node 1, got %q ok=%v", id, ok)
	}

	s.ClickNode(n)
	if _, ok := s.Highlighted(); ok {
		t.Error("second click on the same node must clear the highlight")
	}

	s.ClickNode(n)
	s.ClickBackground()
	if _, ok := s.Highlighted(); ok {
		t.Error("background click must clear the highlight")
	}
}

func TestSelectionSwitchesNodes(t *testing.T) {
	s := NewSelection(nil)
	s.ClickNode(Node{ID: "1", Type: NodeTypeConcept})
	s.ClickNode(Node{ID: "2", Type: NodeTypeConcept})
	if id, _ := s.Highlighted(); id != "2" {
		t.Errorf("highlight = %q, want 2", id)
	}
}

func TestSelectionCallbackForwardsPoint(t *testing.T) {
	var got *KnowledgePoint
	s := NewSelection(func(kp KnowledgePoint) {
		got = &kp
	})

	kp := testPoint(7, 1, 0, "content", nil)
	s.ClickNode(Node{ID: "7", Type: NodeTypeEntity, Point: &kp})

	if got == nil || got.ID == nil || *got.ID != 7 {
		t.Fatalf("callback did not receive knowledge point 7: %#v", got)
	}
	if _, ok := s.Highlighted(); ok {
		t.Error("forwarding a selection must clear the local highlight")
	}

	// Concept clicks never hit the callback; they toggle as usual.
	got = nil
	s.ClickNode(Node{ID: "kw_0", Type: NodeTypeConcept})
	if got != nil {
		t.Error("concept click must not fire the select callback")
	}
	if id, _ := s.Highlighted(); id != "kw_0" {
		t.Errorf("highlight = %q, want kw_0", id)
	}
}

func TestSelectionExternalWins(t *testing.T) {
	s := NewSelection(nil)
	s.ClickNode(Node{ID: "local", Type: NodeTypeConcept})
	s.SetExternal("external")

	if id, _ := s.Highlighted(); id != "external" {
		t.Errorf("external selection must take precedence, got %q", id)
	}
	if !s.IsHighlighted("external") || s.IsHighlighted("local") {
		t.Error("IsHighlighted must follow the precedence rule")
	}

	s.SetExternal("")
	if id, _ := s.Highlighted(); id != "local" {
		t.Errorf("clearing external must fall back to local highlight, got %q", id)
	}
}
