package graph

import (
	"math"
	"testing"
)

func layoutTestGraph() *Graph {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "A", []string{"x"}),
		testPoint(2, 1, 1, "B", []string{"x"}),
		testPoint(3, 1, 2, "C", nil),
		testPoint(4, 2, 0, "D", nil),
	}
	g := Build(points, ModeShared)
	return &g
}

func TestSimulationDeterministic(t *testing.T) {
	g1 := layoutTestGraph()
	g2 := layoutTestGraph()

	p1 := NewSimulation(g1, DefaultConfig()).Run()
	p2 := NewSimulation(g2, DefaultConfig()).Run()

	if len(p1) != len(p2) {
		t.Fatalf("position counts differ: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("layout not deterministic at %d: %#v vs %#v", i, p1[i], p2[i])
		}
	}
}

func TestSimulationSettles(t *testing.T) {
	sim := NewSimulation(layoutTestGraph(), DefaultConfig())

	positions := sim.Run()
	if !sim.Settled() {
		t.Fatal("Run must settle the simulation")
	}
	for _, p := range positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("non-finite position %#v", p)
		}
	}
}

func TestSimulationSpreadsNodes(t *testing.T) {
	sim := NewSimulation(layoutTestGraph(), DefaultConfig())
	positions := sim.Run()

	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			d := math.Hypot(positions[i].X-positions[j].X, positions[i].Y-positions[j].Y)
			if d < 1 {
				t.Errorf("nodes %s and %s collapsed onto each other (distance %v)",
					positions[i].ID, positions[j].ID, d)
			}
		}
	}
}

func TestSimulationPinAndRelease(t *testing.T) {
	sim := NewSimulation(layoutTestGraph(), DefaultConfig())
	sim.Run()

	if ok := sim.Pin("1", 10, 20); !ok {
		t.Fatal("Pin on a known node must succeed")
	}
	for i := 0; i < 10; i++ {
		sim.Tick()
	}
	var pinned NodePosition
	for _, p := range sim.Positions() {
		if p.ID == "1" {
			pinned = p
		}
	}
	if pinned.X != 10 || pinned.Y != 20 {
		t.Errorf("pinned node moved to (%v,%v), want (10,20)", pinned.X, pinned.Y)
	}

	if ok := sim.Release("1"); !ok {
		t.Fatal("Release on a known node must succeed")
	}
	if sim.Settled() {
		t.Error("release must reheat the simulation")
	}

	if sim.Pin("missing", 0, 0) {
		t.Error("Pin on an unknown id must report false")
	}
	if sim.Release("missing") {
		t.Error("Release on an unknown id must report false")
	}
}

func TestSimulationNodeAt(t *testing.T) {
	g := layoutTestGraph()
	sim := NewSimulation(g, DefaultConfig())
	positions := sim.Run()
	style := DefaultStyle()

	target := positions[0]
	n := sim.NodeAt(target.X, target.Y, style)
	if n == nil || n.ID != target.ID {
		t.Fatalf("NodeAt center of %s returned %v", target.ID, n)
	}

	// Just inside the rim still hits; far away misses.
	var node *Node
	for i := range g.Nodes {
		if g.Nodes[i].ID == target.ID {
			node = &g.Nodes[i]
		}
	}
	r := style.NodeRadius(*node)
	if n := sim.NodeAt(target.X+r-0.5, target.Y, style); n == nil || n.ID != target.ID {
		t.Errorf("point on the disc rim should hit node %s", target.ID)
	}
	if n := sim.NodeAt(target.X+1000, target.Y+1000, style); n != nil {
		t.Errorf("far-away point hit node %s", n.ID)
	}
}

func TestSimulationEmptyGraph(t *testing.T) {
	g := Build(nil, ModeShared)
	sim := NewSimulation(&g, DefaultConfig())
	if got := sim.Run(); len(got) != 0 {
		t.Errorf("empty graph produced positions %#v", got)
	}
}
