package graph

import (
	"math"
)

// Config is the declarative tuning for a force simulation. All parameters
// are fixed at construction; there is no post-hoc mutation of a running
// simulation beyond pinning nodes and reheating.
type Config struct {
	// Charge is the many-body strength; negative values repel.
	Charge float64
	// LinkDistance is the rest length of link springs.
	LinkDistance float64
	// LinkStrength scales the link spring force.
	LinkStrength float64
	// VelocityDecay is the per-tick velocity damping factor in (0,1].
	VelocityDecay float64
	// Alpha cools from Alpha toward zero by AlphaDecay per tick; the
	// simulation is settled once it drops below AlphaMin.
	Alpha      float64
	AlphaMin   float64
	AlphaDecay float64
	// ReheatAlpha is the energy restored when a pinned node is released.
	ReheatAlpha float64

	Width  float64
	Height float64
}

// DefaultConfig mirrors the charge/distance/decay tuning the graph view
// renders with.
func DefaultConfig() Config {
	return Config{
		Charge:        -120,
		LinkDistance:  60,
		LinkStrength:  0.4,
		VelocityDecay: 0.6,
		Alpha:         1,
		AlphaMin:      0.001,
		AlphaDecay:    0.0228,
		ReheatAlpha:   0.3,
		Width:         800,
		Height:        600,
	}
}

// NodePosition is a node id with its layout coordinates.
type NodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type simNode struct {
	node   *Node
	x, y   float64
	vx, vy float64
	pinned bool
}

type simLink struct {
	source, target int
}

// Simulation runs a force-directed layout over a built graph. Initial
// placement is a deterministic phyllotaxis spiral, so identical graphs lay
// out identically.
type Simulation struct {
	cfg   Config
	nodes []simNode
	links []simLink
	index map[string]int
	alpha float64
}

// initialRadius and initialAngle spread nodes on a spiral around the center
// before the first tick.
const (
	initialRadius = 18.0
	initialAngle  = math.Pi * (3 - 2.23606797749979) // golden angle, sqrt(5)
)

// NewSimulation builds a simulation over g. Links referencing unknown node
// ids are dropped.
func NewSimulation(g *Graph, cfg Config) *Simulation {
	s := &Simulation{
		cfg:   cfg,
		nodes: make([]simNode, 0, len(g.Nodes)),
		links: make([]simLink, 0, len(g.Links)),
		index: make(map[string]int, len(g.Nodes)),
		alpha: cfg.Alpha,
	}

	cx := cfg.Width / 2
	cy := cfg.Height / 2
	for i := range g.Nodes {
		radius := initialRadius * math.Sqrt(0.5+float64(i))
		angle := float64(i) * initialAngle
		s.index[g.Nodes[i].ID] = len(s.nodes)
		s.nodes = append(s.nodes, simNode{
			node: &g.Nodes[i],
			x:    cx + radius*math.Cos(angle),
			y:    cy + radius*math.Sin(angle),
		})
	}

	for _, l := range g.Links {
		si, ok := s.index[l.Source]
		if !ok {
			continue
		}
		ti, ok := s.index[l.Target]
		if !ok {
			continue
		}
		s.links = append(s.links, simLink{source: si, target: ti})
	}

	return s
}

// Alpha reports the simulation's remaining energy.
func (s *Simulation) Alpha() float64 {
	return s.alpha
}

// Settled reports whether the layout has cooled below the configured minimum.
func (s *Simulation) Settled() bool {
	return s.alpha < s.cfg.AlphaMin
}

// Tick advances the simulation one step.
func (s *Simulation) Tick() {
	if s.Settled() {
		return
	}

	alpha := s.alpha

	// Link springs pull endpoints toward the configured rest distance.
	for _, l := range s.links {
		a := &s.nodes[l.source]
		b := &s.nodes[l.target]
		dx := b.x - a.x
		dy := b.y - a.y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			dist = 1e-6
			dx = 1e-6
		}
		strength := (dist - s.cfg.LinkDistance) / dist * alpha * s.cfg.LinkStrength
		fx := dx * strength
		fy := dy * strength
		b.vx -= fx / 2
		b.vy -= fy / 2
		a.vx += fx / 2
		a.vy += fy / 2
	}

	// Pairwise charge.
	for i := range s.nodes {
		for j := i + 1; j < len(s.nodes); j++ {
			a := &s.nodes[i]
			b := &s.nodes[j]
			dx := b.x - a.x
			dy := b.y - a.y
			d2 := dx*dx + dy*dy
			if d2 == 0 {
				d2 = 1e-6
				dx = 1e-3
			}
			force := s.cfg.Charge * alpha / d2
			fx := dx * force
			fy := dy * force
			a.vx += fx
			a.vy += fy
			b.vx -= fx
			b.vy -= fy
		}
	}

	// Weak centering keeps disconnected components on canvas.
	cx := s.cfg.Width / 2
	cy := s.cfg.Height / 2
	for i := range s.nodes {
		n := &s.nodes[i]
		n.vx += (cx - n.x) * 0.01 * alpha
		n.vy += (cy - n.y) * 0.01 * alpha
	}

	for i := range s.nodes {
		n := &s.nodes[i]
		if n.pinned {
			n.vx = 0
			n.vy = 0
			continue
		}
		n.vx *= s.cfg.VelocityDecay
		n.vy *= s.cfg.VelocityDecay
		n.x += n.vx
		n.y += n.vy
	}

	s.alpha += (0 - s.alpha) * s.cfg.AlphaDecay
}

// Run ticks the simulation until it settles and returns the final positions.
func (s *Simulation) Run() []NodePosition {
	for !s.Settled() {
		s.Tick()
	}
	return s.Positions()
}

// Positions snapshots current node coordinates in node order.
func (s *Simulation) Positions() []NodePosition {
	out := make([]NodePosition, len(s.nodes))
	for i := range s.nodes {
		out[i] = NodePosition{ID: s.nodes[i].node.ID, X: s.nodes[i].x, Y: s.nodes[i].y}
	}
	return out
}

// Pin fixes a node at the given coordinates, as during a drag. A pinned node
// ignores forces until released.
func (s *Simulation) Pin(id string, x, y float64) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.nodes[i].pinned = true
	s.nodes[i].x = x
	s.nodes[i].y = y
	s.nodes[i].vx = 0
	s.nodes[i].vy = 0
	return true
}

// Release removes a node's pin and reheats the simulation so the layout
// continues to settle around the new position.
func (s *Simulation) Release(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.nodes[i].pinned = false
	if s.alpha < s.cfg.ReheatAlpha {
		s.alpha = s.cfg.ReheatAlpha
	}
	return true
}

// NodeAt returns the topmost node whose visual disc (per style) contains the
// point, or nil. Picking uses the same radius the node is drawn with.
func (s *Simulation) NodeAt(x, y float64, style Style) *Node {
	for i := len(s.nodes) - 1; i >= 0; i-- {
		n := &s.nodes[i]
		r := style.NodeRadius(*n.node)
		if math.Hypot(x-n.x, y-n.y) <= r {
			return n.node
		}
	}
	return nil
}
