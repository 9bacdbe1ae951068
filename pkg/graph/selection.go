package graph

// SelectFunc receives the knowledge point behind a clicked entity node.
type SelectFunc func(kp KnowledgePoint)

// Selection tracks which node is highlighted. There are two sources of
// truth: an externally driven selection (the host application's selected
// knowledge point) and a local click toggle. External selection wins when
// present.
type Selection struct {
	external string
	local    string
	onSelect SelectFunc
}

// NewSelection creates a selection tracker. onSelect may be nil; when set,
// clicking an entity node forwards its knowledge point instead of toggling
// the local highlight.
func NewSelection(onSelect SelectFunc) *Selection {
	return &Selection{onSelect: onSelect}
}

// SetExternal drives the highlight from outside. Pass the empty string to
// clear the external selection and fall back to the local toggle.
func (s *Selection) SetExternal(nodeID string) {
	s.external = nodeID
}

// ClickNode handles a click on a node. An entity click with a registered
// select callback forwards the backing knowledge point and clears the local
// highlight; otherwise the click toggles the node's highlight.
func (s *Selection) ClickNode(n Node) {
	if n.Type == NodeTypeEntity && s.onSelect != nil && n.Point != nil {
		s.onSelect(*n.Point)
		s.local = ""
		return
	}
	if s.local == n.ID {
		s.local = ""
		return
	}
	s.local = n.ID
}

// ClickBackground clears the local highlight.
func (s *Selection) ClickBackground() {
	s.local = ""
}

// Highlighted returns the currently highlighted node id, external selection
// taking precedence over the local toggle. ok is false when nothing is
// highlighted.
func (s *Selection) Highlighted() (id string, ok bool) {
	if s.external != "" {
		return s.external, true
	}
	if s.local != "" {
		return s.local, true
	}
	return "", false
}

// IsHighlighted reports whether the given node id is the highlighted one.
func (s *Selection) IsHighlighted(nodeID string) bool {
	id, ok := s.Highlighted()
	return ok && id == nodeID
}
