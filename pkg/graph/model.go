package graph

// KnowledgePoint is a chunk of extracted document text treated as an atomic
// unit of knowledge. Points are served by the store already filtered by
// minimum weight; the Keywords field may still carry legacy encodings
// (JSON-encoded string, list of objects) and must go through
// NormalizeKeywords before use.
type KnowledgePoint struct {
	ID           *int64  `json:"id"`
	Content      string  `json:"content"`
	DocumentID   int64   `json:"document_id"`
	DocumentName string  `json:"document_name"`
	ChunkIndex   int     `json:"chunk_index"`
	Weight       float64 `json:"weight"`
	Excluded     bool    `json:"excluded"`
	IsManual     bool    `json:"is_manual"`
	Keywords     any     `json:"keywords"`
}

// NodeType distinguishes entity nodes (one per knowledge point) from concept
// nodes (one per distinct keyword, keywordNodes mode only).
type NodeType string

const (
	NodeTypeEntity  NodeType = "entity"
	NodeTypeConcept NodeType = "concept"
)

// Node is a single graph node. Entity nodes carry the backing knowledge
// point, its clamped weight and a truncated display label; concept nodes
// carry only a label.
type Node struct {
	ID      string   `json:"id"`
	Type    NodeType `json:"type"`
	Label   string   `json:"label"`
	Content string   `json:"content,omitempty"`
	Weight  int      `json:"weight,omitempty"`

	// Point is the backing knowledge point for entity nodes, nil for
	// concept nodes.
	Point *KnowledgePoint `json:"-"`

	keywords []string
}

// LinkType is the relation a link encodes: document-order adjacency or a
// shared-keyword (or keyword-membership) relation.
type LinkType string

const (
	LinkTypeSequence LinkType = "sequence"
	LinkTypeKeyword  LinkType = "keyword"
)

// Link is an undirected edge between two nodes. For any unordered pair of
// node ids at most one link exists in a built graph.
type Link struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   LinkType `json:"type"`
}

// Graph is the output of Build: a pure derived view, rebuilt from scratch on
// every refresh or mode switch.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Mode selects how keyword relations are represented.
//
// ModeShared links two entity nodes directly when their normalized keyword
// sets intersect. ModeKeywordNodes materializes one concept node per distinct
// keyword and links each entity to each of its concepts (bipartite).
type Mode string

const (
	ModeShared       Mode = "shared"
	ModeKeywordNodes Mode = "keywordNodes"
)

// Keywords returns the node's normalized keywords. Only entity nodes have
// keywords; the slice is owned by the graph and must not be mutated.
func (n *Node) Keywords() []string {
	return n.keywords
}
