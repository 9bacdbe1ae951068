package graph

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// labelRunes is the number of leading content runes kept as a node label,
// two display lines of eight.
const labelRunes = 16

// Build assembles a knowledge graph from the given points. Points without an
// id cannot be addressed later and are skipped, so every entity node in the
// result is backed by a persisted knowledge point.
//
// Entity nodes adjacent by chunk index within the same document are connected
// by sequence links. Keyword relations depend on mode: ModeShared links two
// entities directly when they share at least one normalized keyword,
// upgrading an existing sequence link between them instead of duplicating
// it; ModeKeywordNodes adds one concept node per distinct keyword and links
// entities to their concepts. The build is deterministic and produces at
// most one link per unordered node pair.
func Build(points []KnowledgePoint, mode Mode) Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(points)),
		Links: make([]Link, 0),
	}

	for i := range points {
		p := &points[i]
		if p.ID == nil {
			continue
		}
		g.Nodes = append(g.Nodes, Node{
			ID:       strconv.FormatInt(*p.ID, 10),
			Type:     NodeTypeEntity,
			Label:    truncateLabel(p.Content),
			Content:  strings.TrimSpace(p.Content),
			Weight:   ClampWeight(p.Weight),
			Point:    p,
			keywords: NormalizeKeywords(p.Keywords),
		})
	}

	linkIdx := make(map[string]int)
	addLink := func(a, b string, t LinkType) {
		key := pairKey(a, b)
		if i, ok := linkIdx[key]; ok {
			// A keyword relation takes precedence over plain
			// document adjacency.
			if t == LinkTypeKeyword && g.Links[i].Type == LinkTypeSequence {
				g.Links[i].Type = LinkTypeKeyword
			}
			return
		}
		linkIdx[key] = len(g.Links)
		g.Links = append(g.Links, Link{Source: a, Target: b, Type: t})
	}

	entityCount := len(g.Nodes)

	// Document adjacency only exists in shared mode; the keywordNodes
	// graph is strictly bipartite, entity to concept.
	if mode != ModeKeywordNodes {
		byDocument := make(map[int64][]int)
		for i := 0; i < entityCount; i++ {
			doc := g.Nodes[i].Point.DocumentID
			byDocument[doc] = append(byDocument[doc], i)
		}
		for _, idxs := range byDocument {
			sort.SliceStable(idxs, func(a, b int) bool {
				return g.Nodes[idxs[a]].Point.ChunkIndex < g.Nodes[idxs[b]].Point.ChunkIndex
			})
			for i := 1; i < len(idxs); i++ {
				addLink(g.Nodes[idxs[i-1]].ID, g.Nodes[idxs[i]].ID, LinkTypeSequence)
			}
		}
	}

	switch mode {
	case ModeKeywordNodes:
		conceptID := make(map[string]string)
		for i := 0; i < entityCount; i++ {
			for _, kw := range g.Nodes[i].keywords {
				id, ok := conceptID[kw]
				if !ok {
					id = fmt.Sprintf("kw_%d", len(conceptID))
					conceptID[kw] = id
					g.Nodes = append(g.Nodes, Node{
						ID:    id,
						Type:  NodeTypeConcept,
						Label: kw,
					})
				}
				addLink(g.Nodes[i].ID, id, LinkTypeKeyword)
			}
		}
	default:
		// Inverted index keyword -> entity indexes; linking each pair
		// per keyword is the O(n*k) substitute for the O(n^2) pairwise
		// keyword-set comparison.
		inverted := make(map[string][]int)
		order := make([]string, 0)
		for i := 0; i < entityCount; i++ {
			for _, kw := range g.Nodes[i].keywords {
				if _, ok := inverted[kw]; !ok {
					order = append(order, kw)
				}
				inverted[kw] = append(inverted[kw], i)
			}
		}
		for _, kw := range order {
			idxs := inverted[kw]
			for a := 0; a < len(idxs); a++ {
				for b := a + 1; b < len(idxs); b++ {
					addLink(g.Nodes[idxs[a]].ID, g.Nodes[idxs[b]].ID, LinkTypeKeyword)
				}
			}
		}
	}

	return g
}

// ClampWeight maps a stored weight onto the 1-5 display levels.
func ClampWeight(w float64) int {
	level := int(math.Round(w))
	if level < 1 {
		return 1
	}
	if level > 5 {
		return 5
	}
	return level
}

func truncateLabel(content string) string {
	runes := []rune(strings.TrimSpace(content))
	if len(runes) <= labelRunes {
		return string(runes)
	}
	return string(runes[:labelRunes])
}

// pairKey is order-independent so no duplicate edge can exist between the
// same pair regardless of discovery order.
func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
