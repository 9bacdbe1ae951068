package graph

import (
	"strings"
	"testing"
)

func kpID(id int64) *int64 {
	return &id
}

func testPoint(id int64, docID int64, chunk int, content string, keywords any) KnowledgePoint {
	return KnowledgePoint{
		ID:         kpID(id),
		Content:    content,
		DocumentID: docID,
		ChunkIndex: chunk,
		Weight:     1,
		Keywords:   keywords,
	}
}

func findLink(g Graph, a, b string) (Link, bool) {
	for _, l := range g.Links {
		if (l.Source == a && l.Target == b) || (l.Source == b && l.Target == a) {
			return l, true
		}
	}
	return Link{}, false
}

func TestBuildSharedScenario(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 5, 0, "A", []string{"x"}),
		testPoint(2, 5, 1, "B", []string{"x"}),
		testPoint(3, 9, 0, "C", []string{}),
	}

	g := Build(points, ModeShared)

	if len(g.Nodes) != 3 {
		t.Fatalf("expected 3 entity nodes, got %d", len(g.Nodes))
	}
	if len(g.Links) != 1 {
		t.Fatalf("expected exactly 1 link, got %d: %#v", len(g.Links), g.Links)
	}
	l, ok := findLink(g, "1", "2")
	if !ok {
		t.Fatal("expected a link between nodes 1 and 2")
	}
	if l.Type != LinkTypeKeyword {
		t.Errorf("sequence link sharing keyword %q should be upgraded to keyword, got %s", "x", l.Type)
	}
	for _, l := range g.Links {
		if l.Source == "3" || l.Target == "3" {
			t.Errorf("node 3 has no keywords and no neighbor, unexpected link %#v", l)
		}
	}
}

func TestBuildKeywordNodesScenario(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 5, 0, "A", []string{"x"}),
		testPoint(2, 5, 1, "B", []string{"x"}),
		testPoint(3, 9, 0, "C", []string{}),
	}

	g := Build(points, ModeKeywordNodes)

	entities := 0
	concepts := 0
	for _, n := range g.Nodes {
		switch n.Type {
		case NodeTypeEntity:
			entities++
		case NodeTypeConcept:
			concepts++
			if n.Label != "x" {
				t.Errorf("unexpected concept label %q", n.Label)
			}
			if n.ID != "kw_0" {
				t.Errorf("concept id = %q, want kw_0", n.ID)
			}
		}
	}
	if entities != 3 || concepts != 1 {
		t.Fatalf("expected 3 entities + 1 concept, got %d + %d", entities, concepts)
	}

	// Membership links only; no adjacency links in bipartite mode.
	if len(g.Links) != 2 {
		t.Fatalf("expected 2 links, got %d: %#v", len(g.Links), g.Links)
	}
	if _, ok := findLink(g, "1", "kw_0"); !ok {
		t.Error("missing link (1, kw_0)")
	}
	if _, ok := findLink(g, "2", "kw_0"); !ok {
		t.Error("missing link (2, kw_0)")
	}
}

func TestBuildBipartite(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "A", []string{"x", "y"}),
		testPoint(2, 2, 0, "B", []string{"y", "z"}),
	}

	g := Build(points, ModeKeywordNodes)

	typeOf := make(map[string]NodeType)
	for _, n := range g.Nodes {
		typeOf[n.ID] = n.Type
	}
	for _, l := range g.Links {
		st := typeOf[l.Source]
		tt := typeOf[l.Target]
		if st == tt {
			t.Errorf("link %#v connects two %s nodes; keywordNodes mode must be bipartite", l, st)
		}
	}
}

func TestBuildSharedSymmetry(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "A", []string{"x", "y"}),
		testPoint(2, 2, 0, "B", []string{"y"}),
		testPoint(3, 3, 0, "C", []string{"z"}),
		testPoint(4, 4, 0, "D", []string{"z", "x"}),
	}

	g := Build(points, ModeShared)

	keywordsOf := make(map[string][]string)
	for _, n := range g.Nodes {
		keywordsOf[n.ID] = n.Keywords()
	}
	intersects := func(a, b []string) bool {
		set := make(map[string]struct{}, len(a))
		for _, s := range a {
			set[s] = struct{}{}
		}
		for _, s := range b {
			if _, ok := set[s]; ok {
				return true
			}
		}
		return false
	}

	ids := []string{"1", "2", "3", "4"}
	for i, a := range ids {
		for _, b := range ids[i+1:] {
			_, linked := findLink(g, a, b)
			shouldLink := intersects(keywordsOf[a], keywordsOf[b])
			if linked != shouldLink {
				t.Errorf("link(%s,%s) = %v, want %v (keywords %v / %v)",
					a, b, linked, shouldLink, keywordsOf[a], keywordsOf[b])
			}
		}
	}
}

func TestBuildEdgeUniqueness(t *testing.T) {
	// Nodes 1 and 2 are document-adjacent and share two keywords; only a
	// single (upgraded) link may exist between them.
	points := []KnowledgePoint{
		testPoint(1, 5, 0, "A", []string{"x", "y"}),
		testPoint(2, 5, 1, "B", []string{"x", "y"}),
	}

	for _, mode := range []Mode{ModeShared, ModeKeywordNodes} {
		g := Build(points, mode)
		seen := make(map[string]bool)
		for _, l := range g.Links {
			key := pairKey(l.Source, l.Target)
			if seen[key] {
				t.Errorf("mode %s: duplicate link for pair %s", mode, key)
			}
			seen[key] = true
		}
	}
}

func TestBuildSequenceLinks(t *testing.T) {
	// Out-of-order input; chunk order within each document decides
	// adjacency, documents never cross-link.
	points := []KnowledgePoint{
		testPoint(3, 1, 2, "C", nil),
		testPoint(1, 1, 0, "A", nil),
		testPoint(2, 1, 1, "B", nil),
		testPoint(4, 2, 0, "D", nil),
	}

	g := Build(points, ModeShared)

	if len(g.Links) != 2 {
		t.Fatalf("expected 2 sequence links, got %d: %#v", len(g.Links), g.Links)
	}
	for _, pair := range [][2]string{{"1", "2"}, {"2", "3"}} {
		l, ok := findLink(g, pair[0], pair[1])
		if !ok {
			t.Errorf("missing sequence link (%s,%s)", pair[0], pair[1])
			continue
		}
		if l.Type != LinkTypeSequence {
			t.Errorf("link (%s,%s) type = %s, want sequence", pair[0], pair[1], l.Type)
		}
	}
	if _, ok := findLink(g, "3", "4"); ok {
		t.Error("documents must not cross-link")
	}
}

func TestBuildSkipsUnsavedPoints(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "saved", nil),
		{Content: "unsaved", DocumentID: 1, ChunkIndex: 1},
	}

	g := Build(points, ModeShared)

	if len(g.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != "1" {
		t.Errorf("node id = %q, want %q", g.Nodes[0].ID, "1")
	}
	if len(g.Links) != 0 {
		t.Errorf("unsaved point must not produce links, got %#v", g.Links)
	}
}

func TestBuildLabelsAndWeights(t *testing.T) {
	long := strings.Repeat("abcd", 10)
	points := []KnowledgePoint{
		{ID: kpID(1), Content: "  " + long, DocumentID: 1, ChunkIndex: 0, Weight: 9},
		{ID: kpID(2), Content: "short", DocumentID: 1, ChunkIndex: 1, Weight: -2},
		{ID: kpID(3), Content: "中文知识点内容相当长超过十六个字符了", DocumentID: 1, ChunkIndex: 2, Weight: 3.4},
	}

	g := Build(points, ModeShared)

	if got := g.Nodes[0].Label; got != long[:16] {
		t.Errorf("label = %q, want first 16 chars of trimmed content", got)
	}
	if got := g.Nodes[0].Weight; got != 5 {
		t.Errorf("weight clamped high = %d, want 5", got)
	}
	if got := g.Nodes[1].Weight; got != 1 {
		t.Errorf("weight clamped low = %d, want 1", got)
	}
	if got := len([]rune(g.Nodes[2].Label)); got != 16 {
		t.Errorf("multibyte label has %d runes, want 16", got)
	}
	if got := g.Nodes[2].Weight; got != 3 {
		t.Errorf("weight rounded = %d, want 3", got)
	}
}

func TestBuildLegacyKeywordEncodings(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "A", `["a","b"]`),
		testPoint(2, 2, 0, "B", "not json"),
		testPoint(3, 3, 0, "C", []string{"a"}),
	}

	g := Build(points, ModeShared)

	if got := g.Nodes[0].Keywords(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("json-encoded keywords = %#v, want [a b]", got)
	}
	if got := g.Nodes[1].Keywords(); len(got) != 0 {
		t.Errorf("unparseable keywords = %#v, want empty", got)
	}
	if _, ok := findLink(g, "1", "3"); !ok {
		t.Error("decoded keyword should link nodes 1 and 3")
	}
	if _, ok := findLink(g, "1", "2"); ok {
		t.Error("node 2 has no keywords, unexpected link")
	}
}

func TestBuildEmptyInput(t *testing.T) {
	g := Build(nil, ModeShared)
	if len(g.Nodes) != 0 || len(g.Links) != 0 {
		t.Errorf("empty input must build an empty graph, got %#v", g)
	}
}
