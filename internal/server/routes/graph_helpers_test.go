package routes

import (
	"testing"

	"github.com/privatetune/backend/internal/db"
)

func TestToGraphPoints(t *testing.T) {
	points := []db.KnowledgePoint{
		{
			ID:           1,
			DocumentID:   10,
			DocumentName: "notes.md",
			Content:      "first point",
			ChunkIndex:   0,
			Weight:       4,
			Keywords:     `["alpha","beta"]`,
		},
		{
			ID:           2,
			DocumentID:   10,
			DocumentName: "notes.md",
			Content:      "second point",
			ChunkIndex:   1,
			Weight:       2,
			IsManual:     true,
			Keywords:     `[]`,
		},
	}

	converted := toGraphPoints(points)
	if len(converted) != 2 {
		t.Fatalf("expected 2 points, got %d", len(converted))
	}

	for i, p := range converted {
		if p.ID == nil {
			t.Fatalf("point %d: expected non-nil id", i)
		}
		if *p.ID != points[i].ID {
			t.Errorf("point %d: expected id %d, got %d", i, points[i].ID, *p.ID)
		}
		if p.Content != points[i].Content {
			t.Errorf("point %d: content mismatch", i)
		}
		if p.ChunkIndex != int(points[i].ChunkIndex) {
			t.Errorf("point %d: chunk index mismatch", i)
		}
	}

	// ids must be independent copies
	if converted[0].ID == converted[1].ID {
		t.Error("expected distinct id pointers")
	}
	if converted[1].IsManual != true {
		t.Error("expected manual flag carried over")
	}
}
