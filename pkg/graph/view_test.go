package graph

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestViewRefresh(t *testing.T) {
	points := []KnowledgePoint{
		testPoint(1, 1, 0, "A", []string{"x"}),
		testPoint(2, 1, 1, "B", []string{"x"}),
	}
	v := NewView(func(ctx context.Context, minWeight int) ([]KnowledgePoint, error) {
		return points, nil
	})

	g, err := v.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Links) != 1 {
		t.Errorf("unexpected graph: %d nodes %d links", len(g.Nodes), len(g.Links))
	}
	if v.Err() != nil {
		t.Errorf("Err after success = %v", v.Err())
	}
}

func TestViewEmptyResultIsNotAnError(t *testing.T) {
	v := NewView(func(ctx context.Context, minWeight int) ([]KnowledgePoint, error) {
		return nil, nil
	})
	g, err := v.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if g == nil || len(g.Nodes) != 0 {
		t.Errorf("empty fetch must build an empty graph, got %#v", g)
	}
}

func TestViewKeepsLastGoodOnError(t *testing.T) {
	var fail bool
	v := NewView(func(ctx context.Context, minWeight int) ([]KnowledgePoint, error) {
		if fail {
			return nil, errors.New("backend unreachable")
		}
		return []KnowledgePoint{testPoint(1, 1, 0, "A", nil)}, nil
	})

	if _, err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	fail = true
	g, err := v.Refresh(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if g == nil || len(g.Nodes) != 1 {
		t.Errorf("last good graph must be retained on error, got %#v", g)
	}
	if v.Err() == nil {
		t.Error("Err must surface the failed refresh")
	}

	fail = false
	if _, err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("recovery refresh: %v", err)
	}
	if v.Err() != nil {
		t.Errorf("Err must clear after a successful refresh, got %v", v.Err())
	}
}

func TestViewStaleResponseDropped(t *testing.T) {
	// A slow first request delivers after a second request already
	// completed; its data must not overwrite the newer state.
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex

	v := NewView(func(ctx context.Context, minWeight int) ([]KnowledgePoint, error) {
		mu.Lock()
		calls++
		call := calls
		mu.Unlock()
		if call == 1 {
			<-release
			return []KnowledgePoint{testPoint(99, 9, 0, "stale", nil)}, nil
		}
		return []KnowledgePoint{testPoint(1, 1, 0, "fresh", nil)}, nil
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v.Refresh(context.Background())
	}()

	// Wait until the slow request is in flight before racing it.
	for {
		mu.Lock()
		started := calls >= 1
		mu.Unlock()
		if started {
			break
		}
	}

	if _, err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	close(release)
	wg.Wait()

	g := v.Graph()
	if g == nil || len(g.Nodes) != 1 || g.Nodes[0].ID != "1" {
		t.Fatalf("stale response overwrote newer state: %#v", g)
	}
}

func TestViewMinWeightClamped(t *testing.T) {
	var seen []int
	v := NewView(func(ctx context.Context, minWeight int) ([]KnowledgePoint, error) {
		seen = append(seen, minWeight)
		return nil, nil
	})

	for _, w := range []int{0, 3, 9} {
		v.SetMinWeight(w)
		if _, err := v.Refresh(context.Background()); err != nil {
			t.Fatalf("Refresh: %v", err)
		}
	}
	want := []int{1, 3, 5}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("minWeight[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}
