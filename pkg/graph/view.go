package graph

import (
	"context"
	"sync"
)

// FetchFunc loads knowledge points filtered by minimum weight.
type FetchFunc func(ctx context.Context, minWeight int) ([]KnowledgePoint, error)

// View owns one graph's fetch/build cycle. Concurrent refreshes follow a
// latest-request-wins rule: every Refresh takes a token and only the
// response matching the newest token may update state, so a slow stale
// response can never overwrite newer data. On fetch error the last good
// graph is retained and the error is surfaced alongside it.
type View struct {
	fetch FetchFunc

	mu        sync.Mutex
	token     uint64
	mode      Mode
	minWeight int
	graph     *Graph
	lastErr   error
}

// NewView creates a view in shared mode with no minimum weight filter.
func NewView(fetch FetchFunc) *View {
	return &View{fetch: fetch, mode: ModeShared, minWeight: 1}
}

// SetMode switches the keyword representation. The graph is rebuilt from the
// store on the next Refresh; there is no incremental update.
func (v *View) SetMode(mode Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.mode = mode
}

// SetMinWeight sets the server-side minimum weight filter (1-5).
func (v *View) SetMinWeight(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if w < 1 {
		w = 1
	}
	if w > 5 {
		w = 5
	}
	v.minWeight = w
}

// Refresh fetches knowledge points and rebuilds the graph. If a newer
// Refresh started while this one was in flight, the result is discarded and
// the newer state is returned instead.
func (v *View) Refresh(ctx context.Context) (*Graph, error) {
	v.mu.Lock()
	v.token++
	token := v.token
	mode := v.mode
	minWeight := v.minWeight
	v.mu.Unlock()

	points, err := v.fetch(ctx, minWeight)

	v.mu.Lock()
	defer v.mu.Unlock()

	if token != v.token {
		// Stale response; a newer request owns the state now.
		return v.graph, v.lastErr
	}
	if err != nil {
		v.lastErr = err
		return v.graph, err
	}

	g := Build(points, mode)
	v.graph = &g
	v.lastErr = nil
	return v.graph, nil
}

// Graph returns the last successfully built graph, nil before the first
// successful refresh.
func (v *View) Graph() *Graph {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.graph
}

// Err returns the error of the most recent completed refresh, nil after a
// success.
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}
