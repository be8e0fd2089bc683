// Package application holds the aggregation pipeline: stack resolution,
// comment/review materialization, and per-revision report assembly. It
// depends only on port interfaces.
package application

import (
	"context"
	"fmt"

	"github.com/mozilla-conduit/phab-etl/internal/domain/model"
	"github.com/mozilla-conduit/phab-etl/internal/domain/port/driven"
)

// StackResolver computes the size of the dependency stack a revision belongs
// to: the connected component over depends-on / depended-on-by edges,
// restricted to revisions whose titles carry the same bug id prefix.
type StackResolver struct {
	differentials driven.DifferentialStore
}

// NewStackResolver creates a StackResolver reading from the given store.
func NewStackResolver(differentials driven.DifferentialStore) *StackResolver {
	return &StackResolver{differentials: differentials}
}

// StackSize returns the number of distinct revisions in rev's stack, rev
// included; a revision with no dependency edges has a stack of 1.
//
// Breadth-first traversal: each round fetches the edges touching the current
// frontier, resolves both endpoints, and admits an endpoint into the next
// frontier only if it shares the seed's bug id and has not been visited.
// The visited set grows every round or the loop ends, so cycles and diamond
// shapes terminate without double counting.
func (r *StackResolver) StackSize(ctx context.Context, rev model.Revision) (int, error) {
	bugID := rev.BugID()
	visited := make(map[string]struct{})
	frontier := map[string]struct{}{rev.PHID: {}}

	for len(frontier) > 0 {
		phids := make([]string, 0, len(frontier))
		for phid := range frontier {
			phids = append(phids, phid)
		}

		edges, err := r.differentials.DependencyEdges(ctx, phids)
		if err != nil {
			return 0, fmt.Errorf("fetch dependency edges: %w", err)
		}

		endpoints := make(map[string]struct{}, 2*len(edges))
		for _, e := range edges {
			endpoints[e.Src] = struct{}{}
			endpoints[e.Dst] = struct{}{}
		}

		var neighbors []model.Revision
		if len(endpoints) > 0 {
			list := make([]string, 0, len(endpoints))
			for phid := range endpoints {
				list = append(list, phid)
			}
			neighbors, err = r.differentials.RevisionsByPHIDs(ctx, list)
			if err != nil {
				return 0, fmt.Errorf("resolve edge endpoints: %w", err)
			}
		}

		for phid := range frontier {
			visited[phid] = struct{}{}
		}

		next := make(map[string]struct{})
		for _, nb := range neighbors {
			if nb.BugID() != bugID {
				continue
			}
			if _, seen := visited[nb.PHID]; seen {
				continue
			}
			next[nb.PHID] = struct{}{}
		}
		frontier = next
	}

	return len(visited), nil
}
