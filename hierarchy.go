package palisade

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elevatehq/palisade/id"
	"github.com/elevatehq/palisade/org"
	"github.com/elevatehq/palisade/store"
)

// HierarchyExpander resolves the transitive descendants of an
// organizational unit. Traversal is breadth-first with a visited set, so a
// corrupted hierarchy containing a cycle terminates instead of looping.
type HierarchyExpander struct {
	store    store.Store
	logger   *slog.Logger
	maxDepth int
}

// NewHierarchyExpander creates an expander backed by the given store.
// maxDepth bounds traversal depth; zero means unbounded.
func NewHierarchyExpander(s store.Store, logger *slog.Logger, maxDepth int) *HierarchyExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &HierarchyExpander{store: s, logger: logger, maxDepth: maxDepth}
}

// Descendants returns the IDs of every active unit below the root,
// restricted to the given kind. The root itself is excluded. Each unit is
// visited at most once.
func (h *HierarchyExpander) Descendants(ctx context.Context, tenantID string, rootID id.OrgUnitID, kind org.UnitKind) ([]string, error) {
	visited := map[string]struct{}{rootID.String(): {}}
	var out []string

	frontier := []id.OrgUnitID{rootID}
	depth := 0
	for len(frontier) > 0 {
		if h.maxDepth > 0 && depth >= h.maxDepth {
			h.logger.Warn("hierarchy expansion hit depth limit",
				slog.String("tenant_id", tenantID),
				slog.String("root_id", rootID.String()),
				slog.Int("max_depth", h.maxDepth))
			break
		}

		var next []id.OrgUnitID
		for _, parentID := range frontier {
			children, err := h.store.ListChildUnits(ctx, tenantID, parentID, kind)
			if err != nil {
				return nil, fmt.Errorf("palisade: expand hierarchy: %w", err)
			}
			for _, child := range children {
				key := child.ID.String()
				if _, seen := visited[key]; seen {
					continue
				}
				visited[key] = struct{}{}
				out = append(out, key)
				next = append(next, child.ID)
			}
		}
		frontier = next
		depth++
	}
	return out, nil
}
