package cursor

import (
	"context"
	"fmt"
	"sort"

	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/tabstop"
	"github.com/bethropolis/softtab/internal/types"
)

// deleteToward removes each non-empty selection, or for an empty one the
// span a move in dir would cross. All ranges go to the host as one edit;
// selections are only updated once the host has committed it.
func deleteToward(dir types.Direction) Command {
	return func(ctx context.Context, h Host) (types.Position, error) {
		indent := h.IndentContext().Normalized()
		sels, doc := snapshot(h)

		spans := make([]types.Range, len(sels))
		for i, sel := range sels {
			if !sel.IsEmpty() {
				spans[i] = sel.Range()
				continue
			}
			target, err := tabstop.Next(doc, sel.Active, dir, indent.TabWidth)
			if err != nil {
				return primaryOf(h), fmt.Errorf("delete %s: %w", dir, err)
			}
			spans[i] = types.NewRange(sel.Active, target)
		}

		merged := mergeRanges(spans)
		if len(merged) > 0 {
			if err := h.Delete(ctx, merged); err != nil {
				logger.Warnf("delete %s of %d range(s) failed: %v", dir, len(merged), err)
				return primaryOf(h), fmt.Errorf("delete %s: %w", dir, err)
			}
		}

		carets := make([]types.Selection, 0, len(spans))
		seen := make(map[types.Position]bool, len(spans))
		for _, span := range spans {
			caret := span.Start.AfterRemoving(merged)
			if seen[caret] {
				continue
			}
			seen[caret] = true
			carets = append(carets, types.NewCaret(caret))
		}
		return commit(h, carets), nil
	}
}

// mergeRanges drops empty ranges, sorts the rest in document order and
// joins any that overlap or touch.
func mergeRanges(ranges []types.Range) []types.Range {
	out := make([]types.Range, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})

	merged := out[:0]
	for _, r := range out {
		if n := len(merged); n > 0 && !merged[n-1].End.Before(r.Start) {
			if r.End.After(merged[n-1].End) {
				merged[n-1].End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
