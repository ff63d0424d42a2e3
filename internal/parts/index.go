// Package parts turns the flat recipe-part edge list into a recursively
// expandable menu structure. The edge set at the data layer may contain
// cycles and self-loops; traversal tolerates both via a visited set and a
// depth cap instead of raising errors, preferring degraded rendering over
// crashing on dirty data.
package parts

import "github.com/tinkeroneo/cook-go/internal/types"

// DefaultMaxDepth bounds menu expansion from the root.
const DefaultMaxDepth = 5

// Index maps a parent recipe id to its ordered child ids. It is derived
// state, rebuilt on every load and never persisted.
type Index map[string][]string

// BuildIndex builds the parent→children adjacency in O(n). Child order is
// the input edge order.
func BuildIndex(edges []types.RecipePart) Index {
	idx := make(Index, len(edges))
	for _, e := range edges {
		idx[e.ParentID] = append(idx[e.ParentID], e.ChildID)
	}
	return idx
}

// IsMenuRecipe reports whether the recipe has at least one direct child.
// This is the sole signal deciding flat-recipe UI vs menu UI.
func IsMenuRecipe(recipeID string, idx Index) bool {
	return len(idx[recipeID]) > 0
}

type frame struct {
	id    string
	depth int
}

// CollectDescendants walks depth-first from rootID's direct children and
// returns every descendant id actually visited, in traversal order.
//
// The visited set is seeded with rootID, so a self-referencing edge is
// ignored and the root is never re-entered through a cycle. A node reached
// via multiple paths is expanded once. Traversal halts maxDepth levels from
// the root regardless of remaining unvisited nodes; maxDepth <= 0 selects
// DefaultMaxDepth.
func CollectDescendants(rootID string, idx Index, maxDepth int) []string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	visited := map[string]bool{rootID: true}
	var out []string

	var stack []frame
	pushChildren := func(id string, depth int) {
		kids := idx[id]
		for i := len(kids) - 1; i >= 0; i-- {
			if !visited[kids[i]] {
				stack = append(stack, frame{id: kids[i], depth: depth})
			}
		}
	}
	pushChildren(rootID, 1)

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[f.id] {
			continue
		}
		visited[f.id] = true
		out = append(out, f.id)
		if f.depth < maxDepth {
			pushChildren(f.id, f.depth+1)
		}
	}
	return out
}
