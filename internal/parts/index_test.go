package parts

import (
	"reflect"
	"testing"

	"github.com/tinkeroneo/cook-go/internal/types"
)

func edge(parent, child string) types.RecipePart {
	return types.RecipePart{ParentID: parent, ChildID: child, SpaceID: "s"}
}

func TestBuildIndex_PreservesEdgeOrder(t *testing.T) {
	idx := BuildIndex([]types.RecipePart{
		edge("menu", "main"),
		edge("menu", "starter"),
		edge("main", "sauce"),
	})
	if got := idx["menu"]; !reflect.DeepEqual(got, []string{"main", "starter"}) {
		t.Fatalf("menu children = %v", got)
	}
	if got := idx["main"]; !reflect.DeepEqual(got, []string{"sauce"}) {
		t.Fatalf("main children = %v", got)
	}
}

func TestIsMenuRecipe(t *testing.T) {
	idx := BuildIndex([]types.RecipePart{edge("menu", "main")})
	if !IsMenuRecipe("menu", idx) {
		t.Fatal("menu should be a menu recipe")
	}
	if IsMenuRecipe("main", idx) {
		t.Fatal("main has no children")
	}
}

func TestCollectDescendants_CycleSafe(t *testing.T) {
	idx := BuildIndex([]types.RecipePart{
		edge("A", "A"), // self-loop
		edge("A", "B"),
		edge("B", "C"),
		edge("C", "A"), // closes the cycle
	})
	got := CollectDescendants("A", idx, DefaultMaxDepth)
	if !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Fatalf("descendants = %v, want [B C]", got)
	}
}

func TestCollectDescendants_DepthCap(t *testing.T) {
	idx := BuildIndex([]types.RecipePart{
		edge("A", "B"), edge("B", "C"), edge("C", "D"),
		edge("D", "E"), edge("E", "F"), edge("F", "G"),
	})
	got := CollectDescendants("A", idx, 5)
	if !reflect.DeepEqual(got, []string{"B", "C", "D", "E", "F"}) {
		t.Fatalf("descendants = %v, want chain through depth 5", got)
	}
}

func TestCollectDescendants_DiamondVisitedOnce(t *testing.T) {
	// A → B and A → C both include D.
	idx := BuildIndex([]types.RecipePart{
		edge("A", "B"), edge("A", "C"),
		edge("B", "D"), edge("C", "D"),
	})
	got := CollectDescendants("A", idx, DefaultMaxDepth)
	if !reflect.DeepEqual(got, []string{"B", "D", "C"}) {
		t.Fatalf("descendants = %v, want D expanded once", got)
	}
}

func TestCollectDescendants_NoChildren(t *testing.T) {
	if got := CollectDescendants("lonely", Index{}, 0); got != nil {
		t.Fatalf("descendants = %v, want nil", got)
	}
}
