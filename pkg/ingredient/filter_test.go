package ingredient

import (
	"kedaistock-backend/domain"
	"testing"
)

func sampleIngredients() []domain.IngredientResponse {
	return []domain.IngredientResponse{
		{ID: "1", Name: "Arabica Coffee Beans", CategoryID: "cat-coffee"},
		{ID: "2", Name: "Robusta Coffee Beans", CategoryID: "cat-coffee"},
		{ID: "3", Name: "Palm Sugar", CategoryID: "cat-sweetener"},
		{ID: "4", Name: "Full Cream Milk", CategoryID: "cat-dairy"},
	}
}

func TestFilterBySearchTextIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := Filter(sampleIngredients(), "COFFEE", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("expected input order preserved, got %s then %s", got[0].ID, got[1].ID)
	}
}

func TestFilterTrimsSearchText(t *testing.T) {
	t.Parallel()

	got := Filter(sampleIngredients(), "  sugar  ", "")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected only Palm Sugar, got %v", got)
	}
}

func TestFilterByCategory(t *testing.T) {
	t.Parallel()

	got := Filter(sampleIngredients(), "", "cat-dairy")
	if len(got) != 1 || got[0].ID != "4" {
		t.Fatalf("expected only the dairy ingredient, got %v", got)
	}
}

func TestFilterCombinesSearchAndCategory(t *testing.T) {
	t.Parallel()

	got := Filter(sampleIngredients(), "beans", "cat-sweetener")
	if len(got) != 0 {
		t.Fatalf("expected no matches across conflicting filters, got %v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := sampleIngredients()
	Filter(items, "milk", "")
	if len(items) != 4 || items[0].ID != "1" {
		t.Fatalf("input slice was mutated: %v", items)
	}
}

func TestHasFilters(t *testing.T) {
	t.Parallel()

	if HasFilters("", "") {
		t.Fatal("expected no filters for empty inputs")
	}
	if HasFilters("   ", "") {
		t.Fatal("expected whitespace search to count as no filter")
	}
	if !HasFilters("coffee", "") {
		t.Fatal("expected search text to count as a filter")
	}
	if !HasFilters("", "cat-coffee") {
		t.Fatal("expected category to count as a filter")
	}
}
