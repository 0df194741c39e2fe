package btree

import (
	"testing"
)

func collect[K, V any](it *Iterator[K, V]) []K {
	var out []K
	for it.Next() {
		out = append(out, it.Key())
	}
	return out
}

// =============================================================================
// Iterator Tests
// =============================================================================

func TestIter_Ordered(t *testing.T) {
	tree := newScenarioTree(t)

	it := tree.Iter()
	var keys []int
	for it.Next() {
		if it.Value() != valueOf(it.Key()) {
			t.Errorf("Value() for %d = %q, want %q", it.Key(), it.Value(), valueOf(it.Key()))
		}
		keys = append(keys, it.Key())
	}
	if want := []int{5, 6, 7, 10, 12, 17, 20, 30}; !equalInts(keys, want) {
		t.Errorf("Iter() = %v, want %v", keys, want)
	}
}

func TestIter_EmptyTree(t *testing.T) {
	tree, _ := New[int, int](4)
	if tree.Iter().Next() {
		t.Error("Next() on empty tree returned true")
	}
	if got := collect(tree.Range(0, 100)); len(got) != 0 {
		t.Errorf("Range on empty tree = %v", got)
	}
}

func TestIter_NotRestartable(t *testing.T) {
	tree := newScenarioTree(t)
	it := tree.Iter()
	for it.Next() {
	}
	if it.Next() {
		t.Error("exhausted iterator yielded again")
	}
	if it.Key() != 0 || it.Value() != "" {
		t.Errorf("exhausted iterator holds (%d, %q)", it.Key(), it.Value())
	}
}

func TestIter_EarlyBreak(t *testing.T) {
	tree := newScenarioTree(t)
	var got []int
	for k, v := range tree.All() {
		if v != valueOf(k) {
			t.Errorf("value for %d = %q", k, v)
		}
		got = append(got, k)
		if len(got) == 4 {
			break
		}
	}
	if want := []int{5, 6, 7, 10}; !equalInts(got, want) {
		t.Errorf("All() with break = %v, want %v", got, want)
	}
}

func TestIter_ResumeAfterBreak(t *testing.T) {
	tree := newScenarioTree(t)
	it := tree.Iter()
	for k := range it.Keys() {
		if k == 7 {
			break
		}
	}
	if rest := collect(it); !equalInts(rest, []int{10, 12, 17, 20, 30}) {
		t.Errorf("remaining keys = %v", rest)
	}
}

// =============================================================================
// Range Tests
// =============================================================================

func TestRange_Scenario(t *testing.T) {
	tree := newScenarioTree(t)
	if got := collect(tree.Range(6, 20)); !equalInts(got, []int{6, 7, 10, 12, 17}) {
		t.Errorf("Range(6, 20) = %v, want [6 7 10 12 17]", got)
	}
}

func TestRangeBounds(t *testing.T) {
	tree := newScenarioTree(t)

	tests := []struct {
		name string
		low  Bound[int]
		high Bound[int]
		want []int
	}{
		{"included_included", Included(6), Included(20), []int{6, 7, 10, 12, 17, 20}},
		{"excluded_excluded", Excluded(6), Excluded(20), []int{7, 10, 12, 17}},
		{"excluded_included", Excluded(6), Included(20), []int{7, 10, 12, 17, 20}},
		{"absent_bounds", Included(8), Excluded(18), []int{10, 12, 17}},
		{"low_on_separator", Included(10), Excluded(12), []int{10}},
		{"low_excluded_separator", Excluded(10), Excluded(20), []int{12, 17}},
		{"unbounded_low", Unbounded[int](), Excluded(10), []int{5, 6, 7}},
		{"unbounded_high", Included(17), Unbounded[int](), []int{17, 20, 30}},
		{"unbounded_both", Unbounded[int](), Unbounded[int](), []int{5, 6, 7, 10, 12, 17, 20, 30}},
		{"low_past_leaf_end", Excluded(7), Included(10), []int{10}},
		{"low_above_all", Included(31), Unbounded[int](), nil},
		{"high_below_all", Unbounded[int](), Excluded(5), nil},
		{"empty_half_open", Included(12), Excluded(12), nil},
		{"single_point", Included(12), Included(12), []int{12}},
		{"reversed", Included(20), Excluded(6), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(tree.RangeBounds(tt.low, tt.high))
			if !equalInts(got, tt.want) {
				t.Errorf("RangeBounds() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRange_MatchesFilter(t *testing.T) {
	tree, _ := New[int, int](5)
	for i := 0; i < 600; i += 3 {
		tree.Insert(i, i)
	}
	for _, r := range [][2]int{{0, 600}, {1, 2}, {-10, 10}, {299, 301}, {123, 456}, {597, 1000}} {
		var want []int
		for i := 0; i < 600; i += 3 {
			if i >= r[0] && i < r[1] {
				want = append(want, i)
			}
		}
		if got := collect(tree.Range(r[0], r[1])); !equalInts(got, want) {
			t.Errorf("Range(%d, %d) = %v, want %v", r[0], r[1], got, want)
		}
	}
}

func TestRange_AfterDeletes(t *testing.T) {
	tree := newScenarioTree(t)
	tree.Delete(6)
	tree.Delete(20)
	if got := collect(tree.Range(6, 31)); !equalInts(got, []int{7, 10, 12, 17, 30}) {
		t.Errorf("Range(6, 31) = %v", got)
	}
}
