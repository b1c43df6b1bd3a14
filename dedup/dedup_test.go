package dedup

import (
	"testing"

	"github.com/citeparse/citeparse/citation"
)

func cit(title string, opts ...func(*citation.Citation)) citation.Citation {
	c := citation.Citation{Title: title}
	for _, o := range opts {
		o(&c)
	}
	return c
}

func withDOI(doi string) func(*citation.Citation) {
	return func(c *citation.Citation) { c.DOI = doi }
}

func withJournal(j string) func(*citation.Citation) {
	return func(c *citation.Citation) { c.Journal = j }
}

func withYear(y int) func(*citation.Citation) {
	return func(c *citation.Citation) { c.Date = citation.NewDateFromYear(y) }
}

func withAbstract(a string) func(*citation.Citation) {
	return func(c *citation.Citation) { c.AbstractText = a }
}

// S5 — exact DOI + journal match produces one group with one duplicate.
func TestFindDuplicatesExactDOIAndJournal(t *testing.T) {
	citations := []citation.Citation{
		cit("Machine Learning in Healthcare", withDOI("10.1/x"), withJournal("Nature Medicine")),
		cit("Machine Learning in Healthcare", withDOI("10.1/x"), withJournal("Nature Medicine")),
	}

	groups, err := FindDuplicates(citations)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Duplicates) != 1 {
		t.Fatalf("got %d duplicates, want 1", len(groups[0].Duplicates))
	}
}

// S6 — same DOI, empty journal on both sides, titles too dissimilar to
// satisfy the strict 0.99 Jaro floor: no match.
func TestFindDuplicatesStrictThresholdNoMatch(t *testing.T) {
	citations := []citation.Citation{
		cit("Foo", withDOI("10.1/x")),
		cit("Fop", withDOI("10.1/x")),
	}

	groups, err := FindDuplicates(citations)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (no match)", len(groups))
	}
	for _, g := range groups {
		if len(g.Duplicates) != 0 {
			t.Errorf("group %+v has duplicates, want none", g)
		}
	}
}

// S7 — representative selection honors source preferences in order.
func TestFindDuplicatesWithSourcePreferences(t *testing.T) {
	citations := []citation.Citation{
		cit("Shared Title Of Record", withDOI("10.1/x"), withJournal("Cell"), withAbstract("from Embase")),
		cit("Shared Title Of Record", withDOI("10.1/x"), withJournal("Cell"), withAbstract("from PubMed")),
		cit("Shared Title Of Record", withDOI("10.1/x"), withJournal("Cell"), withAbstract("from CrossRef")),
	}
	sources := []string{"Embase", "PubMed", "CrossRef"}

	cfg := NewDeduplicatorConfig()
	cfg.SourcePreferences = []string{"PubMed", "Embase"}

	groups, err := FindDuplicatesWithConfig(citations, sources, cfg)
	if err != nil {
		t.Fatalf("FindDuplicatesWithConfig: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0].Duplicates) != 2 {
		t.Fatalf("got %d duplicates, want 2", len(groups[0].Duplicates))
	}
	// The unique citation must be the one sourced from "PubMed" (index 1).
	if groups[0].Unique.AbstractText != "from PubMed" {
		t.Fatalf("unique abstract = %q, want %q", groups[0].Unique.AbstractText, "from PubMed")
	}
}

func TestSourceLengthMismatchErrors(t *testing.T) {
	citations := []citation.Citation{cit("A"), cit("B")}
	_, err := FindDuplicatesWithSources(citations, []string{"only-one"})
	if err != ErrSourceLengthMismatch {
		t.Fatalf("err = %v, want ErrSourceLengthMismatch", err)
	}
}

// Partition invariant: every input citation appears exactly once across
// the emitted groups, split between unique and duplicates.
func TestPartitionInvariant(t *testing.T) {
	citations := []citation.Citation{
		cit("Alpha Beta Gamma", withDOI("10.1/a"), withJournal("X")),
		cit("Alpha Beta Gamma", withDOI("10.1/a"), withJournal("X")),
		cit("Completely Unrelated Record"),
		cit("Another Completely Unrelated Paper"),
	}

	groups, err := FindDuplicates(citations)
	if err != nil {
		t.Fatalf("FindDuplicates: %v", err)
	}

	seen := make(map[string]int)
	for _, g := range groups {
		seen[g.Unique.Title]++
		for _, d := range g.Duplicates {
			seen[d.Title]++
		}
	}
	if len(seen) != 3 {
		t.Fatalf("got %d distinct titles recovered, want 3", len(seen))
	}
	if seen["Alpha Beta Gamma"] != 2 {
		t.Errorf("Alpha Beta Gamma count = %d, want 2", seen["Alpha Beta Gamma"])
	}
}

// Determinism: parallel and serial execution must agree.
func TestParallelMatchesSerial(t *testing.T) {
	citations := []citation.Citation{
		cit("Shared Title Across Records", withDOI("10.1/z"), withJournal("Science"), withYear(2020)),
		cit("Shared Title Across Records", withDOI("10.1/z"), withJournal("Science"), withYear(2020)),
		cit("Unrelated One", withYear(2020)),
		cit("Unrelated Two", withYear(2021)),
		cit("Shared Title Across Records", withDOI("10.1/z"), withJournal("Science"), withYear(2021)),
	}

	serialCfg := NewDeduplicatorConfig()
	serialGroups, err := FindDuplicatesWithConfig(citations, nil, serialCfg)
	if err != nil {
		t.Fatalf("serial: %v", err)
	}

	parallelCfg := NewDeduplicatorConfig()
	parallelCfg.RunInParallel = true
	parallelGroups, err := FindDuplicatesWithConfig(citations, nil, parallelCfg)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(serialGroups) != len(parallelGroups) {
		t.Fatalf("serial produced %d groups, parallel produced %d", len(serialGroups), len(parallelGroups))
	}
	for i := range serialGroups {
		if serialGroups[i].Unique.Title != parallelGroups[i].Unique.Title {
			t.Errorf("group %d: unique mismatch %q vs %q", i, serialGroups[i].Unique.Title, parallelGroups[i].Unique.Title)
		}
		if len(serialGroups[i].Duplicates) != len(parallelGroups[i].Duplicates) {
			t.Errorf("group %d: duplicate count mismatch", i)
		}
	}
}

// Symmetry: match(A,B) == match(B,A).
func TestMatchPairSymmetry(t *testing.T) {
	keys := preprocess([]citation.Citation{
		cit("Some Shared Title", withDOI("10.1/q"), withJournal("Lancet")),
		cit("Some Shared Title", withDOI("10.1/q"), withJournal("Lancet")),
		cit("A Totally Different Paper"),
	})

	for i := range keys {
		for j := range keys {
			if matchPair(keys[i], keys[j]) != matchPair(keys[j], keys[i]) {
				t.Errorf("matchPair not symmetric for (%d,%d)", i, j)
			}
		}
	}
}

func TestEmptyTitleNeverMatches(t *testing.T) {
	keys := preprocess([]citation.Citation{
		cit("", withDOI("10.1/x"), withJournal("X")),
		cit("", withDOI("10.1/x"), withJournal("X")),
	})
	if matchPair(keys[0], keys[1]) {
		t.Error("citations with empty normalized titles must never match")
	}
}
