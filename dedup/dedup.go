// Package dedup implements the similarity-based duplicate detector (spec
// §4.H): preprocessing, optional year-bucketed partitioning, pairwise
// comparison via union-find, and deterministic representative selection,
// optionally with buckets processed concurrently (spec §5).
package dedup

import (
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/citeparse/citeparse/citation"
)

// DeduplicatorConfig configures FindDuplicatesWithConfig, matching spec
// §4.H's DeduplicatorConfig.
type DeduplicatorConfig struct {
	// GroupByYear partitions citations by Date.Year before comparing,
	// trading a little cross-year recall for much less pairwise work.
	// Default true, per spec.
	GroupByYear bool
	// RunInParallel processes buckets concurrently. Only effective when
	// GroupByYear is also true (spec §4.H).
	RunInParallel bool
	// SourcePreferences, in priority order, steers representative
	// selection when sources are supplied (spec §4.H step 5.1).
	SourcePreferences []string
}

// NewDeduplicatorConfig returns the spec's default configuration:
// year-grouped, sequential, no source preferences.
func NewDeduplicatorConfig() DeduplicatorConfig {
	return DeduplicatorConfig{GroupByYear: true}
}

// DuplicateGroup is one equivalence class: a chosen representative plus
// the rest of its class, in ascending original-index order (spec §4.H).
type DuplicateGroup struct {
	Unique     citation.Citation
	Duplicates []citation.Citation
}

// ErrSourceLengthMismatch is returned when sources does not have exactly
// one entry per citation.
var ErrSourceLengthMismatch = errors.New("citeparse/dedup: sources length does not match citations length")

// FindDuplicates runs the deduplicator with default configuration and no
// sources (spec §4.H's find_duplicates).
func FindDuplicates(citations []citation.Citation) ([]DuplicateGroup, error) {
	return FindDuplicatesWithConfig(citations, nil, NewDeduplicatorConfig())
}

// FindDuplicatesWithSources runs the deduplicator with default
// configuration, supplying a parallel source name per citation so
// SourcePreferences (if later configured) could apply. (spec §4.H's
// find_duplicates_with_sources).
func FindDuplicatesWithSources(citations []citation.Citation, sources []string) ([]DuplicateGroup, error) {
	return FindDuplicatesWithConfig(citations, sources, NewDeduplicatorConfig())
}

// FindDuplicatesWithConfig is the full entry point: citations, an optional
// parallel sources slice (nil to disable source-preference selection), and
// an explicit configuration.
func FindDuplicatesWithConfig(citations []citation.Citation, sources []string, cfg DeduplicatorConfig) ([]DuplicateGroup, error) {
	if sources != nil && len(sources) != len(citations) {
		return nil, ErrSourceLengthMismatch
	}

	keys := preprocess(citations)
	buckets := partition(keys, cfg.GroupByYear)

	type bucketResult struct {
		groups []rawGroup
	}
	results := make([]bucketResult, len(buckets))

	process := func(i int) {
		results[i] = bucketResult{
			groups: processBucket(buckets[i].members, keys, citations, sources, cfg.SourcePreferences),
		}
	}

	if cfg.RunInParallel && cfg.GroupByYear && len(buckets) > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, maxInt(1, runtime.NumCPU()))
		for i := range buckets {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				process(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range buckets {
			process(i)
		}
	}

	// Final assembly is sequential and deterministic regardless of
	// execution mode: buckets are already in a fixed order from
	// partition, and each bucket's own groups are already sorted by
	// smallest member index (spec §5).
	var flat []rawGroup
	for _, r := range results {
		flat = append(flat, r.groups...)
	}

	groups := make([]DuplicateGroup, len(flat))
	for i, rg := range flat {
		groups[i] = rg.group
	}
	return groups, nil
}

// rawGroup pairs an assembled DuplicateGroup with the smallest original
// index of its class, used only to keep groups ordered within a bucket.
type rawGroup struct {
	minIdx int
	group  DuplicateGroup
}

// processBucket runs the pairwise comparison and union-find over one
// bucket's members, then builds and orders its DuplicateGroups.
func processBucket(members []int, keys []key, citations []citation.Citation, sources []string, preferences []string) []rawGroup {
	n := len(members)
	if n == 0 {
		return nil
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		ki := keys[members[i]]
		for j := i + 1; j < n; j++ {
			if matchPair(ki, keys[members[j]]) {
				uf.union(i, j)
			}
		}
	}

	byRoot := make(map[int][]int)
	for pos, globalIdx := range members {
		root := uf.find(pos)
		byRoot[root] = append(byRoot[root], globalIdx)
	}

	groups := make([]rawGroup, 0, len(byRoot))
	for _, classMembers := range byRoot {
		sort.Ints(classMembers)
		repIdx, dupIdx := selectRepresentative(classMembers, citations, sources, preferences)

		g := DuplicateGroup{Unique: citations[repIdx]}
		for _, d := range dupIdx {
			g.Duplicates = append(g.Duplicates, citations[d])
		}
		groups = append(groups, rawGroup{minIdx: classMembers[0], group: g})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].minIdx < groups[j].minIdx })
	return groups
}
