package dedup

import "sort"

// bucket is one partition of citation indices compared only against each
// other (spec §4.H step 2). Key is nil for the "no grouping" single bucket
// and for the distinguished no-year bucket; otherwise it holds the year.
type bucket struct {
	key     *int
	members []int
}

// partition implements spec §4.H's step 2. When groupByYear is false,
// every citation lands in one bucket. Otherwise citations bucket by
// Date.Year; citations with no year form a single distinguished bucket
// compared only against itself. Buckets are returned in ascending year
// order with the no-year bucket last — an Open Question the spec leaves
// unresolved; this ordering is recorded in DESIGN.md.
func partition(keys []key, groupByYear bool) []bucket {
	if !groupByYear {
		members := make([]int, len(keys))
		for i := range keys {
			members[i] = i
		}
		return []bucket{{key: nil, members: members}}
	}

	byYear := make(map[int][]int)
	var noYear []int
	for _, k := range keys {
		if k.year == nil {
			noYear = append(noYear, k.idx)
		} else {
			byYear[*k.year] = append(byYear[*k.year], k.idx)
		}
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	buckets := make([]bucket, 0, len(years)+1)
	for _, y := range years {
		yy := y
		buckets = append(buckets, bucket{key: &yy, members: byYear[y]})
	}
	if len(noYear) > 0 {
		buckets = append(buckets, bucket{key: nil, members: noYear})
	}
	return buckets
}
