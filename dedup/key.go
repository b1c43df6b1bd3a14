package dedup

import (
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/helpers"
)

// key is the compact comparison record spec §4.H's preprocess step builds
// for each input Citation: everything the matching predicate needs, with
// every normalization applied exactly once, up front.
type key struct {
	idx int

	normTitle       string
	normJournal     string
	normJournalAbbr string
	normVolume      string
	normPages       string

	year *int

	doiLC     string
	issnsNorm []string
}

// preprocess builds one key per citation, in input order.
func preprocess(citations []citation.Citation) []key {
	keys := make([]key, len(citations))
	for i, c := range citations {
		k := key{
			idx:             i,
			normTitle:       helpers.NormalizeTitleForMatch(c.Title),
			normJournal:     helpers.NormalizeJournalForMatch(c.Journal),
			normJournalAbbr: helpers.NormalizeJournalForMatch(c.JournalAbbr),
			normVolume:      helpers.NormalizeVolumeForMatch(c.Volume),
			normPages:       helpers.NormalizePagesForMatch(c.Pages),
			doiLC:           strings.ToLower(c.DOI),
		}
		if c.Date != nil {
			y := c.Date.Year
			k.year = &y
		}
		for _, raw := range c.ISSN {
			if n := helpers.NormalizeISSNForMatch(raw); n != "" {
				k.issnsNorm = append(k.issnsNorm, n)
			}
		}
		keys[i] = k
	}
	return keys
}
