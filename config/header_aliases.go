// Package config holds the YAML-configurable pieces of citeparse that the
// core spec leaves as data rather than code: today, the CSV parser's
// canonical-header-to-alias table.
package config

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed header_aliases.yaml
var embeddedAliases embed.FS

// CanonicalHeaders is the fixed set of CSV columns the parser understands
// natively, per spec §4.F.
var CanonicalHeaders = []string{
	"title", "authors", "year", "journal", "volume", "issue", "pages", "doi", "abstract", "keywords",
}

// HeaderAliasProfile maps each canonical CSV header to the list of
// case-insensitive column names accepted as aliases for it.
type HeaderAliasProfile struct {
	Aliases map[string][]string `yaml:"-"`
}

// rawAliasProfile is the YAML shape: a flat mapping from canonical name to
// alias list, matching header_aliases.yaml.
type rawAliasProfile map[string][]string

// DefaultHeaderAliasProfile loads the alias table embedded into the binary
// at build time.
func DefaultHeaderAliasProfile() (*HeaderAliasProfile, error) {
	data, err := embeddedAliases.ReadFile("header_aliases.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded header alias profile: %w", err)
	}
	return parseHeaderAliasProfile(data)
}

// LoadHeaderAliasProfile loads an alias table from a user-supplied YAML
// file, overriding the embedded default.
func LoadHeaderAliasProfile(path string) (*HeaderAliasProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading header alias profile: %w", err)
	}
	return parseHeaderAliasProfile(data)
}

func parseHeaderAliasProfile(data []byte) (*HeaderAliasProfile, error) {
	var raw rawAliasProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing header alias profile YAML: %w", err)
	}
	return &HeaderAliasProfile{Aliases: raw}, nil
}

// Canonicalize returns the canonical field name for a raw CSV header cell,
// matching case-insensitively against the canonical names themselves and
// every configured alias. The second return value is false when header
// matches nothing, meaning the column is unmapped.
func (p *HeaderAliasProfile) Canonicalize(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}

	for _, canon := range CanonicalHeaders {
		if h == canon {
			return canon, true
		}
	}

	for canon, aliases := range p.Aliases {
		for _, alias := range aliases {
			if h == strings.ToLower(alias) {
				return canon, true
			}
		}
	}

	return "", false
}

// IsCanonicalOrAliased reports whether header matches a canonical name or
// any configured alias, used by the format detector's CSV sniff (spec
// §4.G).
func (p *HeaderAliasProfile) IsCanonicalOrAliased(header string) bool {
	_, ok := p.Canonicalize(header)
	return ok
}
