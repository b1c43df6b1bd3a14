package format

import "github.com/citeparse/citeparse/citation"

// detectionOrder is the fixed sniff priority from spec §4.G: EndNote XML,
// then RIS, then PubMed, then CSV. Registry.Detect never depends on
// registration order.
var detectionOrder = []citation.Format{
	citation.FormatEndNoteXML,
	citation.FormatRIS,
	citation.FormatPubMed,
	citation.FormatCSV,
}

// Registry holds the parsers for every supported format, keyed by the
// CitationFormat they produce.
type Registry struct {
	parsers map[citation.Format]Parser
}

// DefaultRegistry is populated by each format package's init().
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[citation.Format]Parser)}
}

// Register adds a parser to the registry, keyed by its Format ID.
func (r *Registry) Register(p Parser) {
	r.parsers[p.ID()] = p
}

// Get retrieves the parser registered for a format, if any.
func (r *Registry) Get(f citation.Format) (Parser, bool) {
	p, ok := r.parsers[f]
	return p, ok
}

// Detect sniffs peek against each registered format in the fixed priority
// order from spec §4.G and returns the first one whose CanParse matches.
func (r *Registry) Detect(peek []byte) (Parser, citation.Format, bool) {
	for _, f := range detectionOrder {
		p, ok := r.parsers[f]
		if !ok {
			continue
		}
		if p.CanParse(peek) {
			return p, f, true
		}
	}
	return nil, citation.FormatUnknown, false
}

// Register adds a parser to the default registry.
func Register(p Parser) {
	DefaultRegistry.Register(p)
}

// Detect sniffs using the default registry.
func Detect(peek []byte) (Parser, citation.Format, bool) {
	return DefaultRegistry.Detect(peek)
}
