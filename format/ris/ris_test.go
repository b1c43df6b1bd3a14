package ris

import (
	"strings"
	"testing"

	"github.com/citeparse/citeparse/citation"
)

func TestCanParseRecognizesRISSniff(t *testing.T) {
	f := Format{}
	peek := []byte("TY  - JOUR\nTI  - Example\nER  - \n")
	if !f.CanParse(peek) {
		t.Error("CanParse should recognize a TY/ER tag-line block")
	}
	if f.CanParse([]byte("title,author\nFoo,Bar\n")) {
		t.Error("CanParse should not recognize a CSV header")
	}
}

// S1 — minimal single-record RIS input.
func TestParseMinimalRecord(t *testing.T) {
	input := "TY  - JOUR\n" +
		"TI  - A Study of Things\n" +
		"AU  - Smith, John\n" +
		"PY  - 2021\n" +
		"JF  - Journal of Things\n" +
		"ER  - \n"

	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if len(got) != 1 {
		t.Fatalf("got %d citations, want 1", len(got))
	}

	c := got[0]
	if c.Title != "A Study of Things" {
		t.Errorf("Title = %q", c.Title)
	}
	if len(c.Authors) != 1 || c.Authors[0].Name != "Smith, John" {
		t.Errorf("Authors = %+v", c.Authors)
	}
	if c.Date == nil || c.Date.Year != 2021 {
		t.Errorf("Date = %v, want year 2021", c.Date)
	}
	if c.Journal != "Journal of Things" {
		t.Errorf("Journal = %q", c.Journal)
	}
	if c.CitationType != "Journal Article" {
		t.Errorf("CitationType = %q", c.CitationType)
	}
}

// Multiple AU lines accumulate, in source order.
func TestParseMultipleAuthorLines(t *testing.T) {
	input := "TY  - JOUR\n" +
		"TI  - Collaborative Work\n" +
		"AU  - Smith, John\n" +
		"AU  - Doe, Jane\n" +
		"AU  - Lee, Kim\n" +
		"ER  - \n"

	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if len(got[0].Authors) != 3 {
		t.Fatalf("got %d authors, want 3", len(got[0].Authors))
	}
	want := []string{"Smith, John", "Doe, Jane", "Lee, Kim"}
	for i, w := range want {
		if got[0].Authors[i].Name != w {
			t.Errorf("Authors[%d].Name = %q, want %q", i, got[0].Authors[i].Name, w)
		}
	}
}

func TestParseMissingTitleErrors(t *testing.T) {
	input := "TY  - JOUR\nAU  - Smith, John\nER  - \n"
	f := Format{}
	_, perr := f.Parse(input)
	if perr == nil {
		t.Fatal("expected a MissingValue error")
	}
	if perr.Err.Kind != citation.ErrMissingValue {
		t.Errorf("Kind = %v, want ErrMissingValue", perr.Err.Kind)
	}
	if perr.Err.Field != "title" {
		t.Errorf("Field = %q, want %q", perr.Err.Field, "title")
	}
}

// S4 — DOI recovered from a doi.org URL when DO is absent.
func TestParseDOIFallbackFromURL(t *testing.T) {
	input := "TY  - JOUR\n" +
		"TI  - Recoverable DOI\n" +
		"UR  - https://doi.org/10.1000/xyz123\n" +
		"ER  - \n"

	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if got[0].DOI != "10.1000/xyz123" {
		t.Errorf("DOI = %q, want %q", got[0].DOI, "10.1000/xyz123")
	}
}

func TestParseExplicitDOITakesPriorityOverURL(t *testing.T) {
	input := "TY  - JOUR\n" +
		"TI  - Has Explicit DOI\n" +
		"DO  - 10.1/explicit\n" +
		"UR  - https://doi.org/10.1/fromurl\n" +
		"ER  - \n"

	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if got[0].DOI != "10.1/explicit" {
		t.Errorf("DOI = %q, want %q", got[0].DOI, "10.1/explicit")
	}
}

func TestParsePagesCombinesStartAndEnd(t *testing.T) {
	input := "TY  - JOUR\nTI  - Paged\nSP  - 100\nEP  - 110\nER  - \n"
	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if !strings.Contains(got[0].Pages, "100") || !strings.Contains(got[0].Pages, "110") {
		t.Errorf("Pages = %q, want both 100 and 110", got[0].Pages)
	}
}

func TestParseTitlePriorityTIOverT1(t *testing.T) {
	input := "TY  - JOUR\nT1  - Secondary Title\nTI  - Primary Title\nER  - \n"
	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if got[0].Title != "Primary Title" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Primary Title")
	}
}

func TestParseMultipleRecords(t *testing.T) {
	input := "TY  - JOUR\nTI  - First\nER  - \n" +
		"TY  - BOOK\nTI  - Second\nER  - \n"
	f := Format{}
	got, perr := f.Parse(input)
	if perr != nil {
		t.Fatalf("Parse returned error: %v", perr)
	}
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	if got[0].Title != "First" || got[1].Title != "Second" {
		t.Errorf("unexpected titles: %q, %q", got[0].Title, got[1].Title)
	}
}

func TestParseInvalidYearIsBadValue(t *testing.T) {
	input := "TY  - JOUR\nTI  - Bad Year\nPY  - 21AB\nER  - \n"
	f := Format{}
	_, perr := f.Parse(input)
	if perr == nil {
		t.Fatal("expected a BadValue error for a malformed year")
	}
	if perr.Err.Kind != citation.ErrBadValue {
		t.Errorf("Kind = %v, want ErrBadValue", perr.Err.Kind)
	}
}
