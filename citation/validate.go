package citation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/citeparse/citeparse/helpers"
)

// ValidationError represents a single advisory validation failure or
// warning against an already-parsed Citation. It is distinct from
// ValueError: ValueError is raised by a parser while building a Citation;
// ValidationError is raised afterward, by a caller that opts into checking
// a Citation's overall shape.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult collects every ValidationError found against one
// Citation, split into fatal Errors and advisory Warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid reports whether the Citation has no fatal errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings reports whether the Citation has any advisory warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Error returns a combined error message, or nil if the result is valid.
func (r *ValidationResult) Error() error {
	if r.IsValid() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

// ValidationOptions selects which advisory checks Validate runs. Validate
// never re-derives whether bibliographic facts are *correct* — a citation
// with a title, a DOI, and a plausible year always passes the default
// checks — it only flags
// structural gaps a caller may want to know about before using the
// Citation downstream (e.g. before indexing it).
type ValidationOptions struct {
	RequireIdentifier bool
	RequireAuthor     bool
	RequireDate       bool
	ValidateDOIFormat bool
	ValidateISSNFormat bool
	ValidateDate      bool
}

// DefaultValidationOptions mirrors what DetectAndParse's callers typically
// want: format checks on, no additional presence requirements beyond what
// the parsers themselves already enforce on Title.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		ValidateDOIFormat: true,
		ValidateISSNFormat: true,
		ValidateDate:      true,
	}
}

// StrictValidationOptions additionally requires an identifier, an author,
// and a date.
func StrictValidationOptions() ValidationOptions {
	return ValidationOptions{
		RequireIdentifier:  true,
		RequireAuthor:      true,
		RequireDate:        true,
		ValidateDOIFormat:  true,
		ValidateISSNFormat: true,
		ValidateDate:       true,
	}
}

var issnFormatPattern = regexp.MustCompile(`(?i)^\d{4}-\d{3}[\dX]$`)

// Validate checks c against opts and returns the accumulated result. It
// never modifies c.
func Validate(c *Citation, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{}

	if strings.TrimSpace(c.Title) == "" {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "title",
			Code:    "required",
			Message: "title is required",
		})
	}

	if opts.RequireIdentifier && c.DOI == "" && c.PMID == "" && c.PMCID == "" && len(c.ISSN) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "identifiers",
			Code:    "required",
			Message: "at least one identifier (doi, pmid, pmcid, issn) is required",
		})
	}

	if opts.RequireAuthor && len(c.Authors) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "authors",
			Code:    "required",
			Message: "at least one author is required",
		})
	}

	if opts.RequireDate && c.Date == nil {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "date",
			Code:    "required",
			Message: "a publication date is required",
		})
	}

	if opts.ValidateDOIFormat && c.DOI != "" && !helpers.IsValidDOI(c.DOI) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "doi",
			Code:    "invalid_format",
			Message: fmt.Sprintf("invalid DOI format: %q (expected 10.XXXX/...)", c.DOI),
		})
	}

	if opts.ValidateISSNFormat {
		for i, issn := range c.ISSN {
			if !issnFormatPattern.MatchString(strings.TrimSpace(issn)) {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   fmt.Sprintf("issn[%d]", i),
					Code:    "invalid_format",
					Message: fmt.Sprintf("ISSN %q does not look like NNNN-NNNC", issn),
				})
			}
		}
	}

	if opts.ValidateDate && c.Date != nil {
		result.Errors = append(result.Errors, validateDate(c.Date)...)
	}

	for i, a := range c.Authors {
		if strings.TrimSpace(a.Name) == "" {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("authors[%d].name", i),
				Code:    "required",
				Message: "author name is empty",
			})
		}
	}

	return result
}

func validateDate(d *Date) []ValidationError {
	var errs []ValidationError

	currentYear := time.Now().Year()
	if d.Year < 1000 || d.Year > currentYear+10 {
		errs = append(errs, ValidationError{
			Field:   "date.year",
			Code:    "out_of_range",
			Message: fmt.Sprintf("year %d is outside reasonable range (1000-%d)", d.Year, currentYear+10),
		})
	}
	if d.Month != nil && (*d.Month < 1 || *d.Month > 12) {
		errs = append(errs, ValidationError{
			Field:   "date.month",
			Code:    "out_of_range",
			Message: fmt.Sprintf("month %d is invalid (must be 1-12)", *d.Month),
		})
	}
	if d.Day != nil && (*d.Day < 1 || *d.Day > 31) {
		errs = append(errs, ValidationError{
			Field:   "date.day",
			Code:    "out_of_range",
			Message: fmt.Sprintf("day %d is invalid (must be 1-31)", *d.Day),
		})
	}
	return errs
}
