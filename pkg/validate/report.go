package validate

import (
	"fmt"
	"io"
	"sort"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

func (s Severity) IsValid() bool {
	return s == SeverityError || s == SeverityWarning
}

// Code identifies the check that produced an issue.
type Code string

const (
	CodeParse               Code = "parse"
	CodeDuplicateID         Code = "duplicate-id"
	CodeMissingField        Code = "missing-field"
	CodeRotationNotUnit     Code = "rotation-not-unit"
	CodePropertyValue       Code = "property-value"
	CodeSpriteAtlas         Code = "sprite-atlas"
	CodeSpriteAnimation     Code = "sprite-animation"
	CodeUnresolvedReference Code = "unresolved-reference"
	CodeReferenceKind       Code = "reference-kind"
	CodeRule                Code = "rule"
)

type Issue struct {
	Code     Code     `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Entry    string   `json:"entry,omitempty"`
	Rule     string   `json:"rule,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
}

// Report holds every issue found in one descriptor, ordered by position.
type Report struct {
	File   string  `json:"file"`
	Issues []Issue `json:"issues"`

	// Cached is set when the report was served from the report cache.
	Cached bool `json:"cached,omitempty"`
}

func (r *Report) add(issue Issue) {
	r.Issues = append(r.Issues, issue)
}

func (r *Report) sort() {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		a, b := r.Issues[i], r.Issues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Count returns the number of issues with severity sev.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Codes lists the issue codes in report order. Mostly useful in tests.
func (r *Report) Codes() []Code {
	codes := make([]Code, 0, len(r.Issues))
	for _, issue := range r.Issues {
		codes = append(codes, issue.Code)
	}
	return codes
}

// WriteText prints one "file:line:col: severity: message [code]" line per issue.
func (r *Report) WriteText(w io.Writer) error {
	for _, issue := range r.Issues {
		loc := r.File
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d:%d", r.File, issue.Line, issue.Column)
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s [%s]\n", loc, issue.Severity, issue.Message, issue.Code); err != nil {
			return err
		}
	}
	return nil
}
