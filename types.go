package calcreport

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-calcreport/internal/notes"
)

// Field length limits applied by Report.Validate.
const (
	MaxTitleLength = 200
	MaxLabelLength = 200
	MaxValueLength = 100
	MaxUnitLength  = 40
	MaxNotesLength = notes.MaxLength
)

// Report is the payload rendered into a calculation report.
//
// FinalResults and Inputs are optional: nil means absent, a non-nil empty
// slice means present but empty. The distinction matters for Inputs, whose
// region is drawn whenever it is present.
type Report struct {
	Title        string       `yaml:"title" json:"title"`
	Subtitle     string       `yaml:"subtitle" json:"subtitle"` // carried, not rendered
	FinalResults []Result     `yaml:"finalResults,omitempty" json:"finalResults,omitempty"`
	Sections     []Section    `yaml:"sections" json:"sections"`
	Inputs       []InputGroup `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Notes        string       `yaml:"notes,omitempty" json:"notes,omitempty"` // Markdown
}

// Result is a labelled value with its unit.
type Result struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Unit  string `yaml:"unit" json:"unit"`
}

// Item is a Result that may be highlighted inside an output section.
type Item struct {
	Label         string `yaml:"label" json:"label"`
	Value         string `yaml:"value" json:"value"`
	Unit          string `yaml:"unit" json:"unit"`
	IsHighlighted bool   `yaml:"isHighlighted,omitempty" json:"isHighlighted,omitempty"`
}

// Section is a titled group of output items.
type Section struct {
	Title string `yaml:"title" json:"title"`
	Items []Item `yaml:"items" json:"items"`
}

// InputGroup is a titled group of the parameters a calculation used.
type InputGroup struct {
	Title string   `yaml:"title" json:"title"`
	Items []Result `yaml:"items" json:"items"`
}

// Validate checks the report before export. It rejects a blank title and
// fields longer than the limits above. A nil Sections slice is accepted and
// renders like an empty one.
func (r *Report) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyTitle
	}
	if err := checkLength("title", r.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := checkLength("subtitle", r.Subtitle, MaxTitleLength); err != nil {
		return err
	}
	if err := checkLength("notes", r.Notes, MaxNotesLength); err != nil {
		return err
	}

	for i, res := range r.FinalResults {
		if err := checkResult(fmt.Sprintf("finalResults[%d]", i), res.Label, res.Value, res.Unit); err != nil {
			return err
		}
	}
	for i, s := range r.Sections {
		if err := checkLength(fmt.Sprintf("sections[%d].title", i), s.Title, MaxTitleLength); err != nil {
			return err
		}
		for j, it := range s.Items {
			if err := checkResult(fmt.Sprintf("sections[%d].items[%d]", i, j), it.Label, it.Value, it.Unit); err != nil {
				return err
			}
		}
	}
	for i, g := range r.Inputs {
		if err := checkLength(fmt.Sprintf("inputs[%d].title", i), g.Title, MaxTitleLength); err != nil {
			return err
		}
		for j, it := range g.Items {
			if err := checkResult(fmt.Sprintf("inputs[%d].items[%d]", i, j), it.Label, it.Value, it.Unit); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkResult(path, label, value, unit string) error {
	if err := checkLength(path+".label", label, MaxLabelLength); err != nil {
		return err
	}
	if err := checkLength(path+".value", value, MaxValueLength); err != nil {
		return err
	}
	return checkLength(path+".unit", unit, MaxUnitLength)
}

func checkLength(field, value string, max int) error {
	if n := utf8.RuneCountInString(value); n > max {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, field, n, max)
	}
	return nil
}

// joinValue renders a value and its unit separated by one space. An empty
// unit leaves the value alone.
func joinValue(value, unit string) string {
	if unit == "" {
		return value
	}
	return value + " " + unit
}
