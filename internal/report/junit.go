package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/canonical/charmhub-listing-review/internal/rules"
)

// JUnit XML schema types. One testcase per rule lets CI systems track
// individual listing criteria across runs.

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one charm's review run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr,omitempty"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one rule result.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed listing criterion.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a criterion as needing manual review or not
// applicable.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a Report to the JUnit XML structure.
func ConvertToJUnit(r *Report) *JUnitTestSuites {
	_, failed, unknownCount, notApplicable := r.Counts()
	skipped := unknownCount + notApplicable

	suite := JUnitTestSuite{
		Name:     r.CharmName,
		Tests:    len(r.Entries),
		Failures: failed,
		Skipped:  skipped,
		Properties: []JUnitProperty{
			{Name: "classification", Value: string(r.Classification)},
		},
	}
	if !r.GeneratedAt.IsZero() {
		suite.Timestamp = r.GeneratedAt.UTC().Format(time.RFC3339)
	}

	for _, e := range r.Entries {
		tc := JUnitTestCase{
			Name:      e.Result.RuleID,
			Classname: "listing." + r.CharmName,
		}
		switch e.Result.Status {
		case rules.StatusFail:
			tc.Failure = &JUnitFailure{
				Message: e.Result.Message,
				Type:    "ListingCriterionFailed",
				Body:    e.Result.Evidence,
			}
		case rules.StatusUnknown:
			msg := e.Result.Message
			if msg == "" {
				msg = "requires manual review"
			}
			tc.Skipped = &JUnitSkipped{Message: msg}
		case rules.StatusNotApplicable:
			tc.Skipped = &JUnitSkipped{Message: "not applicable"}
		}
		suite.TestCases = append(suite.TestCases, tc)
	}

	return &JUnitTestSuites{
		Tests:      len(r.Entries),
		Failures:   failed,
		Skipped:    skipped,
		TestSuites: []JUnitTestSuite{suite},
	}
}

// RenderJUnit writes the report as JUnit XML.
func RenderJUnit(w io.Writer, r *Report) error {
	suites := ConvertToJUnit(r)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suites); err != nil {
		return fmt.Errorf("encoding JUnit XML: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
