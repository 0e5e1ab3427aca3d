// Package report renders probe outcomes as a JUnit-style XML document
// for the external test harness. One testcase per outcome; properties
// are hoisted to the suite, first-seen key wins.
package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hamed0406/resourceprobe/internal/domain"
)

type testsuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []testsuite `xml:"testsuite"`
}

type testsuite struct {
	Name      string      `xml:"name,attr"`
	Timestamp string      `xml:"timestamp,attr"`
	Tests     int         `xml:"tests,attr"`
	Failures  int         `xml:"failures,attr"`
	Errors    int         `xml:"errors,attr"`
	Skipped   int         `xml:"skipped,attr"`
	Time      string      `xml:"time,attr"`
	Props     *properties `xml:"properties,omitempty"`
	Cases     []testcase  `xml:"testcase"`
}

type properties struct {
	Props []property `xml:"property"`
}

type property struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type testcase struct {
	Name      string   `xml:"name,attr"`
	Classname string   `xml:"classname,attr"`
	Time      string   `xml:"time,attr"`
	Skipped   *result  `xml:"skipped,omitempty"`
	Failure   *result  `xml:"failure,omitempty"`
	Error     *result  `xml:"error,omitempty"`
	SystemOut *console `xml:"system-out,omitempty"`
	SystemErr *console `xml:"system-err,omitempty"`
}

type result struct {
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

type console struct {
	Text string `xml:",chardata"`
}

// Path is where the harness expects the report for a given suite.
func Path(dir, suiteName string) string {
	return filepath.Join(dir, suiteName+"_report.xml")
}

// Write renders the outcomes and writes them to Path(dir, suiteName),
// creating the directory if needed.
func Write(dir, suiteName string, outcomes []domain.Outcome) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(Path(dir, suiteName))
	if err != nil {
		return err
	}
	if err := Render(f, suiteName, outcomes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes the XML document for one suite to w.
func Render(w io.Writer, suiteName string, outcomes []domain.Outcome) error {
	suite := testsuite{
		Name:      suiteName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	seen := make(map[string]bool)
	var props []property
	total := 0.0

	for _, o := range outcomes {
		total += o.Duration
		suite.Tests++

		for _, p := range o.Properties {
			if !seen[p.Key] {
				seen[p.Key] = true
				props = append(props, property{Name: p.Key, Value: p.Value})
			}
		}

		tc := testcase{
			Name:      o.CaseName,
			Classname: suiteName,
			Time:      seconds(o.Duration),
		}

		switch o.Status {
		case domain.StatusSkipped:
			suite.Skipped++
			tc.Skipped = &result{Message: o.SkipReason}
		case domain.StatusError:
			suite.Errors++
			tc.Error = &result{Message: "Unexpected error", Text: o.ErrorDetail}
		case domain.StatusFail:
			suite.Failures++
			tc.Failure = &result{Message: o.FailureMessage, Text: o.FailureDetail}
		}

		if o.Status != domain.StatusSkipped {
			if o.Stdout != "" {
				tc.SystemOut = &console{Text: o.Stdout}
			}
			if o.Stderr != "" {
				tc.SystemErr = &console{Text: o.Stderr}
			}
		}

		suite.Cases = append(suite.Cases, tc)
	}

	if len(props) > 0 {
		suite.Props = &properties{Props: props}
	}
	suite.Time = seconds(total)

	doc := testsuites{Suites: []testsuite{suite}}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func seconds(s float64) string {
	return fmt.Sprintf("%.6f", s)
}
