// Package demo runs a fixed table of example packages through the sorter
// and prints a pass/fail report. It is presentation only.
package demo

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/muliwe/package-sorter/internal/sorting"
)

// Case is one classification example with its expected stack
type Case struct {
	Width, Height, Length, Mass float64
	Want                        sorting.Stack
	Description                 string
}

// ErrorCase is an input that must be refused
type ErrorCase struct {
	Values      [4]any
	Description string
}

// Cases are the canned classification examples
var Cases = []Case{
	{10, 10, 10, 5, sorting.StackStandard, "Standard package"},
	{10, 10, 10, 25, sorting.StackSpecial, "Heavy package (not bulky)"},
	{100, 100, 100, 5, sorting.StackSpecial, "Bulky by volume (not heavy)"},
	{160, 10, 10, 5, sorting.StackSpecial, "Bulky by dimension (not heavy)"},
	{100, 100, 100, 25, sorting.StackRejected, "Heavy and bulky by volume"},
	{160, 10, 10, 25, sorting.StackRejected, "Heavy and bulky by dimension"},
	{149, 149, 45, 19, sorting.StackStandard, "Edge case: just under thresholds"},
	{150, 10, 10, 19, sorting.StackSpecial, "Edge case: exactly at dimension threshold"},
	{100, 100, 100, 19, sorting.StackSpecial, "Edge case: exactly at volume threshold"},
	{10, 10, 10, 20, sorting.StackSpecial, "Edge case: exactly at mass threshold"},
}

// ErrorCases are the canned invalid inputs
var ErrorCases = []ErrorCase{
	{[4]any{-1, 10, 10, 5}, "Negative width"},
	{[4]any{10, 0, 10, 5}, "Zero height"},
	{[4]any{"abc", 10, 10, 5}, "Non-numeric width"},
	{[4]any{10, 10, 10, -5}, "Negative mass"},
}

// Report summarizes a demonstration run
type Report struct {
	Passed      int
	Total       int
	ErrorPassed int
	ErrorTotal  int
}

// OK reports whether every case passed
func (r Report) OK() bool {
	return r.Passed == r.Total && r.ErrorPassed == r.ErrorTotal
}

// Run evaluates Cases and ErrorCases, writing tables to w
func Run(w io.Writer) (Report, error) {
	var report Report

	rows := pterm.TableData{{"#", "Status", "Description", "Expected", "Got"}}
	for i, c := range Cases {
		report.Total++
		got, err := sorting.Sort(c.Width, c.Height, c.Length, c.Mass)

		status := "PASS"
		gotText := got.String()
		switch {
		case err != nil:
			status = "ERROR"
			gotText = err.Error()
		case got != c.Want:
			status = "FAIL"
		default:
			report.Passed++
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), status, c.Description, c.Want.String(), gotText})
	}

	if _, err := fmt.Fprintln(w, "Package Sorting - Test Results"); err != nil {
		return report, err
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).WithWriter(w).Render(); err != nil {
		return report, err
	}
	if _, err := fmt.Fprintf(w, "Results: %d/%d tests passed\n\n", report.Passed, report.Total); err != nil {
		return report, err
	}

	errRows := pterm.TableData{{"Status", "Description", "Error"}}
	for _, c := range ErrorCases {
		report.ErrorTotal++
		_, err := sorting.SortValues(c.Values[0], c.Values[1], c.Values[2], c.Values[3])
		if err != nil && sorting.ErrorKind(err) != "" {
			report.ErrorPassed++
			errRows = append(errRows, []string{"PASS", c.Description, sorting.ErrorKind(err)})
		} else {
			errRows = append(errRows, []string{"FAIL", c.Description, "should have been refused"})
		}
	}

	if _, err := fmt.Fprintln(w, "Error Handling Tests"); err != nil {
		return report, err
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(errRows).WithWriter(w).Render(); err != nil {
		return report, err
	}
	_, err := fmt.Fprintf(w, "Results: %d/%d error cases refused\n", report.ErrorPassed, report.ErrorTotal)
	return report, err
}
