// Package cli provides user-friendly diagnostic output for the deflint tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/sankaest/yii3-definitions/pkg/definitions"
)

// Reporter provides user-friendly reporting for definition validation
type Reporter struct {
	verbose  bool
	quiet    bool
	output   io.Writer
	errorOut io.Writer
}

// NewReporter creates a new reporter
func NewReporter(verbose, quiet bool) *Reporter {
	return &Reporter{
		verbose:  verbose,
		quiet:    quiet,
		output:   os.Stdout,
		errorOut: os.Stderr,
	}
}

// ReportValid reports a definition that passed validation
func (r *Reporter) ReportValid(id string) {
	if r.quiet {
		return
	}
	green := color.New(color.FgGreen, color.Bold)
	green.Fprint(r.output, "ok ")
	fmt.Fprintf(r.output, "%s\n", id)
}

// ReportWarning provides user-friendly warning reporting
func (r *Reporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.errorOut, "! ")
	fmt.Fprintf(r.errorOut, "%s\n", message)
}

// ReportInvalid reports a definition that failed validation, with full
// context and suggestions when the error carries them
func (r *Reporter) ReportInvalid(id string, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(r.errorOut, "FAIL ")
	fmt.Fprintf(r.errorOut, "%s\n", id)

	var defErr definitions.DefinitionError
	if errors.As(err, &defErr) {
		r.reportDefinitionError(defErr)
	} else {
		fmt.Fprintf(r.errorOut, "  %s\n", err.Error())
	}
}

func (r *Reporter) reportDefinitionError(err definitions.DefinitionError) {
	fmt.Fprintf(r.errorOut, "  [%s] %s\n", err.ErrorCode(), err.Error())

	if r.verbose {
		if cause := err.Unwrap(); cause != nil {
			fmt.Fprintf(r.errorOut, "  underlying cause: %s\n", cause.Error())
		}
		for key, value := range err.Context() {
			fmt.Fprintf(r.errorOut, "  %s: %v\n", key, value)
		}
	}

	for _, suggestion := range err.Suggestions() {
		fmt.Fprintf(r.errorOut, "  hint: %s\n", suggestion)
	}
}

// ReportSummary prints the final pass/fail counts
func (r *Reporter) ReportSummary(valid, invalid int) {
	if invalid == 0 {
		if !r.quiet {
			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(r.output, "\n%d definition(s) valid\n", valid)
		}
		return
	}
	red := color.New(color.FgRed, color.Bold)
	red.Fprintf(r.errorOut, "\n%d of %d definition(s) invalid\n", invalid, valid+invalid)
}
