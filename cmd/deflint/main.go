package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/sankaest/yii3-definitions/internal/cli"
	"github.com/sankaest/yii3-definitions/pkg/definitions"
)

func main() {
	var (
		verboseFlag = flag.Bool("verbose", false, "Enable detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and the final result")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <definition-files...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Definition Lint\n")
		fmt.Fprintf(os.Stderr, "Validates the structure of declarative definition files: key grammar,\n")
		fmt.Fprintf(os.Stderr, "required class entries and argument key consistency.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  definition-files   One or more YAML files, each a map of service id to definition\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s definitions.yaml                # Validate one file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --verbose app.yaml web.yaml     # Detailed output for multiple files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one definition file is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	reporter := cli.NewReporter(*verboseFlag, *quietFlag)

	valid, invalid := 0, 0
	for _, path := range args {
		v, i := lintFile(path, reporter)
		valid += v
		invalid += i
	}

	reporter.ReportSummary(valid, invalid)
	if invalid > 0 {
		os.Exit(1)
	}
}

// lintFile validates every definition in one YAML file and returns the
// valid/invalid counts
func lintFile(path string, reporter *cli.Reporter) (valid, invalid int) {
	data, err := os.ReadFile(path)
	if err != nil {
		reporter.ReportInvalid(path, fmt.Errorf("cannot read file: %w", err))
		return 0, 1
	}

	var file map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &file); err != nil {
		reporter.ReportInvalid(path, fmt.Errorf("cannot parse YAML: %w", err))
		return 0, 1
	}

	ids := make([]string, 0, len(file))
	for id := range file {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if err := lintDefinition(file[id]); err != nil {
			reporter.ReportInvalid(path+": "+id, err)
			invalid++
			continue
		}
		reporter.ReportValid(path + ": " + id)
		valid++
	}
	return valid, invalid
}

// lintDefinition runs the structural checks that do not need registered
// types: parseable keys, a class entry and unmixed argument keys, for the
// constructor and every method-call mutator
func lintDefinition(config map[string]interface{}) error {
	def, err := definitions.FromConfig(config)
	if err != nil {
		return err
	}
	if err := def.Arguments().Validate(); err != nil {
		return err
	}
	for _, m := range def.Mutators() {
		if m.IsProperty() {
			continue
		}
		if err := m.Arguments().Validate(); err != nil {
			return fmt.Errorf("in call to %s(): %w", m.Name(), err)
		}
	}
	return nil
}
