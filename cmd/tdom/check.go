package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/tdom/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:     "check [file...]",
	Aliases: []string{"c"},
	Short:   "Report structural issues in markup documents",
	Long: `Check tokenizes each document and reports structural problems a
browser would silently repair: duplicated attributes, closing tags on
void elements, mismatched or unclosed tags, and images without
alternative text. The exit code is non-zero when any error-severity
issue is found.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	checker := validation.New(newLogger())
	failed := false

	for _, name := range args {
		input, err := readInput(name)
		if err != nil {
			return fmt.Errorf("reading %s: %w", name, err)
		}
		issues := checker.Check(string(input))
		for _, issue := range issues {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, issue)
		}
		if validation.HasErrors(issues) {
			failed = true
		}
	}

	if failed {
		return fmt.Errorf("structural errors found")
	}
	return nil
}
