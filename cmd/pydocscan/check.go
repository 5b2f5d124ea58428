package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/pydocscan/app"
	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/service"
)

// CheckCommand represents the CI-oriented check command
type CheckCommand struct {
	requestOptions

	quiet bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{}
}

// CreateCobraCommand creates the cobra command for checking docstrings
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check that docstring files parse",
		Long: `Check docstring files for CI pipelines.

Every file that fails to parse is reported as "path:line:column: kind: message".
With --require-summary, docstrings without a summary line are reported too.

Exit codes:
  0: No issues found
  1: Issues found (see output for details)
  2: Check failed (invalid input, missing files, bad configuration)

Examples:
  # Check the current directory
  pydocscan check

  # Require a summary line and print machine-readable results
  pydocscan check --require-summary --format json docs/`,
		Args: cobra.ArbitraryArgs,
		RunE: c.runCheck,
	}

	c.requestOptions.bind(cmd)
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Suppress output unless issues are found")

	return cmd
}

func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	req := c.request(cmd, args)

	fileReader := service.NewFileReader()
	if err := fileReader.ValidatePaths(req.Paths); err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &exitError{code: exitFailure, err: err}
	}

	useCase, err := app.NewCheckUseCaseBuilder().
		WithService(service.NewDocstringService(fileReader, service.NoOpProgressManager{})).
		WithFileReader(fileReader).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
	if err != nil {
		return err
	}

	result, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &exitError{code: exitFailure, err: err}
	}

	if !result.Passed() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d issue(s) in %d file(s)\n", result.IssueCount, result.Response.Summary.TotalFiles)
		return &exitError{
			code: exitIssues,
			err:  domain.NewCheckError(fmt.Sprintf("found %d issue(s)", result.IssueCount), nil),
		}
	}

	if !c.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Checked %d file(s): no issues\n", result.Response.Summary.TotalFiles)
	}
	return nil
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	return NewCheckCommand().CreateCobraCommand()
}
