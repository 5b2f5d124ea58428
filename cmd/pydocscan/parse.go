package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ludo-technologies/pydocscan/app"
	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/service"
)

// requestOptions holds the flags shared by parse and check.
type requestOptions struct {
	configFile      string
	format          string
	dedent          bool
	maxItems        int
	requireSummary  bool
	recursive       bool
	includePatterns []string
	excludePatterns []string
	jobs            int
	timeout         int
}

func (o *requestOptions) bind(cmd *cobra.Command) {
	defaults := domain.ParseRequest{
		Dedent:          domain.DefaultDedent,
		MaxItems:        domain.DefaultMaxItems,
		Recursive:       true,
		IncludePatterns: domain.DefaultIncludePatterns(),
		ExcludePatterns: domain.DefaultExcludePatterns(),
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.configFile, "config", "c", "", "Configuration file path")
	flags.StringVarP(&o.format, "format", "f", "", "Output format: text, json, yaml")
	flags.BoolVar(&o.dedent, "dedent", defaults.Dedent, "Strip the common indentation margin before parsing")
	flags.IntVar(&o.maxItems, "max-items", defaults.MaxItems, "Parser work budget in chart items (0 = unbounded)")
	flags.BoolVar(&o.requireSummary, "require-summary", false, "Report docstrings without a summary line")
	flags.BoolVarP(&o.recursive, "recursive", "r", defaults.Recursive, "Descend into subdirectories")
	flags.StringSliceVar(&o.includePatterns, "include", defaults.IncludePatterns, "Glob patterns of docstring files to include")
	flags.StringSliceVar(&o.excludePatterns, "exclude", defaults.ExcludePatterns, "Glob patterns of files to exclude")
	flags.IntVarP(&o.jobs, "jobs", "j", domain.DefaultMaxGoroutines, "Maximum files parsed concurrently")
	flags.IntVar(&o.timeout, "timeout", domain.DefaultTimeoutSeconds, "Overall timeout in seconds")
}

// request builds the parse request for args. Only flags the user set end
// up overriding configuration file values.
func (o *requestOptions) request(cmd *cobra.Command, args []string) domain.ParseRequest {
	if len(args) == 0 {
		args = []string{"."}
	}
	req := domain.ParseRequest{
		Paths:           args,
		OutputFormat:    domain.OutputFormat(o.format),
		OutputWriter:    cmd.OutOrStdout(),
		Dedent:          o.dedent,
		MaxItems:        o.maxItems,
		RequireSummary:  o.requireSummary,
		ConfigPath:      o.configFile,
		ExplicitFlags:   GetExplicitFlags(cmd),
		Recursive:       o.recursive,
		IncludePatterns: o.includePatterns,
		ExcludePatterns: o.excludePatterns,
		MaxConcurrency:  o.jobs,
		TimeoutSeconds:  o.timeout,
	}
	if len(args) == 1 && args[0] == domain.StdinPath {
		req.Input = cmd.InOrStdin()
	}
	return req
}

// reportFailure prints the categorized error and its recovery suggestions.
func reportFailure(w io.Writer, err error) {
	categorizer := service.NewErrorCategorizer()
	categorized := categorizer.Categorize(err)
	if categorized == nil {
		return
	}
	fmt.Fprintf(w, "%s (%s)\n", categorized.Message, categorized.Category)
	for _, s := range categorizer.GetRecoverySuggestions(categorized.Category) {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// ParseCommand represents the parse command
type ParseCommand struct {
	requestOptions

	outputPath  string
	showDetails bool
	noProgress  bool
}

// NewParseCommand creates a new parse command
func NewParseCommand() *ParseCommand {
	return &ParseCommand{}
}

// CreateCobraCommand creates the cobra command for parsing docstrings
func (p *ParseCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [paths...|-]",
		Short: "Parse docstring files and print the structured result",
		Long: `Parse Google-style docstring bodies and report their structure.

Each path may be a docstring file or a directory searched for files matching
the include patterns. Use "-" to read a single docstring from stdin.

The output format is taken from --format, then from the extension of
--output (.json, .yaml, .yml), then from the configuration file.

Examples:
  # Parse every docstring file under docs/
  pydocscan parse docs/

  # Parse stdin and print JSON
  echo "Summary line." | pydocscan parse --format json -

  # Write a YAML report
  pydocscan parse --output report.yaml docs/`,
		Args: cobra.ArbitraryArgs,
		RunE: p.runParse,
	}

	p.requestOptions.bind(cmd)
	cmd.Flags().StringVarP(&p.outputPath, "output", "o", "", "Write the report to this file")
	cmd.Flags().BoolVarP(&p.showDetails, "details", "d", false, "Include the rendered docstring of every parsed file")
	cmd.Flags().BoolVar(&p.noProgress, "no-progress", false, "Disable the progress bar")

	return cmd
}

func (p *ParseCommand) runParse(cmd *cobra.Command, args []string) error {
	req := p.request(cmd, args)
	req.OutputPath = p.outputPath
	req.ShowDetails = p.showDetails

	if p.format == "" && p.outputPath != "" {
		format, err := service.NewOutputFormatResolver().Determine("", p.outputPath, "")
		if err != nil {
			return err
		}
		req.OutputFormat = format
		req.ExplicitFlags["format"] = true
	}

	fileReader := service.NewFileReader()
	if err := fileReader.ValidatePaths(req.Paths); err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &exitError{code: exitFailure, err: err}
	}

	formatter := service.NewOutputFormatter()
	formatter.SetColor(p.outputPath == "" && isTerminal(cmd.OutOrStdout()))

	var progress domain.ProgressManager = service.NoOpProgressManager{}
	if !p.noProgress && req.Input == nil {
		progress = service.NewProgressManager()
	}
	defer progress.Close()

	useCase, err := app.NewParseUseCaseBuilder().
		WithService(service.NewDocstringService(fileReader, progress)).
		WithFileReader(fileReader).
		WithFormatter(formatter).
		WithConfigLoader(service.NewConfigurationLoader()).
		WithReportWriter(service.NewFileOutputWriter(cmd.ErrOrStderr())).
		Build()
	if err != nil {
		return err
	}

	response, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), err)
		return &exitError{code: exitFailure, err: err}
	}
	if response.Summary.FailedFiles > 0 {
		return &exitError{
			code: exitIssues,
			err:  fmt.Errorf("%d of %d file(s) failed to parse", response.Summary.FailedFiles, response.Summary.TotalFiles),
		}
	}
	return nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewParseCmd creates and returns the parse cobra command
func NewParseCmd() *cobra.Command {
	return NewParseCommand().CreateCobraCommand()
}
