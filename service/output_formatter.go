package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/docstring"
)

// OutputFormatterImpl implements the OutputFormatter interface
type OutputFormatterImpl struct {
	showDetails bool
	color       bool
}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// SetShowDetails makes the text report include each parsed docstring in
// canonical form.
func (f *OutputFormatterImpl) SetShowDetails(show bool) { f.showDetails = show }

// SetColor enables ANSI colors in the text report.
func (f *OutputFormatterImpl) SetColor(color bool) { f.color = color }

// Format formats the parse response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.ParseResponse, format domain.OutputFormat) (string, error) {
	switch format {
	case domain.OutputFormatText, "":
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.ParseResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	}

	output, err := f.Format(response, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func (f *OutputFormatterImpl) formatText(response *domain.ParseResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.color)

	builder.WriteString(utils.FormatMainHeader("Docstring Parse Report"))

	builder.WriteString(utils.FormatSectionHeader("Summary"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total Files", response.Summary.TotalFiles))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Parsed", response.Summary.ParsedFiles))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Failed", response.Summary.FailedFiles))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Issues", response.Summary.IssueCount))
	builder.WriteString(utils.FormatSectionSeparator())

	if len(response.Summary.SectionCounts) > 0 {
		builder.WriteString(utils.FormatSectionHeader("Sections"))
		for s := docstring.SectionSummary; s <= docstring.SectionExamples; s++ {
			if n, ok := response.Summary.SectionCounts[s.String()]; ok {
				builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, s.String(), n))
			}
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	if len(response.Files) > 0 {
		builder.WriteString(utils.FormatSectionHeader("Files"))
		for _, file := range response.Files {
			f.writeFileResult(&builder, utils, file)
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	builder.WriteString(utils.FormatListSection("Warnings", response.Warnings))
	return builder.String()
}

func (f *OutputFormatterImpl) writeFileResult(b *strings.Builder, utils *FormatUtils, file domain.FileResult) {
	pad := strings.Repeat(" ", SectionPadding)
	detail := strings.Repeat(" ", ItemPadding)

	switch {
	case file.Failure != nil:
		location := file.FilePath
		if file.Failure.Line > 0 {
			location = fmt.Sprintf("%s:%d:%d", file.FilePath, file.Failure.Line, file.Failure.Column)
		}
		fmt.Fprintf(b, "%s%s %s  %s: %s\n", pad, utils.FormatStatus(false), location, file.Failure.Kind, file.Failure.Message)
	default:
		var names []string
		for _, s := range FromRecord(file.Docstring).Sections() {
			names = append(names, s.String())
		}
		sections := "empty"
		if len(names) > 0 {
			sections = strings.Join(names, ", ")
		}
		fmt.Fprintf(b, "%s%s %s  (%s)\n", pad, utils.FormatStatus(len(file.Issues) == 0), file.FilePath, sections)
		for _, issue := range file.Issues {
			fmt.Fprintf(b, "%s%s\n", detail, issue)
		}
		if f.showDetails {
			if text := FromRecord(file.Docstring).Format(); text != "" {
				b.WriteString(IndentBlock(text, ItemPadding))
			}
		}
	}
}
