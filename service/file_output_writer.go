package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/pydocscan/domain"
)

// FileOutputWriter writes reports to a file or to a provided writer.
type FileOutputWriter struct {
	status io.Writer // where to print status messages (typically stderr)
}

// NewFileOutputWriter creates a new FileOutputWriter.
func NewFileOutputWriter(status io.Writer) *FileOutputWriter {
	if status == nil {
		status = os.Stderr
	}
	return &FileOutputWriter{status: status}
}

// Write implements domain.ReportWriter. With an output path the parent
// directory is created and the report location is announced on the status
// writer.
func (w *FileOutputWriter) Write(writer io.Writer, outputPath string, writeFunc func(io.Writer) error) (err error) {
	if outputPath == "" {
		if err := writeFunc(writer); err != nil {
			return domain.NewOutputError("failed to write output", err)
		}
		return nil
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to create output directory: %s", dir), err)
		}
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create output file: %s", outputPath), err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = domain.NewOutputError("failed to close output file", cerr)
		}
	}()

	if err := writeFunc(file); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}

	absPath, absErr := filepath.Abs(outputPath)
	if absErr != nil {
		absPath = outputPath
	}
	fmt.Fprintf(w.status, "Report written to %s\n", absPath)
	return nil
}
