package e2e

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/pydocscan/domain"
)

const fullDocstring = `Fetch rows from a table.

    Rows are returned in storage order.

    Args:
        table (str): Name of the table.
        keys (Sequence[str]): Keys to fetch.
            Missing keys are skipped.

    Returns:
        dict: Mapping of key to row.

    Raises:
        IOError: When the table is offline.
`

func TestParseE2EText(t *testing.T) {
	testDir := t.TempDir()
	createDocstringFile(t, testDir, "fetch.txt", fullDocstring)

	stdout, stderr, code := runPydocscan(t, "", "parse", "--details", testDir)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	for _, want := range []string{"Docstring Parse Report", "fetch.txt", "Fetch rows from a table."} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output should contain %q\n%s", want, stdout)
		}
	}
}

func TestParseE2EJSONStdin(t *testing.T) {
	stdout, stderr, code := runPydocscan(t, fullDocstring, "parse", "--format", "json", "-")
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	var response domain.ParseResponse
	if err := json.Unmarshal([]byte(stdout), &response); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, stdout)
	}
	if len(response.Files) != 1 || response.Files[0].Docstring == nil {
		t.Fatalf("Expected one parsed docstring, got %+v", response.Files)
	}

	doc := response.Files[0].Docstring
	if doc.Summary != "Fetch rows from a table." {
		t.Errorf("Unexpected summary %q", doc.Summary)
	}
	if len(doc.Args) != 2 || doc.Args[1].Type != "Sequence[str]" {
		t.Errorf("Unexpected args %+v", doc.Args)
	}
	if doc.Args[1].Description != "Keys to fetch. Missing keys are skipped." {
		t.Errorf("Continuation lines should be joined, got %q", doc.Args[1].Description)
	}
	if doc.Returns == nil || doc.Returns.Type != "dict" {
		t.Errorf("Unexpected returns %+v", doc.Returns)
	}
	if len(doc.Raises) != 1 || doc.Raises[0].Type != "IOError" {
		t.Errorf("Unexpected raises %+v", doc.Raises)
	}
}

func TestParseE2EOutputFile(t *testing.T) {
	testDir := t.TempDir()
	createDocstringFile(t, testDir, "docs/fetch.docstring", fullDocstring)
	outputPath := filepath.Join(t.TempDir(), "out", "report.yaml")

	_, stderr, code := runPydocscan(t, "", "parse", "--output", outputPath, testDir)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "Report written to") {
		t.Errorf("Expected a status line on stderr, got %q", stderr)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Report file not written: %v", err)
	}
	if !strings.Contains(string(data), "summary: Fetch rows from a table.") {
		t.Errorf("YAML report should contain the summary\n%s", data)
	}
}

func TestParseE2EConfigDiscovery(t *testing.T) {
	testDir := t.TempDir()
	createDocstringFile(t, testDir, "notes/a.rst", "Summary line.\n")
	createDocstringFile(t, testDir, ".pydocscan.toml", "[input]\ninclude_patterns = [\"**/*.rst\"]\n\n[output]\nformat = \"json\"\n")

	stdout, stderr, code := runPydocscan(t, "", "parse", testDir)
	if code != 0 {
		t.Fatalf("Command failed with exit code %d\nStderr: %s", code, stderr)
	}

	var response domain.ParseResponse
	if err := json.Unmarshal([]byte(stdout), &response); err != nil {
		t.Fatalf("Configured format should be json: %v\n%s", err, stdout)
	}
	if response.Summary.TotalFiles != 1 {
		t.Errorf("Expected the .rst file to be collected, got %d files", response.Summary.TotalFiles)
	}
}

func TestParseE2ESyntaxError(t *testing.T) {
	testDir := t.TempDir()
	createDocstringFile(t, testDir, "bad.txt", "Summary.\n\nArgs\n    x: The x.\n")

	stdout, _, code := runPydocscan(t, "", "parse", testDir)
	if code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(stdout, "syntax") {
		t.Errorf("Report should name the syntax failure\n%s", stdout)
	}
}
