package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/pydocscan/app"
	"github.com/ludo-technologies/pydocscan/domain"
)

var log = logrus.WithField("pkg", "mcp")

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// CheckResult is the JSON payload of the check_docstrings tool.
type CheckResult struct {
	Passed     bool                `json:"passed"`
	IssueCount int                 `json:"issue_count"`
	Summary    domain.ParseSummary `json:"summary"`
	Findings   []string            `json:"findings"`
}

// HandleParseDocstring handles the parse_docstring tool. A docstring that
// does not parse yields an error result carrying the structured failure.
func (h *HandlerSet) HandleParseDocstring(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	text, ok := args["text"].(string)
	if !ok {
		return mcp.NewToolResultError("text parameter is required and must be a string"), nil
	}

	req := *h.deps.Config().ToRequest()
	if d, ok := args["dedent"].(bool); ok {
		req.Dedent = d
	}
	if mi, ok := args["max_items"].(float64); ok {
		if mi < 0 {
			return mcp.NewToolResultError("max_items cannot be negative"), nil
		}
		req.MaxItems = int(mi)
	}

	result := h.deps.Service().ParseText(ctx, "docstring", text, req)
	log.WithField("ok", result.Failure == nil).Debug("parse_docstring")

	if result.Failure != nil {
		jsonData, err := json.Marshal(result.Failure)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
		}
		return mcp.NewToolResultError(string(jsonData)), nil
	}

	jsonData, err := json.Marshal(result.Docstring)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// HandleCheckDocstrings handles the check_docstrings tool
func (h *HandlerSet) HandleCheckDocstrings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	path, ok := args["path"].(string)
	if !ok {
		return mcp.NewToolResultError("path parameter is required and must be a string"), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return mcp.NewToolResultError(fmt.Sprintf("path does not exist: %s", path)), nil
	}

	// Tool arguments override the configuration file like CLI flags do.
	req := domain.ParseRequest{
		Paths:         []string{path},
		OutputFormat:  domain.OutputFormatJSON,
		OutputWriter:  io.Discard,
		ConfigPath:    h.deps.ConfigPath(),
		ExplicitFlags: map[string]bool{},
	}
	if rs, ok := args["require_summary"].(bool); ok {
		req.RequireSummary = rs
		req.ExplicitFlags["require-summary"] = true
	}
	if r, ok := args["recursive"].(bool); ok {
		req.Recursive = r
		req.ExplicitFlags["recursive"] = true
	}

	checkUC, err := h.deps.BuildCheckUseCase()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create checker: %v", err)), nil
	}

	result, err := checkUC.Execute(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	var findings bytes.Buffer
	if err := app.WriteFindings(&findings, result.Response); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render findings: %v", err)), nil
	}

	payload := CheckResult{
		Passed:     result.Passed(),
		IssueCount: result.IssueCount,
		Summary:    result.Response.Summary,
		Findings:   splitLines(findings.String()),
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
