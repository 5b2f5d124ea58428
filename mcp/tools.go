package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the pydocscan MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	s.AddTool(mcp.NewTool("parse_docstring",
		mcp.WithDescription("Parse a Google-style Python docstring body into a structured JSON record"),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Docstring body without the surrounding quotes")),
		mcp.WithBoolean("dedent",
			mcp.Description("Strip the common indentation margin first (default: true)")),
		mcp.WithNumber("max_items",
			mcp.Description("Parser work budget in chart items, 0 = unbounded")),
	), h.HandleParseDocstring)

	s.AddTool(mcp.NewTool("check_docstrings",
		mcp.WithDescription("Check that every docstring file under a path parses and report a summary"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Docstring file or directory to check")),
		mcp.WithBoolean("require_summary",
			mcp.Description("Report docstrings without a summary line (default: false)")),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively check directories (default: true)")),
	), h.HandleCheckDocstrings)
}
