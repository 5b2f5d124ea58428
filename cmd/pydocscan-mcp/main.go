package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/pydocscan/internal/config"
	"github.com/ludo-technologies/pydocscan/internal/version"
	"github.com/ludo-technologies/pydocscan/mcp"
)

const serverName = "pydocscan"

func main() {
	// MCP uses stdout for JSON-RPC
	logrus.SetOutput(os.Stderr)
	if os.Getenv("PYDOCSCAN_DEBUG") != "" {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("pkg", "main")

	configPath := os.Getenv("PYDOCSCAN_CONFIG")
	cfg, err := config.LoadConfigWithTarget(configPath, ".")
	if err != nil {
		log.WithError(err).Warn("using default configuration")
		cfg = config.DefaultConfig()
	}

	server := mcpserver.NewMCPServer(
		serverName,
		version.Short(),
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
	)
	mcp.RegisterTools(server, mcp.NewHandlerSet(mcp.NewDependencies(cfg, configPath)))

	log.WithField("version", version.Short()).Info("server ready: parse_docstring, check_docstrings")

	if err := mcpserver.ServeStdio(server); err != nil {
		log.WithError(err).Error("server error")
		os.Exit(1)
	}
}
