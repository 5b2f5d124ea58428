package mcp

import (
	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/config"
	"github.com/ludo-technologies/pydocscan/service"
)

func NewTestDependencies(fr domain.FileReader, cfg *config.Config, path string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		fileReader: fr,
		service:    service.NewDocstringService(fr, service.NoOpProgressManager{}),
		config:     cfg,
		configPath: path,
	}
}
