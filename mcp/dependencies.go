package mcp

import (
	"github.com/ludo-technologies/pydocscan/app"
	"github.com/ludo-technologies/pydocscan/domain"
	"github.com/ludo-technologies/pydocscan/internal/config"
	"github.com/ludo-technologies/pydocscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	fileReader domain.FileReader
	service    domain.DocstringService
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	fileReader := service.NewFileReader()
	return &Dependencies{
		fileReader: fileReader,
		service:    service.NewDocstringService(fileReader, service.NoOpProgressManager{}),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Service returns the docstring service shared by all tool calls.
func (d *Dependencies) Service() domain.DocstringService {
	return d.service
}

// BuildCheckUseCase assembles a fresh CheckUseCase with injected dependencies.
func (d *Dependencies) BuildCheckUseCase() (*app.CheckUseCase, error) {
	return app.NewCheckUseCaseBuilder().
		WithService(d.service).
		WithFileReader(d.fileReader).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewConfigurationLoader()).
		Build()
}
