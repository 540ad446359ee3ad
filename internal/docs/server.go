package docs

import (
	"context"

	"github.com/local-mcps/claude-docs-mcp/config"
	"github.com/local-mcps/claude-docs-mcp/internal/common"
	"github.com/local-mcps/claude-docs-mcp/pkg/mcp"
)

// Fetcher retrieves raw markup for a URL.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

type Server struct {
	registry *Registry
	fetcher  Fetcher
	config   *config.SearchConfig
	logger   *common.Logger
}

func NewServer(registry *Registry, fetcher Fetcher, cfg *config.SearchConfig, logger *common.Logger) *Server {
	if logger == nil {
		logger = common.NopLogger()
	}
	return &Server{
		registry: registry,
		fetcher:  fetcher,
		config:   cfg,
		logger:   logger,
	}
}

func (s *Server) RegisterTools(server *mcp.Server) {
	server.RegisterTool(s.fetchDocsTool())
	server.RegisterTool(s.searchDocsTool())
}
