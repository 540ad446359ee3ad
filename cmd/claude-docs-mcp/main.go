package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/local-mcps/claude-docs-mcp/config"
	"github.com/local-mcps/claude-docs-mcp/internal/common"
	"github.com/local-mcps/claude-docs-mcp/internal/docs"
	"github.com/local-mcps/claude-docs-mcp/internal/web"
	"github.com/local-mcps/claude-docs-mcp/pkg/mcp"
)

const (
	serverName = "claude-docs-mcp"
	version    = "1.0.0"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config         string           `short:"c" type:"path" help:"Path to configuration file"`
	EnvFile        string           `default:".env" help:"Environment file loaded before configuration"`
	LogLevel       string           `help:"Log level (debug, info, warn, error)"`
	LogFormat      string           `help:"Log format (json, text)"`
	BaseURL        string           `name:"base-url" help:"Documentation base URL"`
	TimeoutSeconds int              `help:"Per-request fetch timeout in seconds"`
	Concurrency    int              `help:"Concurrent page fetches during search"`
	ListPages      bool             `help:"Print the known page ids and exit"`
	Version        kong.VersionFlag `short:"v" help:"Print version and exit"`
}

// Run parses args, wires the documentation server and serves requests from
// stdin until the input ends or ctx is cancelled.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name(serverName),
		kong.Description("Serve Claude Code documentation over a line-delimited JSON protocol"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"version": version},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.Version {
		return nil
	}

	if cli.EnvFile != "" {
		if err := godotenv.Load(cli.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", cli.EnvFile, err)
		}
	}

	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cli.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	registry, err := docs.NewRegistryFromConfig(&cfg.Docs)
	if err != nil {
		return fmt.Errorf("invalid page registry: %w", err)
	}

	if cli.ListPages {
		for _, id := range registry.IDs() {
			fmt.Fprintln(stdout, id)
		}
		return nil
	}

	logger := common.NewLogger(
		common.ParseLogLevel(cfg.Global.LogLevel),
		common.ParseLogFormat(cfg.Global.LogFormat),
		stderr,
		serverName,
	)

	server := mcp.NewServer(serverName, version)
	server.SetIO(stdin, stdout)
	server.SetLogger(logger)

	docsServer := docs.NewServer(registry, web.NewClient(&cfg.Web), &cfg.Search, logger.WithField("component", "docs"))
	docsServer.RegisterTools(server)

	logger.WithFields(map[string]interface{}{
		"base_url": registry.BaseURL(),
		"pages":    registry.Len(),
	}).Info("registered documentation tools")

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyOverrides lets explicit flags win over file and environment settings.
func (c *CLI) applyOverrides(cfg *config.Config) {
	if c.LogLevel != "" {
		cfg.Global.LogLevel = c.LogLevel
	}
	if c.LogFormat != "" {
		cfg.Global.LogFormat = c.LogFormat
	}
	if c.BaseURL != "" {
		cfg.Docs.BaseURL = c.BaseURL
	}
	if c.TimeoutSeconds != 0 {
		cfg.Web.TimeoutSeconds = c.TimeoutSeconds
	}
	if c.Concurrency != 0 {
		cfg.Search.Concurrency = c.Concurrency
	}
}
