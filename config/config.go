package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/local-mcps/claude-docs-mcp/internal/common"
)

const DefaultBaseURL = "https://docs.anthropic.com/en/docs/claude-code/"

type Config struct {
	Global GlobalConfig `yaml:"global"`
	Docs   DocsConfig   `yaml:"docs"`
	Web    WebConfig    `yaml:"web"`
	Search SearchConfig `yaml:"search"`
}

type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type DocsConfig struct {
	BaseURL string       `yaml:"base_url"`
	Pages   []PageConfig `yaml:"pages"`
}

type PageConfig struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

type WebConfig struct {
	UserAgent            string  `yaml:"user_agent"`
	TimeoutSeconds       int     `yaml:"timeout_seconds"`
	MaxResponseSizeBytes int     `yaml:"max_response_size_bytes"`
	FollowRedirects      bool    `yaml:"follow_redirects"`
	MaxRedirects         int     `yaml:"max_redirects"`
	ProxyURL             string  `yaml:"proxy_url"`
	NoProxy              string  `yaml:"no_proxy"`
	RequestsPerSecond    float64 `yaml:"requests_per_second"`
}

type SearchConfig struct {
	Concurrency     int `yaml:"concurrency"`
	MaxExcerptChars int `yaml:"max_excerpt_chars"`
}

var defaultPageIDs = []string{
	"overview",
	"quickstart",
	"memory",
	"common-workflows",
	"ide-integrations",
	"mcp",
	"github-actions",
	"sdk",
	"troubleshooting",
	"third-party-integrations",
	"amazon-bedrock",
	"google-vertex-ai",
	"corporate-proxy",
	"llm-gateway",
	"devcontainer",
	"iam",
	"security",
	"monitoring-usage",
	"costs",
	"cli-reference",
	"interactive-mode",
	"slash-commands",
	"settings",
	"hooks",
}

// DefaultPages returns the Claude Code documentation pages, each served at a
// path equal to its id.
func DefaultPages() []PageConfig {
	pages := make([]PageConfig, len(defaultPageIDs))
	for i, id := range defaultPageIDs {
		pages[i] = PageConfig{ID: id, Path: id}
	}
	return pages
}

func DefaultConfig() *Config {
	return &Config{
		Global: GlobalConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
		Docs: DocsConfig{
			BaseURL: DefaultBaseURL,
			Pages:   DefaultPages(),
		},
		Web: WebConfig{
			UserAgent:            "claude-docs-mcp/1.0",
			TimeoutSeconds:       30,
			MaxResponseSizeBytes: 52428800,
			FollowRedirects:      true,
			MaxRedirects:         10,
		},
		Search: SearchConfig{
			Concurrency:     4,
			MaxExcerptChars: 1000,
		},
	}
}

// LoadConfig overlays the YAML file at path (or the per-user default) on
// DefaultConfig and then applies environment overrides. A missing file is
// not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err == nil {
			path = filepath.Join(configDir, "claude-docs-mcp", "config.yaml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case explicit && !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("CLAUDE_DOCS_LOG_LEVEL"); v != "" {
		config.Global.LogLevel = v
	}
	if v := os.Getenv("CLAUDE_DOCS_LOG_FORMAT"); v != "" {
		config.Global.LogFormat = v
	}
	if v := os.Getenv("CLAUDE_DOCS_BASE_URL"); v != "" {
		config.Docs.BaseURL = v
	}
	if v := os.Getenv("CLAUDE_DOCS_PROXY_URL"); v != "" {
		config.Web.ProxyURL = v
	}
	if v := os.Getenv("CLAUDE_DOCS_TIMEOUT_SECONDS"); v != "" {
		timeout, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CLAUDE_DOCS_TIMEOUT_SECONDS: %v", common.ErrInvalidConfig, err)
		}
		config.Web.TimeoutSeconds = timeout
	}
	if v := os.Getenv("CLAUDE_DOCS_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: CLAUDE_DOCS_CONCURRENCY: %v", common.ErrInvalidConfig, err)
		}
		config.Search.Concurrency = n
	}
	if v := os.Getenv("CLAUDE_DOCS_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: CLAUDE_DOCS_REQUESTS_PER_SECOND: %v", common.ErrInvalidConfig, err)
		}
		config.Web.RequestsPerSecond = rps
	}
	return nil
}

// Validate normalizes the base URL and checks every value the servers rely on.
func (c *Config) Validate() error {
	if _, err := common.ValidateHTTPURL(c.Docs.BaseURL); err != nil {
		return fmt.Errorf("%w: docs.base_url: %v", common.ErrInvalidConfig, err)
	}
	c.Docs.BaseURL = common.EnsureTrailingSlash(c.Docs.BaseURL)

	if len(c.Docs.Pages) == 0 {
		return fmt.Errorf("%w: docs.pages is empty", common.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Docs.Pages))
	for i, p := range c.Docs.Pages {
		if err := common.ValidatePageID(p.ID); err != nil {
			return fmt.Errorf("%w: docs.pages[%d]: %v", common.ErrInvalidConfig, i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: docs.pages: duplicate id %s", common.ErrInvalidConfig, p.ID)
		}
		seen[p.ID] = true
		if p.Path == "" {
			c.Docs.Pages[i].Path = p.ID
		}
	}

	if err := common.ValidatePositive("web.timeout_seconds", c.Web.TimeoutSeconds); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if err := common.ValidatePositive("web.max_response_size_bytes", c.Web.MaxResponseSizeBytes); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if c.Web.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: web.requests_per_second must not be negative", common.ErrInvalidConfig)
	}
	if c.Search.Concurrency < 1 {
		c.Search.Concurrency = 1
	}
	if c.Search.MaxExcerptChars < 1 {
		c.Search.MaxExcerptChars = 1000
	}

	return nil
}
