package docs

import (
	"fmt"
	"net/url"

	"github.com/local-mcps/claude-docs-mcp/config"
	"github.com/local-mcps/claude-docs-mcp/internal/common"
)

// Registry maps page ids to documentation URLs. It is immutable once built.
type Registry struct {
	base  *url.URL
	ids   []string
	paths map[string]string
}

func NewRegistry(baseURL string, pages []config.PageConfig) (*Registry, error) {
	base, err := common.ValidateHTTPURL(common.EnsureTrailingSlash(baseURL))
	if err != nil {
		return nil, err
	}

	r := &Registry{
		base:  base,
		ids:   make([]string, 0, len(pages)),
		paths: make(map[string]string, len(pages)),
	}

	for _, p := range pages {
		if err := common.ValidatePageID(p.ID); err != nil {
			return nil, err
		}
		if _, dup := r.paths[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate page id %s", common.ErrInvalidPageID, p.ID)
		}
		path := p.Path
		if path == "" {
			path = p.ID
		}
		r.ids = append(r.ids, p.ID)
		r.paths[p.ID] = path
	}

	return r, nil
}

func NewRegistryFromConfig(cfg *config.DocsConfig) (*Registry, error) {
	return NewRegistry(cfg.BaseURL, cfg.Pages)
}

// Resolve returns the absolute URL for id, or a validation error naming it.
func (r *Registry) Resolve(id string) (string, error) {
	path, ok := r.paths[id]
	if !ok {
		return "", common.NewError(common.KindValidation, "Unknown page: "+id, nil)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", common.NewError(common.KindValidation, "Invalid path for page "+id, err)
	}

	return r.base.ResolveReference(ref).String(), nil
}

// IDs returns the page ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ids))
	copy(ids, r.ids)
	return ids
}

func (r *Registry) Len() int {
	return len(r.ids)
}

func (r *Registry) BaseURL() string {
	return r.base.String()
}
