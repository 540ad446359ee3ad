package common

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var pageIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePageID accepts lowercase slugs such as "common-workflows".
func ValidatePageID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty page id", ErrInvalidPageID)
	}
	if !pageIDRegex.MatchString(id) {
		return fmt.Errorf("%w: %s", ErrInvalidPageID, id)
	}
	return nil
}

// ValidateHTTPURL requires an absolute http or https URL with a host.
func ValidateHTTPURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: invalid URL scheme: %s (only http/https allowed)", ErrInvalidURL, u.Scheme)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %s", ErrInvalidURL, rawURL)
	}

	return u, nil
}

// EnsureTrailingSlash makes a base URL resolve relative paths beneath it
// rather than beside it.
func EnsureTrailingSlash(rawURL string) string {
	if strings.HasSuffix(rawURL, "/") {
		return rawURL
	}
	return rawURL + "/"
}

func ValidatePositive(name string, n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, name)
	}
	return nil
}
