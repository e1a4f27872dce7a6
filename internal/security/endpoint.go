package security

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateEndpointURL checks that a remote dashboard base URL is usable and
// returns it normalised without a trailing slash.
func ValidateEndpointURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("URL scheme must be http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must have a host")
	}
	if u.User != nil {
		return "", fmt.Errorf("URL must not carry credentials")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("URL must not carry a query or fragment")
	}

	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}
