package scan

import (
	"net/url"
	"strings"
)

// ValidateURL accepts absolute http and https URLs with a host.
func ValidateURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, &ValidationError{Field: "url", Message: "a website URL is required"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, &ValidationError{Field: "url", Value: raw, Message: "not a valid URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, &ValidationError{Field: "url", Value: raw, Message: "scheme must be http or https"}
	}
	if u.Host == "" {
		return nil, &ValidationError{Field: "url", Value: raw, Message: "host is missing"}
	}
	return u, nil
}
