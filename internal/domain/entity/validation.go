package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength caps URL length so a hostile feed cannot blow up the stores.
const maxURLLength = 2048

// ValidateURL validates the format of a URL: well-formed, http or https, and a
// non-empty host. Network-level checks (private IP denial) belong to the
// fetcher layer, which knows whether it is about to dial the address.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}
