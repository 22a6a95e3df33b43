package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength defines the maximum allowed length for configured URLs.
const maxURLLength = 2048

// ValidateURL validates the format of a user-configured URL.
// It checks that the URL is well-formed, uses an HTTP/HTTPS scheme, and has
// a host. Returns a ValidationError naming the given field when invalid.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: field, Message: fmt.Sprintf("%s is required", field)}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must not exceed %d characters", field, maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: field, Message: "invalid URL format"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: field, Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: field, Message: "URL must have a valid host"}
	}

	return nil
}
