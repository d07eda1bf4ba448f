package domain

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	CredentialFieldURL       = "LIVEKIT_URL"
	CredentialFieldAPIKey    = "LIVEKIT_API_KEY"
	CredentialFieldAPISecret = "LIVEKIT_API_SECRET"
	CredentialFieldToken     = "LIVEKIT_TOKEN"
)

// Credentials authenticate the agent against the real-time media service.
// Either Token or the APIKey/APISecret pair must be set.
type Credentials struct {
	URL       string
	APIKey    string
	APISecret string
	// Token is a pre-issued room join token, passed through untouched.
	Token string
}

func (c Credentials) Validate() error {
	var fields []string

	if strings.TrimSpace(c.URL) == "" {
		fields = append(fields, CredentialFieldURL)
	} else if err := validateServiceURL(c.URL); err != nil {
		return &ConfigurationError{Fields: []string{CredentialFieldURL}, Err: err}
	}

	if strings.TrimSpace(c.Token) == "" {
		if strings.TrimSpace(c.APIKey) == "" {
			fields = append(fields, CredentialFieldAPIKey)
		}
		if strings.TrimSpace(c.APISecret) == "" {
			fields = append(fields, CredentialFieldAPISecret)
		}
	}

	if len(fields) > 0 {
		return &ConfigurationError{Fields: fields}
	}

	return nil
}

func (c Credentials) HasToken() bool {
	return strings.TrimSpace(c.Token) != ""
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{URL: %s, APIKey: %s, APISecret: %s, Token: %s}",
		c.URL, mask(c.APIKey), mask(c.APISecret), mask(c.Token))
}

func validateServiceURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse service url: %w", err)
	}

	switch parsed.Scheme {
	case "ws", "wss", "http", "https":
	default:
		return fmt.Errorf("service url scheme %q must be ws, wss, http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("service url host is required")
	}

	return nil
}

func mask(secret string) string {
	if secret == "" {
		return `""`
	}
	return "<redacted>"
}
