package auth

import "net/url"

// IsHTTPS reports whether the base URL uses HTTPS. Cookies are marked
// Secure when it does. Empty or unparseable URLs default to true, the safe
// side.
func IsHTTPS(baseURL string) bool {
	if baseURL == "" {
		return true
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return true
	}

	return parsedURL.Scheme != "http"
}
