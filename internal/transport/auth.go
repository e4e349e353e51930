package transport

import "net/http"

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth applies no authentication.
type NoAuth struct{}

// Apply implements Authenticator.
func (NoAuth) Apply(*http.Request) {}

// BearerAuth sends an Authorization: Bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements Authenticator.
func (a BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}

// HeaderAuth sends credentials as custom headers, e.g. Flowhub's
// clientId and key pair.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply implements Authenticator.
func (a HeaderAuth) Apply(req *http.Request) {
	for name, value := range a.Headers {
		req.Header.Set(name, value)
	}
}
