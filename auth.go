package inkstudio

import "crypto/subtle"

// Guard validates the shared admin secret carried on privileged requests.
// It is stateless: no sessions, no tokens, no lockout. Comparison is
// constant-time so the secret cannot be probed through timing.
type Guard struct {
	secret string
}

// NewGuard creates a Guard for the configured admin secret.
func NewGuard(secret string) *Guard {
	return &Guard{secret: secret}
}

// Match reports whether candidate equals the configured secret. An empty
// configured secret never matches.
func (g *Guard) Match(candidate string) bool {
	if g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(candidate)) == 1
}

// Authorize returns ErrUnauthorized unless credential matches the admin
// secret.
func (g *Guard) Authorize(credential string) error {
	if !g.Match(credential) {
		return ErrUnauthorized
	}
	return nil
}
