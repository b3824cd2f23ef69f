package ticket_service

type AuthErrorKind int

const (
	AuthNotFound AuthErrorKind = iota
	AuthExpired
	AuthMalformed
	// AuthMissing means no credential was presented at all.
	AuthMissing
	// AuthInternal means the ticket store failed, so nothing can be said
	// about the ticket itself.
	AuthInternal
)

// AuthError is always fatal to the connection attempt; the websocket
// supervisor maps each kind to a close code.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

func newAuthError(kind AuthErrorKind, msg string) *AuthError {
	return &AuthError{Kind: kind, Message: msg}
}
