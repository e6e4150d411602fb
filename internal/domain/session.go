package domain

// SessionStatus enumerates resolution states of the per-process session.
type SessionStatus string

const (
	SessionLoading         SessionStatus = "loading"
	SessionAuthenticated   SessionStatus = "authenticated"
	SessionUnauthenticated SessionStatus = "unauthenticated"
	SessionError           SessionStatus = "error"
)

// SessionUser is the identity carried by an authenticated session.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionState is one emission of the session stream. User is nil unless
// Status is SessionAuthenticated; Error is set only for SessionError.
type SessionState struct {
	Status SessionStatus `json:"status"`
	User   *SessionUser  `json:"user,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// UID returns the authenticated user id, or "" when no user is present.
func (s SessionState) UID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
