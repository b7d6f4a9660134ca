package domain

// SignInInput carries the credentials forwarded to the backend. Force
// requests eviction of an existing session on another device.
type SignInInput struct {
	Username string
	Password string
	Force    bool
}

// SignInResult is the outcome of a backend sign-in call. Exactly one of the
// three shapes is populated: an MFA challenge, an already-logged-in
// conflict, or an established session.
type SignInResult struct {
	MFARequired    bool
	TemporaryToken string
	Username       string

	AlreadyLoggedIn bool

	Session *Session
}
