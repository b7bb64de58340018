package models

// Session is the client-side authentication state.
// It is written as a single record, all fields at once, so a partially
// populated session (token without role) is never observable.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
}

// Authenticated is true iff an access token is present.
// No expiry is tracked client-side: an expired token is discovered
// reactively when the backend answers 401.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}
