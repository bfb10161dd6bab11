// Package models holds the wire types exchanged with the remote service.
package models

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by /login and /signup.
type AuthResponse struct {
	Success bool               `json:"success"`
	User    *AuthenticatedUser `json:"user,omitempty"`
	Token   string             `json:"token,omitempty"`
	Message string             `json:"message,omitempty"`
}

// Complete reports whether a successful response carries both a user and a token.
func (r *AuthResponse) Complete() bool {
	return r != nil && r.Success && r.User != nil && r.Token != ""
}

// MeResponse is returned by /me.
type MeResponse struct {
	Success bool               `json:"success"`
	User    *AuthenticatedUser `json:"user,omitempty"`
	Message string             `json:"message,omitempty"`
}

// StatusResponse is the generic {success, message} envelope, also used for
// error bodies.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
