package session

import "github.com/dmitrijs2005/sessionkeeper/internal/client/models"

// User-facing messages.
const (
	MsgSessionExpired  = "Session expired. Please sign in again."
	MsgLoginRejected   = "Unable to login"
	MsgLoginFailed     = "Login failed. Please try again."
	MsgLoginInProgress = "Login already in progress"
	MsgLoginSuperseded = "Login cancelled"
)

// State is a copy of the controller's session state.
type State struct {
	User            *models.AuthenticatedUser
	Error           string
	IsLoading       bool
	IsBootstrapping bool
}

func (s State) Authenticated() bool {
	return s.User != nil
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// Result is what Login reports to its caller.
type Result struct {
	Success bool
	// Message is the error shown to the user when Success is false.
	Message string
}
