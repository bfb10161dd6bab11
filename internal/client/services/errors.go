package services

import (
	"errors"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
)

// Failure is an error with a message meant for the person at the terminal.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

// fail wraps err, preferring the server's own message over fallback.
func fail(err error, fallback string) error {
	return &Failure{Message: client.MessageOr(err, fallback), Err: err}
}

// UserMessage returns what should be printed for err.
func UserMessage(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
