// Package common contains constants, sentinel errors and small helpers shared
// by the sessionkeeper client and the reference server.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on every request.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates client requests with server logs.
	RequestIDHeaderName = "X-Request-ID"
)
