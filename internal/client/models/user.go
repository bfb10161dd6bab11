package models

// AuthenticatedUser is the server's view of the signed-in identity.
type AuthenticatedUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
}

// AppUser is a row of the user-management table.
type AppUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
}

type CreateUserPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserPayload leaves the password untouched when Password is empty.
type UpdateUserPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

// SignupPayload is the body of POST /signup.
type SignupPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}
