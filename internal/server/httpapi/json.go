package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/sessionkeeper/internal/server/users"
)

type userDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
}

func toDTO(u *users.User) *userDTO {
	return &userDTO{ID: u.ID, Name: u.Name, Age: u.Age, Address: u.Address, Username: u.Username}
}

type profileRequest struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (p profileRequest) profile() users.Profile {
	return users.Profile{Name: p.Name, Age: p.Age, Address: p.Address, Username: p.Username, Password: p.Password}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool     `json:"success"`
	User    *userDTO `json:"user,omitempty"`
	Token   string   `json:"token,omitempty"`
	Message string   `json:"message,omitempty"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, statusResponse{Success: false, Message: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
}
