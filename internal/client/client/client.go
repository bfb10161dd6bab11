package client

import (
	"context"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
)

// Client is the typed contract of the remote service.
type Client interface {
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)
	Signup(ctx context.Context, payload models.SignupPayload) (*models.AuthResponse, error)
	Me(ctx context.Context) (*models.MeResponse, error)
	ListUsers(ctx context.Context) ([]models.AppUser, error)
	CreateUser(ctx context.Context, payload models.CreateUserPayload) (*models.AppUser, error)
	UpdateUser(ctx context.Context, id int64, payload models.UpdateUserPayload) (*models.AppUser, error)
	DeleteUser(ctx context.Context, id int64) error
}
