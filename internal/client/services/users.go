package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

const (
	MsgInvalidUser      = "Name, age, address, and username are required. Age must be a number."
	MsgPasswordRequired = "Password is required when creating a user."
	MsgInvalidSignup    = "All fields are required and age must be a number."

	MsgLoadFailed    = "Unable to load users. Please try again."
	MsgActionFailed  = "Action failed. Please try again."
	MsgDeleteFailed  = "Unable to delete user."
	MsgSignupFailed  = "Unable to create account. Please try again."
	MsgSignupRefused = "Unable to create account."

	MsgUserCreated = "User created successfully. You can now sign in with this account."
	MsgUserUpdated = "User updated successfully."
	MsgUserDeleted = "User deleted."
	MsgSignedUp    = "Account created! You can now sign in."
)

// UserForm is raw input as typed by the user; every field is a string.
type UserForm struct {
	Name     string
	Age      string
	Address  string
	Username string
	Password string
}

type validUser struct {
	name, address, username, password string
	age                               int
}

func (f UserForm) validate(msg string) (validUser, error) {
	v := validUser{
		name:     strings.TrimSpace(f.Name),
		address:  strings.TrimSpace(f.Address),
		username: strings.TrimSpace(f.Username),
		password: f.Password,
	}
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil || v.name == "" || v.address == "" || v.username == "" {
		return v, &Failure{Message: msg, Err: common.ErrValidation}
	}
	v.age = age
	return v, nil
}

// UserService manages accounts on the remote service.
type UserService interface {
	List(ctx context.Context) ([]models.AppUser, error)
	Create(ctx context.Context, form UserForm) (*models.AppUser, error)
	// Update keeps the current password when form.Password is empty.
	Update(ctx context.Context, id int64, form UserForm) (*models.AppUser, error)
	Delete(ctx context.Context, id int64) error
	// Signup registers a new account. It does not sign in.
	Signup(ctx context.Context, form UserForm) (*models.AuthenticatedUser, error)
}

type userService struct {
	client client.Client
}

func NewUserService(c client.Client) UserService {
	return &userService{client: c}
}

func (s *userService) List(ctx context.Context) ([]models.AppUser, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, &Failure{Message: MsgLoadFailed, Err: err}
	}
	return users, nil
}

func (s *userService) Create(ctx context.Context, form UserForm) (*models.AppUser, error) {
	v, err := form.validate(MsgInvalidUser)
	if err != nil {
		return nil, err
	}
	if v.password == "" {
		return nil, &Failure{Message: MsgPasswordRequired, Err: common.ErrValidation}
	}

	u, err := s.client.CreateUser(ctx, models.CreateUserPayload{
		Name: v.name, Age: v.age, Address: v.address, Username: v.username, Password: v.password,
	})
	if err != nil {
		return nil, fail(err, MsgActionFailed)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id int64, form UserForm) (*models.AppUser, error) {
	v, err := form.validate(MsgInvalidUser)
	if err != nil {
		return nil, err
	}

	u, err := s.client.UpdateUser(ctx, id, models.UpdateUserPayload{
		Name: v.name, Age: v.age, Address: v.address, Username: v.username, Password: v.password,
	})
	if err != nil {
		return nil, fail(err, MsgActionFailed)
	}
	return u, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteUser(ctx, id); err != nil {
		return fail(err, MsgDeleteFailed)
	}
	return nil
}

func (s *userService) Signup(ctx context.Context, form UserForm) (*models.AuthenticatedUser, error) {
	v, err := form.validate(MsgInvalidSignup)
	if err != nil {
		return nil, err
	}
	if v.password == "" {
		return nil, &Failure{Message: MsgInvalidSignup, Err: common.ErrValidation}
	}

	resp, err := s.client.Signup(ctx, models.SignupPayload{
		Name: v.name, Age: v.age, Address: v.address, Username: v.username, Password: v.password,
	})
	if err != nil {
		return nil, fail(err, MsgSignupFailed)
	}
	if resp == nil || !resp.Success || resp.User == nil {
		msg := MsgSignupRefused
		if resp != nil && resp.Message != "" {
			msg = resp.Message
		}
		return nil, &Failure{Message: msg}
	}
	return resp.User, nil
}

// ParseID parses a user id typed at the prompt.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, &Failure{Message: fmt.Sprintf("Invalid user id %q.", s), Err: common.ErrValidation}
	}
	return id, nil
}
