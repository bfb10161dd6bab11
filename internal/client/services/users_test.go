package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	calls int

	SignupRet *models.AuthResponse
	SignupErr error
	ListRet   []models.AppUser
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	LastCreate models.CreateUserPayload
	LastUpdate models.UpdateUserPayload
	LastSignup models.SignupPayload
	LastID     int64
}

func (f *fakeClient) Login(context.Context, string, string) (*models.AuthResponse, error) {
	f.calls++
	return nil, errors.New("not used")
}

func (f *fakeClient) Signup(_ context.Context, p models.SignupPayload) (*models.AuthResponse, error) {
	f.calls++
	f.LastSignup = p
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Me(context.Context) (*models.MeResponse, error) {
	f.calls++
	return nil, errors.New("not used")
}

func (f *fakeClient) ListUsers(context.Context) ([]models.AppUser, error) {
	f.calls++
	return f.ListRet, f.ListErr
}

func (f *fakeClient) CreateUser(_ context.Context, p models.CreateUserPayload) (*models.AppUser, error) {
	f.calls++
	f.LastCreate = p
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	return &models.AppUser{ID: 7, Name: p.Name, Age: p.Age, Address: p.Address, Username: p.Username}, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, id int64, p models.UpdateUserPayload) (*models.AppUser, error) {
	f.calls++
	f.LastID = id
	f.LastUpdate = p
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &models.AppUser{ID: id, Name: p.Name, Age: p.Age, Address: p.Address, Username: p.Username}, nil
}

func (f *fakeClient) DeleteUser(_ context.Context, id int64) error {
	f.calls++
	f.LastID = id
	return f.DeleteErr
}

var validForm = UserForm{Name: " Bob ", Age: " 42 ", Address: "Riga ", Username: " bob", Password: " pw "}

// ---- validation ----

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *UserForm)
		wantMsg string
	}{
		{name: "blank name", mutate: func(f *UserForm) { f.Name = "   " }, wantMsg: MsgInvalidUser},
		{name: "blank address", mutate: func(f *UserForm) { f.Address = "" }, wantMsg: MsgInvalidUser},
		{name: "blank username", mutate: func(f *UserForm) { f.Username = "\t" }, wantMsg: MsgInvalidUser},
		{name: "age not a number", mutate: func(f *UserForm) { f.Age = "forty" }, wantMsg: MsgInvalidUser},
		{name: "age missing", mutate: func(f *UserForm) { f.Age = "" }, wantMsg: MsgInvalidUser},
		{name: "no password", mutate: func(f *UserForm) { f.Password = "" }, wantMsg: MsgPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			form := validForm
			tt.mutate(&form)

			_, err := NewUserService(fc).Create(context.Background(), form)

			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Equal(t, tt.wantMsg, UserMessage(err))
			assert.Zero(t, fc.calls, "validation must happen before any network call")
		})
	}
}

func TestCreate_TrimsFields(t *testing.T) {
	fc := &fakeClient{}

	u, err := NewUserService(fc).Create(context.Background(), validForm)

	require.NoError(t, err)
	assert.Equal(t, models.CreateUserPayload{Name: "Bob", Age: 42, Address: "Riga", Username: "bob", Password: " pw "}, fc.LastCreate)
	assert.Equal(t, int64(7), u.ID)
}

func TestUpdate_PasswordOptional(t *testing.T) {
	fc := &fakeClient{}
	form := validForm
	form.Password = ""

	u, err := NewUserService(fc).Update(context.Background(), 3, form)

	require.NoError(t, err)
	assert.Equal(t, int64(3), fc.LastID)
	assert.Empty(t, fc.LastUpdate.Password)
	assert.Equal(t, "Bob", u.Name)
}

func TestUpdate_Validation(t *testing.T) {
	fc := &fakeClient{}
	form := validForm
	form.Age = "x"

	_, err := NewUserService(fc).Update(context.Background(), 3, form)

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Zero(t, fc.calls)
}

// ---- server failures ----

func TestServerFailureMessages(t *testing.T) {
	withMsg := &client.APIError{Status: http.StatusConflict, Path: "/users", Message: "Username already exists"}
	plain := fmt.Errorf("GET /users: %w", client.ErrUnavailable)

	tests := []struct {
		name    string
		call    func(s UserService) error
		fc      *fakeClient
		wantMsg string
	}{
		{
			name: "list fallback", fc: &fakeClient{ListErr: plain}, wantMsg: MsgLoadFailed,
			call: func(s UserService) error { _, err := s.List(context.Background()); return err },
		},
		{
			name: "create server message", fc: &fakeClient{CreateErr: withMsg}, wantMsg: "Username already exists",
			call: func(s UserService) error { _, err := s.Create(context.Background(), validForm); return err },
		},
		{
			name: "update fallback", fc: &fakeClient{UpdateErr: plain}, wantMsg: MsgActionFailed,
			call: func(s UserService) error { _, err := s.Update(context.Background(), 1, validForm); return err },
		},
		{
			name: "delete fallback", fc: &fakeClient{DeleteErr: plain}, wantMsg: MsgDeleteFailed,
			call: func(s UserService) error { return s.Delete(context.Background(), 1) },
		},
		{
			name: "signup fallback", fc: &fakeClient{SignupErr: plain}, wantMsg: MsgSignupFailed,
			call: func(s UserService) error { _, err := s.Signup(context.Background(), validForm); return err },
		},
		{
			name: "signup refused", fc: &fakeClient{SignupRet: &models.AuthResponse{Success: false, Message: "Username taken"}}, wantMsg: "Username taken",
			call: func(s UserService) error { _, err := s.Signup(context.Background(), validForm); return err },
		},
		{
			name: "signup refused without message", fc: &fakeClient{SignupRet: &models.AuthResponse{Success: false}}, wantMsg: MsgSignupRefused,
			call: func(s UserService) error { _, err := s.Signup(context.Background(), validForm); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call(NewUserService(tt.fc))
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, UserMessage(err))
		})
	}
}

func TestList_IgnoresServerMessage(t *testing.T) {
	fc := &fakeClient{ListErr: &client.APIError{Status: http.StatusInternalServerError, Path: "/users", Message: "db down"}}

	_, err := NewUserService(fc).List(context.Background())

	assert.Equal(t, MsgLoadFailed, UserMessage(err))
}

func TestFailure_KeepsCause(t *testing.T) {
	fc := &fakeClient{ListErr: &client.APIError{Status: http.StatusUnauthorized, Path: "/users"}}

	_, err := NewUserService(fc).List(context.Background())

	assert.ErrorIs(t, err, client.ErrUnauthorized)
}

func TestList_OK(t *testing.T) {
	fc := &fakeClient{ListRet: []models.AppUser{{ID: 1, Username: "alice"}}}

	users, err := NewUserService(fc).List(context.Background())

	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestSignup_OK(t *testing.T) {
	fc := &fakeClient{SignupRet: &models.AuthResponse{Success: true, User: &models.AuthenticatedUser{ID: 2, Username: "bob"}, Token: "T"}}

	u, err := NewUserService(fc).Signup(context.Background(), validForm)

	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.Equal(t, "bob", fc.LastSignup.Username)
	assert.Equal(t, 42, fc.LastSignup.Age)
}

func TestSignup_RequiresPassword(t *testing.T) {
	fc := &fakeClient{}
	form := validForm
	form.Password = ""

	_, err := NewUserService(fc).Signup(context.Background(), form)

	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, MsgInvalidSignup, UserMessage(err))
	assert.Zero(t, fc.calls)
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, in := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, common.ErrValidation, in)
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
	assert.Equal(t, "x", UserMessage(fmt.Errorf("wrap: %w", &Failure{Message: "x"})))
}
