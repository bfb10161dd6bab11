package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/auth"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/config"
	"golang.org/x/crypto/bcrypt"
)

// Profile is the editable part of an account.
type Profile struct {
	Name     string
	Age      int
	Address  string
	Username string
	// Password is required on create; empty on update keeps the old one.
	Password string
}

// ValidationError is returned for input the service refuses. It matches
// common.ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string        { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == common.ErrValidation }

func (p *Profile) normalize(passwordRequired bool) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Address = strings.TrimSpace(p.Address)
	p.Username = strings.TrimSpace(p.Username)

	if p.Name == "" || p.Address == "" || p.Username == "" || p.Age < 0 {
		return &ValidationError{Message: "Name, age, address, and username are required"}
	}
	if passwordRequired && p.Password == "" {
		return &ValidationError{Message: "Password is required"}
	}
	return nil
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	hashCost                    int
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.TokenValidity,
		hashCost:                    bcrypt.DefaultCost,
	}
}

func (s *Service) hash(password string) ([]byte, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	return auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *Service) create(ctx context.Context, p Profile) (*User, error) {
	if err := p.normalize(true); err != nil {
		return nil, err
	}

	hash, err := s.hash(p.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, &User{
		Name:         p.Name,
		Age:          p.Age,
		Address:      p.Address,
		Username:     p.Username,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Signup creates an account and returns it with a fresh access token.
func (s *Service) Signup(ctx context.Context, p Profile) (*User, string, error) {
	user, err := s.create(ctx, p)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// Login checks the credentials. Unknown users and wrong passwords both give
// common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	user, err := s.repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to an existing user id.
func (s *Service) Authenticate(ctx context.Context, token string) (int64, error) {
	id, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return 0, err
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return 0, common.ErrInvalidToken
	}
	return id, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, p Profile) (*User, error) {
	return s.create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Profile) (*User, error) {
	if err := p.normalize(false); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name, user.Age, user.Address, user.Username = p.Name, p.Age, p.Address, p.Username
	if p.Password != "" {
		if user.PasswordHash, err = s.hash(p.Password); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, user)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
