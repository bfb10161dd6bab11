package users

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/auth"
	"github.com/dmitrijs2005/sessionkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *Service {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	s := NewService(NewMemoryRepository(), cfg)
	s.hashCost = bcrypt.MinCost
	return s
}

var aliceProfile = Profile{Name: " Alice ", Age: 30, Address: "Riga", Username: "alice", Password: "secret"}

func TestSignupThenLogin(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	u, token, err := s.Signup(ctx, aliceProfile)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, []byte("secret"), u.PasswordHash)

	u2, token2, err := s.Login(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, u2.ID)

	id, err := s.Authenticate(ctx, token2)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestLogin_Rejected(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, _, err := s.Signup(ctx, aliceProfile)
	require.NoError(t, err)

	_, _, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, _, err = s.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	_, _, err := s.Signup(ctx, aliceProfile)
	require.NoError(t, err)

	p := aliceProfile
	p.Username = "ALICE"
	_, _, err = s.Signup(ctx, p)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestValidation(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	p := aliceProfile
	p.Name = "  "
	_, err := s.Create(ctx, p)
	assert.ErrorIs(t, err, common.ErrValidation)

	p = aliceProfile
	p.Password = ""
	_, err = s.Create(ctx, p)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdate_KeepsPasswordWhenEmpty(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	u, err := s.Create(ctx, aliceProfile)
	require.NoError(t, err)

	_, err = s.Update(ctx, u.ID, Profile{Name: "Alice B", Age: 31, Address: "Riga", Username: "alice"})
	require.NoError(t, err)
	_, _, err = s.Login(ctx, "alice", "secret")
	require.NoError(t, err)

	_, err = s.Update(ctx, u.ID, Profile{Name: "Alice B", Age: 31, Address: "Riga", Username: "alice", Password: "new"})
	require.NoError(t, err)
	_, _, err = s.Login(ctx, "alice", "new")
	require.NoError(t, err)

	got, err := s.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.Equal(t, 31, got.Age)
}

func TestUpdate_UnknownUser(t *testing.T) {
	_, err := newService(t).Update(context.Background(), 42, aliceProfile)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDelete_InvalidatesTokens(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	u, token, err := s.Signup(ctx, aliceProfile)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, u.ID))
	assert.ErrorIs(t, s.Delete(ctx, u.ID), common.ErrorNotFound)

	_, err = s.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestAuthenticate_Expired(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	u, err := s.Create(ctx, aliceProfile)
	require.NoError(t, err)

	token, err := auth.GenerateToken(u.ID, s.jwtSecret, -time.Second)
	require.NoError(t, err)

	_, err = s.Authenticate(ctx, token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestList_Ordered(t *testing.T) {
	s := newService(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		p := aliceProfile
		p.Username = name
		_, err := s.Create(ctx, p)
		require.NoError(t, err)
	}

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{users[0].Username, users[1].Username, users[2].Username})
}
