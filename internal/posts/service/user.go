package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/aussiebroadwan/posts/pkg/cryptox"
	"github.com/aussiebroadwan/posts/pkg/jwtx"
	"github.com/google/uuid"
)

var errUsernameTaken = apierr.Unprocessable("username", "username taken")

// Session is what every successful user operation hands back: the user's
// current username and a freshly issued token.
type Session struct {
	UserID   uuid.UUID
	Username string
	Token    string
}

// UserUpdate is a partial update; nil fields are left alone.
type UserUpdate struct {
	Username *string
	Password *string
}

type UserService struct {
	Store    store.Store
	Hasher   *cryptox.Hasher
	Sessions *jwtx.Sessions
}

// Register creates a user and logs them in.
func (s *UserService) Register(ctx context.Context, username, password string) (Session, error) {
	hash, err := s.Hasher.Hash(ctx, password)
	if err != nil {
		return Session{}, apierr.Internalf(err, "hash password")
	}

	u, err := s.Store.Users().CreateUser(ctx, username, hash)
	if err != nil {
		return Session{}, apierr.OnConstraint(err, s.Store, store.ConstraintUsernameUnique, errUsernameTaken)
	}
	return s.session(u)
}

// Login checks a username and password. An unknown username is reported as
// a field error on "email"; a wrong password is Unauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (Session, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, apierr.Unprocessable("email", "does not exist")
	}
	if err != nil {
		return Session{}, apierr.Internalf(err, "load user")
	}

	if err := s.Hasher.Verify(ctx, password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return Session{}, apierr.Unauthorized().WithCause(err)
		}
		return Session{}, apierr.Internalf(err, "verify password for user %s", u.ID)
	}
	return s.session(u)
}

// Current returns the caller with a re-issued token. A token whose user no
// longer exists is Unauthorized.
func (s *UserService) Current(ctx context.Context, id uuid.UUID) (Session, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, apierr.Unauthorized().WithCause(err)
	}
	if err != nil {
		return Session{}, apierr.Internalf(err, "load user %s", id)
	}
	return s.session(u)
}

// Update changes the caller's username and/or password. An empty update is
// the same as Current.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) (Session, error) {
	if upd.Username == nil && upd.Password == nil {
		return s.Current(ctx, id)
	}

	patch := domain.UserPatch{Username: upd.Username}
	if upd.Password != nil {
		hash, err := s.Hasher.Hash(ctx, *upd.Password)
		if err != nil {
			return Session{}, apierr.Internalf(err, "hash password")
		}
		patch.PasswordHash = &hash
	}

	u, err := s.Store.Users().UpdateUser(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		return Session{}, apierr.Unauthorized().WithCause(err)
	}
	if err != nil {
		return Session{}, apierr.OnConstraint(err, s.Store, store.ConstraintUsernameUnique, errUsernameTaken)
	}
	return s.session(u)
}

func (s *UserService) session(u domain.User) (Session, error) {
	token, err := s.Sessions.Issue(u.ID)
	if err != nil {
		return Session{}, apierr.Internalf(err, "issue token")
	}
	return Session{UserID: u.ID, Username: u.Username, Token: token}, nil
}
