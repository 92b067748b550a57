// Package accounts handles sign-up, sign-in and mapping external identities
// (Google, Firebase) onto hub users.
package accounts

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"pridenomad-hub/internal/auth"
	"pridenomad-hub/internal/domain/access"
	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/users"
	apperr "pridenomad-hub/internal/pkg/errors"
	"pridenomad-hub/internal/pkg/logger"
	"pridenomad-hub/internal/store"
)

type TokenIssuer interface {
	Issue(u *users.User) (string, error)
}

type Service struct {
	store  store.Store
	tokens TokenIssuer
	admins *admins.Registry
	log    *logger.Logger
}

func NewService(st store.Store, tokens TokenIssuer, reg *admins.Registry, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: st, tokens: tokens, admins: reg, log: log}
}

type Session struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case unicode.IsLetter(c):
			hasLetter = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if !isPasswordStrong(in.Password) {
		return nil, apperr.ValidationError("password too weak", []listings.FieldError{
			{Field: "password", Message: "must be at least 8 characters and contain letters and numbers"},
		})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}
	hashed := string(hash)

	u := &users.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        users.NormalizeEmail(in.Email),
		PasswordHash: &hashed,
		AuthProvider: users.ProviderLocal,
		Role:         users.RoleRegular,
	}
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.With("user_id", u.ID).Info("user registered")
	return s.session(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("invalid credentials")
		}
		return nil, err
	}
	if u.PasswordHash == nil || *u.PasswordHash == "" {
		return nil, apperr.Unauthorized("this account uses external sign-in")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return s.session(u)
}

// SignInExternal exchanges a verified Google or Firebase identity for a hub
// session.
func (s *Service) SignInExternal(ctx context.Context, id *auth.Identity) (*Session, error) {
	u, err := s.Ensure(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.session(u)
}

func (s *Service) session(u *users.User) (*Session, error) {
	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, apperr.Internal("could not create token", err)
	}
	return &Session{Token: token, User: u}, nil
}

// Ensure resolves an identity to a user, linking the external subject to an
// existing account with the same email or creating a Regular User.
func (s *Service) Ensure(ctx context.Context, id *auth.Identity) (*users.User, error) {
	if id == nil {
		return nil, apperr.Unauthorized("missing identity")
	}
	if id.UserID != "" {
		u, err := s.store.Users().GetByID(ctx, id.UserID)
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("user no longer exists")
		}
		return u, err
	}

	var (
		u   *users.User
		err error
	)
	switch id.Provider {
	case users.ProviderGoogle:
		u, err = s.store.Users().GetByGoogleSub(ctx, id.Subject)
	case users.ProviderFirebase:
		u, err = s.store.Users().GetByFirebaseUID(ctx, id.Subject)
	default:
		return nil, apperr.Unauthorized("unsupported identity provider")
	}
	if err == nil {
		return u, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	sub := id.Subject
	u, err = s.store.Users().GetByEmail(ctx, id.Email)
	switch {
	case err == nil:
		link(u, id.Provider, &sub)
		if err := s.store.Users().Update(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	case !apperr.IsNotFound(err):
		return nil, err
	}

	u = &users.User{
		Email:        id.Email,
		Name:         id.Name,
		AuthProvider: id.Provider,
		Role:         users.RoleRegular,
	}
	link(u, id.Provider, &sub)
	if err := s.store.Users().Create(ctx, u); err != nil {
		return nil, err
	}
	s.log.With("user_id", u.ID).With("provider", id.Provider).Info("user created from external identity")
	return u, nil
}

func link(u *users.User, provider string, sub *string) {
	switch provider {
	case users.ProviderGoogle:
		u.GoogleSub = sub
	case users.ProviderFirebase:
		u.FirebaseUID = sub
	}
}

// Profile is what /me returns.
type Profile struct {
	User   *users.User   `json:"user"`
	Policy access.Policy `json:"policy"`
}

func (s *Service) Me(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{User: u, Policy: access.ComputePolicy(*u, s.IsAdmin(u.Email))}, nil
}

func (s *Service) IsAdmin(email string) bool {
	return s.admins != nil && s.admins.IsAdmin(email)
}

func (s *Service) Payments(ctx context.Context, userID string) ([]billing.Payment, error) {
	return s.store.Payments().ListByUser(ctx, userID)
}
