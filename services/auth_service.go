package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"
	"hotel-frontdesk/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminEmail    = "admin@hotel.com"
	DefaultAdminPassword = "password123"
)

// Session is what a successful login hands back.
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// AuthService is a plain gate in front of the API: a users collection with
// bcrypt hashes and a signed session token. No lockout, reset or revocation.
type AuthService struct {
	store  *store.Store
	tokens *utils.TokenService
	log    *logrus.Logger
	cost   int
}

func NewAuthService(st *store.Store, tokens *utils.TokenService, log *logrus.Logger) *AuthService {
	return &AuthService{store: st, tokens: tokens, log: log, cost: bcrypt.DefaultCost}
}

// EnsureDefaultUser seeds the owner account when no user exists yet.
func (s *AuthService) EnsureDefaultUser(ctx context.Context) error {
	return s.store.Tx(ctx, func(tx *store.Store) error {
		users, err := tx.Users().List(ctx)
		if err != nil {
			return err
		}
		if len(users) > 0 {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), s.cost)
		if err != nil {
			return fmt.Errorf("hash default password: %w", err)
		}
		admin := models.User{
			Email:        DefaultAdminEmail,
			Name:         "Admin User",
			Role:         models.RoleOwner,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Users().Upsert(ctx, admin); err != nil {
			return err
		}
		s.log.Infof("👤 Default user %s seeded", DefaultAdminEmail)
		return nil
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register adds a staff user. The only owner is the seeded account.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (models.User, error) {
	email = normalizeEmail(email)
	ve := &ValidationError{}
	if email == "" {
		ve.add("email", "Email is required")
	}
	if password == "" {
		ve.add("password", "Password is required")
	}
	if err := ve.orNil(); err != nil {
		return models.User{}, err
	}

	if err := s.EnsureDefaultUser(ctx); err != nil {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Role:         models.RoleStaff,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	err = s.store.Tx(ctx, func(tx *store.Store) error {
		_, exists, err := tx.Users().Get(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return ErrUserExists
		}
		return tx.Users().Upsert(ctx, user)
	})
	if err != nil {
		return models.User{}, err
	}
	s.log.Infof("👤 AuthService.Register ok: %s", email)
	return user.Public(), nil
}

// VerifyCredentials reports whether email and password match a stored user.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	if err := s.EnsureDefaultUser(ctx); err != nil {
		return models.User{}, err
	}
	user, found, err := s.store.Users().Get(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("compare password: %w", err)
	}
	return user.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		s.log.Infof("🔒 AuthService.Login rejected for %q: %v", email, err)
		return Session{}, err
	}
	token, expires, err := s.tokens.GenerateToken(user.Email, string(user.Role))
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	s.log.Infof("🔓 AuthService.Login ok: %s", user.Email)
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

// Authenticate turns a bearer token back into its claims.
func (s *AuthService) Authenticate(token string) (*utils.Claims, error) {
	return s.tokens.ValidateToken(token)
}
