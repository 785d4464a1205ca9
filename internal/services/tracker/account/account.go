// Package account manages user registration, login, and the user directory.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/platform/id"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/identity"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

const defaultStoreTimeout = 5 * time.Second

// Service handles accounts. New registrations always start as team members;
// only an admin can raise a role afterwards.
type Service struct {
	store    storage.UserStore
	issuer   *identity.Issuer
	clock    func() time.Time
	newID    func() (string, error)
	timeout  time.Duration
	hashCost int
}

// NewService creates an account Service.
func NewService(store storage.UserStore, issuer *identity.Issuer) *Service {
	return &Service{
		store:    store,
		issuer:   issuer,
		clock:    time.Now,
		newID:    id.NewID,
		timeout:  defaultStoreTimeout,
		hashCost: bcrypt.DefaultCost,
	}
}

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new team-member account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (storage.UserRecord, error) {
	if s == nil || s.store == nil {
		return storage.UserRecord{}, fmt.Errorf("account service is not configured")
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return storage.UserRecord{}, errs.New(errs.CodeUserFieldsMissing, "username, email, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return storage.UserRecord{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.newID()
	if err != nil {
		return storage.UserRecord{}, fmt.Errorf("generate user id: %w", err)
	}
	record := storage.UserRecord{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         string(domain.RoleTeamMember),
		CreatedAt:    s.clock(),
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.PutUser(storeCtx, record); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return storage.UserRecord{}, errs.Wrap(errs.CodeUsernameTaken, "username is taken", err)
		}
		return storage.UserRecord{}, errs.Wrap(errs.CodeStoreUnavailable, "register user", err)
	}
	return record, nil
}

// Login verifies credentials and returns a signed token plus the account.
// Unknown usernames and wrong passwords report the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, storage.UserRecord, error) {
	if s == nil || s.store == nil || s.issuer == nil {
		return "", storage.UserRecord{}, fmt.Errorf("account service is not configured")
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", storage.UserRecord{}, errs.New(errs.CodeCredentialsInvalid, "invalid credentials")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	record, err := s.store.GetUserByUsername(storeCtx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", storage.UserRecord{}, errs.Wrap(errs.CodeCredentialsInvalid, "invalid credentials", err)
		}
		return "", storage.UserRecord{}, errs.Wrap(errs.CodeStoreUnavailable, "load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(password)); err != nil {
		return "", storage.UserRecord{}, errs.Wrap(errs.CodeCredentialsInvalid, "invalid credentials", err)
	}

	token, err := s.issuer.Issue(identity.Claims{
		UserID:   record.ID,
		Username: record.Username,
		Role:     record.Role,
	})
	if err != nil {
		return "", storage.UserRecord{}, fmt.Errorf("issue token: %w", err)
	}
	return token, record, nil
}

// GetUser loads one account.
func (s *Service) GetUser(ctx context.Context, userID string) (storage.UserRecord, error) {
	if s == nil || s.store == nil {
		return storage.UserRecord{}, fmt.Errorf("account service is not configured")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	record, err := s.store.GetUser(storeCtx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return storage.UserRecord{}, errs.Wrap(errs.CodeUserNotFound, "user does not exist", err)
		}
		return storage.UserRecord{}, errs.Wrap(errs.CodeStoreUnavailable, "load user", err)
	}
	return record, nil
}

// ListUsers lists every account.
func (s *Service) ListUsers(ctx context.Context) ([]storage.UserRecord, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("account service is not configured")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	records, err := s.store.ListUsers(storeCtx)
	if err != nil {
		return nil, errs.Wrap(errs.CodeStoreUnavailable, "list users", err)
	}
	return records, nil
}

// ListTeamMembers lists accounts holding the team_member role, the pool
// tasks get assigned from.
func (s *Service) ListTeamMembers(ctx context.Context) ([]storage.UserRecord, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("account service is not configured")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	records, err := s.store.ListUsersByRole(storeCtx, string(domain.RoleTeamMember))
	if err != nil {
		return nil, errs.Wrap(errs.CodeStoreUnavailable, "list team members", err)
	}
	return records, nil
}

// UpdateRole changes an account's role. Admin only.
func (s *Service) UpdateRole(ctx context.Context, actor domain.Identity, userID, role string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("account service is not configured")
	}
	if actor.Role != domain.RoleAdmin {
		return errs.New(errs.CodeForbidden, "only admins may change roles")
	}
	role = strings.TrimSpace(role)
	if !domain.ValidRole(role) {
		return errs.WithMetadata(errs.CodeUserInvalidRole, "invalid role", map[string]string{"role": role})
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.UpdateUserRole(storeCtx, strings.TrimSpace(userID), role); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeUserNotFound, "user does not exist", err)
		}
		return errs.Wrap(errs.CodeStoreUnavailable, "update role", err)
	}
	return nil
}

// UpdateProfile changes the actor's own username and email.
func (s *Service) UpdateProfile(ctx context.Context, actor domain.Identity, username, email string) (storage.UserRecord, error) {
	if s == nil || s.store == nil {
		return storage.UserRecord{}, fmt.Errorf("account service is not configured")
	}
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return storage.UserRecord{}, errs.New(errs.CodeUserFieldsMissing, "username and email are required")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.UpdateUserProfile(storeCtx, actor.UserID, username, email); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return storage.UserRecord{}, errs.Wrap(errs.CodeUserNotFound, "user does not exist", err)
		case errors.Is(err, storage.ErrConflict):
			return storage.UserRecord{}, errs.Wrap(errs.CodeUsernameTaken, "username is taken", err)
		default:
			return storage.UserRecord{}, errs.Wrap(errs.CodeStoreUnavailable, "update profile", err)
		}
	}
	return s.GetUser(ctx, actor.UserID)
}

// DeleteUser removes an account. Admin only.
func (s *Service) DeleteUser(ctx context.Context, actor domain.Identity, userID string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("account service is not configured")
	}
	if actor.Role != domain.RoleAdmin {
		return errs.New(errs.CodeForbidden, "only admins may delete users")
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.store.DeleteUser(storeCtx, strings.TrimSpace(userID)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errs.Wrap(errs.CodeUserNotFound, "user does not exist", err)
		}
		return errs.Wrap(errs.CodeStoreUnavailable, "delete user", err)
	}
	return nil
}
