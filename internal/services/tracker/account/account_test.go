package account

import (
	"context"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/soliyanakewani/Project-Management-System/internal/platform/errors"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/domain"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/identity"
	"github.com/soliyanakewani/Project-Management-System/internal/services/tracker/storage"
)

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[string]storage.UserRecord
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]storage.UserRecord)}
}

func (f *fakeUserStore) PutUser(_ context.Context, record storage.UserRecord) error {
	for id, existing := range f.users {
		if id != record.ID && existing.Username == record.Username {
			return storage.ErrConflict
		}
	}
	f.users[record.ID] = record
	return nil
}

func (f *fakeUserStore) GetUser(_ context.Context, userID string) (storage.UserRecord, error) {
	record, ok := f.users[userID]
	if !ok {
		return storage.UserRecord{}, storage.ErrNotFound
	}
	return record, nil
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (storage.UserRecord, error) {
	for _, record := range f.users {
		if record.Username == username {
			return record, nil
		}
	}
	return storage.UserRecord{}, storage.ErrNotFound
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]storage.UserRecord, error) {
	var results []storage.UserRecord
	for _, record := range f.users {
		results = append(results, record)
	}
	return results, nil
}

func (f *fakeUserStore) ListUsersByRole(_ context.Context, role string) ([]storage.UserRecord, error) {
	var results []storage.UserRecord
	for _, record := range f.users {
		if record.Role == role {
			results = append(results, record)
		}
	}
	return results, nil
}

func (f *fakeUserStore) UpdateUserRole(_ context.Context, userID string, role string) error {
	record, ok := f.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	record.Role = role
	f.users[userID] = record
	return nil
}

func (f *fakeUserStore) UpdateUserProfile(_ context.Context, userID string, username string, email string) error {
	for id, existing := range f.users {
		if id != userID && existing.Username == username {
			return storage.ErrConflict
		}
	}
	record, ok := f.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	record.Username = username
	record.Email = email
	f.users[userID] = record
	return nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID string) error {
	if _, ok := f.users[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(f.users, userID)
	return nil
}

func newTestService(t *testing.T, store *fakeUserStore) *Service {
	t.Helper()
	issuer, err := identity.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer returned error: %v", err)
	}
	service := NewService(store, issuer)
	service.clock = func() time.Time {
		return time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)
	}
	next := 0
	service.newID = func() (string, error) {
		next++
		return fmt.Sprintf("user-%d", next), nil
	}
	service.hashCost = bcrypt.MinCost
	return service
}

func adminActor() domain.Identity {
	return domain.Identity{UserID: "user-admin", Role: domain.RoleAdmin}
}

func TestRegisterDefaultsToTeamMember(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)

	record, err := service.Register(context.Background(), RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if record.Role != string(domain.RoleTeamMember) {
		t.Fatalf("role = %q, want team_member", record.Role)
	}
	if record.PasswordHash == "s3cret" || record.PasswordHash == "" {
		t.Fatal("password stored without hashing")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	inputs := []RegisterInput{
		{Email: "a@example.com", Password: "x"},
		{Username: "a", Password: "x"},
		{Username: "a", Email: "a@example.com"},
	}
	for _, input := range inputs {
		if _, err := service.Register(ctx, input); errs.CodeOf(err) != errs.CodeUserFieldsMissing {
			t.Errorf("Register(%+v) code = %v, want UserFieldsMissing", input, errs.CodeOf(err))
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	input := RegisterInput{Username: "ada", Email: "ada@example.com", Password: "x"}
	if _, err := service.Register(ctx, input); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := service.Register(ctx, input); errs.CodeOf(err) != errs.CodeUsernameTaken {
		t.Fatalf("Register duplicate code = %v, want UsernameTaken", errs.CodeOf(err))
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	token, record, err := service.Login(ctx, "ada", "s3cret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if record.ID != registered.ID {
		t.Fatalf("Login record ID = %q, want %q", record.ID, registered.ID)
	}

	claims, err := service.issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != registered.ID || claims.Username != "ada" || claims.Role != string(domain.RoleTeamMember) {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestLoginDoesNotDistinguishFailureModes(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "s3cret",
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	_, _, unknownUser := service.Login(ctx, "nobody", "s3cret")
	_, _, wrongPassword := service.Login(ctx, "ada", "wrong")
	if errs.CodeOf(unknownUser) != errs.CodeCredentialsInvalid {
		t.Fatalf("unknown user code = %v, want CredentialsInvalid", errs.CodeOf(unknownUser))
	}
	if errs.CodeOf(wrongPassword) != errs.CodeCredentialsInvalid {
		t.Fatalf("wrong password code = %v, want CredentialsInvalid", errs.CodeOf(wrongPassword))
	}
}

func TestUpdateRole(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "x",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if err := service.UpdateRole(ctx, adminActor(), registered.ID, "project_manager"); err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}
	if got := store.users[registered.ID].Role; got != "project_manager" {
		t.Fatalf("role = %q, want project_manager", got)
	}

	err = service.UpdateRole(ctx, domain.Identity{Role: domain.RoleProjectManager}, registered.ID, "admin")
	if errs.CodeOf(err) != errs.CodeForbidden {
		t.Fatalf("UpdateRole by non-admin code = %v, want Forbidden", errs.CodeOf(err))
	}
	err = service.UpdateRole(ctx, adminActor(), registered.ID, "owner")
	if errs.CodeOf(err) != errs.CodeUserInvalidRole {
		t.Fatalf("UpdateRole invalid role code = %v, want UserInvalidRole", errs.CodeOf(err))
	}
}

func TestUpdateProfile(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "x",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	actor := domain.Identity{UserID: registered.ID, Role: domain.RoleTeamMember}
	updated, err := service.UpdateProfile(ctx, actor, "ada.l", "ada.l@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Username != "ada.l" || updated.Email != "ada.l@example.com" {
		t.Fatalf("UpdateProfile = %+v", updated)
	}
}

func TestListTeamMembers(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	for _, name := range []string{"ada", "grace"} {
		if _, err := service.Register(ctx, RegisterInput{
			Username: name, Email: name + "@example.com", Password: "x",
		}); err != nil {
			t.Fatalf("Register returned error: %v", err)
		}
	}
	first, err := service.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser returned error: %v", err)
	}
	if err := service.UpdateRole(ctx, adminActor(), first.ID, "admin"); err != nil {
		t.Fatalf("UpdateRole returned error: %v", err)
	}

	members, err := service.ListTeamMembers(ctx)
	if err != nil {
		t.Fatalf("ListTeamMembers returned error: %v", err)
	}
	if len(members) != 1 || members[0].Username != "grace" {
		t.Fatalf("ListTeamMembers = %+v, want just grace", members)
	}
}

func TestDeleteUser(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(t, store)
	ctx := context.Background()

	registered, err := service.Register(ctx, RegisterInput{
		Username: "ada", Email: "ada@example.com", Password: "x",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	err = service.DeleteUser(ctx, domain.Identity{Role: domain.RoleTeamMember}, registered.ID)
	if errs.CodeOf(err) != errs.CodeForbidden {
		t.Fatalf("DeleteUser by non-admin code = %v, want Forbidden", errs.CodeOf(err))
	}
	if err := service.DeleteUser(ctx, adminActor(), registered.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}
	if err := service.DeleteUser(ctx, adminActor(), registered.ID); errs.CodeOf(err) != errs.CodeUserNotFound {
		t.Fatalf("DeleteUser missing code = %v, want UserNotFound", errs.CodeOf(err))
	}
}
