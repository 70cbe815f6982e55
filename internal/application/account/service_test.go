package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"task-prompt-api/internal/domain/entity"
	"task-prompt-api/internal/domain/repository"
	apperrors "task-prompt-api/pkg/errors"
	"task-prompt-api/pkg/utils"
)

type memUserRepo struct {
	users     map[string]*entity.User
	lastLogin map[string]bool
	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, lastLogin: map[string]bool{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	u.ID = uuid.NewString()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *memUserRepo) List(context.Context, repository.Pagination) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) UpdateLastLogin(_ context.Context, id string) error {
	r.lastLogin[id] = true
	return nil
}

func (r *memUserRepo) LockForUpdate(context.Context, string) error { return nil }

func newTestService() (*Service, *memUserRepo, *utils.JWTManager) {
	repo := newMemUserRepo()
	jwtManager := utils.NewJWTManager("test-secret", "task-prompt-api", time.Hour)
	return NewService(repo, NewTokenIssuer(jwtManager)), repo, jwtManager
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Register(ctx, " Alice@Example.com ", "Alice", "correct horse", false)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" || user.PasswordHash == "correct horse" {
		t.Fatalf("unexpected user: %+v", user)
	}

	_, err = svc.Register(ctx, "alice@example.com", "Again", "another password", false)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("duplicate email err = %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := []struct {
		name, email, password string
	}{
		{"short password", "bob@example.com", "short"},
		{"bad email", "not-an-email", "long enough"},
		{"password over 72 bytes", "bob@example.com", strings.Repeat("€", 30)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.email, "Bob", tc.password, false)
			if !errors.Is(err, apperrors.ErrInvalidParam) {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestRegisterRaceMapsToConflict(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.createErr = repository.ErrDuplicate

	_, err := svc.Register(context.Background(), "carol@example.com", "Carol", "long enough", false)
	if !errors.Is(err, apperrors.ErrConflict) {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, repo, jwtManager := newTestService()
	ctx := context.Background()
	user, err := svc.Register(ctx, "dave@example.com", "Dave", "hunter2hunter2", false)
	if err != nil {
		t.Fatal(err)
	}

	_, token, err := svc.Authenticate(ctx, "DAVE@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	claims, err := jwtManager.ParseToken(token)
	if err != nil || claims.UserID() != user.ID || claims.Email != user.Email {
		t.Fatalf("claims = %+v, err = %v", claims, err)
	}
	if !repo.lastLogin[user.ID] {
		t.Fatal("last login not updated")
	}

	for _, tc := range []struct{ email, password string }{
		{"dave@example.com", "wrong password"},
		{"nobody@example.com", "hunter2hunter2"},
	} {
		if _, _, err := svc.Authenticate(ctx, tc.email, tc.password); !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("%s: err = %v", tc.email, err)
		}
	}
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	first, created, err := svc.EnsureAdmin(ctx, "admin@example.com", "Admin", "admin-password")
	if err != nil || !created || !first.IsAdmin {
		t.Fatalf("first: %+v created=%v err=%v", first, created, err)
	}
	second, created, err := svc.EnsureAdmin(ctx, "admin@example.com", "Admin", "admin-password")
	if err != nil || created || second.ID != first.ID {
		t.Fatalf("second: %+v created=%v err=%v", second, created, err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("users = %d", len(repo.users))
	}
}

func TestGetAndDeleteUnknownUser(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Get(ctx, "missing"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("Get err = %v", err)
	}
	if err := svc.Delete(ctx, "missing"); !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Fatalf("Delete err = %v", err)
	}
}
