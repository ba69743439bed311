package user

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"

	"github.com/hitoshi/memoboard/internal/model"
	"github.com/hitoshi/memoboard/internal/repository"
)

// --- モック ---

type mockUserRepo struct {
	findByIDFn   func(ctx context.Context, id int64) (*model.User, error)
	findManyFn   func(ctx context.Context) ([]*model.User, error)
	createFn     func(ctx context.Context, user *model.User) error
	deleteByIDFn func(ctx context.Context, id int64) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByAuthID(ctx context.Context, authID string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) FindMany(ctx context.Context) ([]*model.User, error) {
	if m.findManyFn != nil {
		return m.findManyFn(ctx)
	}
	return []*model.User{}, nil
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = 1
	return nil
}
func (m *mockUserRepo) UpsertByEmail(ctx context.Context, authID, email string, name *string) (*model.User, error) {
	return nil, nil
}
func (m *mockUserRepo) DeleteByID(ctx context.Context, id int64) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

type mockSessionDeleter struct {
	deleteByUserIDFn func(ctx context.Context, userID int64) error
}

func (m *mockSessionDeleter) DeleteByUserID(ctx context.Context, userID int64) error {
	return m.deleteByUserIDFn(ctx, userID)
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func assertAPIError(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError with code %s, got %v", code, err)
	}
	if apiErr.Code != code {
		t.Errorf("Code = %q, want %q", apiErr.Code, code)
	}
}

// --- テスト ---

// TestService_Withdraw は退会処理がセッションとユーザーを削除することを検証する。
func TestService_Withdraw(t *testing.T) {
	var calls []string

	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "test@example.com"}, nil
		},
		deleteByIDFn: func(ctx context.Context, id int64) error {
			calls = append(calls, "user")
			return nil
		},
	}
	sessions := &mockSessionDeleter{
		deleteByUserIDFn: func(ctx context.Context, userID int64) error {
			calls = append(calls, "sessions")
			return nil
		},
	}

	svc := NewService(userRepo, sessions)

	if err := svc.Withdraw(context.Background(), 1); err != nil {
		t.Fatalf("Withdraw returned error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "sessions" || calls[1] != "user" {
		t.Errorf("削除順序が不正: %v", calls)
	}
}

// TestService_Withdraw_UserNotFound は存在しないユーザーの退会が404になることを検証する。
func TestService_Withdraw_UserNotFound(t *testing.T) {
	svc := NewService(&mockUserRepo{}, nil)

	err := svc.Withdraw(context.Background(), 99)
	assertAPIError(t, err, model.ErrCodeUserNotFound)
}

// TestService_Withdraw_SessionDeleteError はセッション削除失敗時にユーザーを削除しないことを検証する。
func TestService_Withdraw_SessionDeleteError(t *testing.T) {
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
		deleteByIDFn: func(ctx context.Context, id int64) error {
			t.Fatal("セッション削除失敗後にユーザーが削除された")
			return nil
		},
	}
	sessions := &mockSessionDeleter{
		deleteByUserIDFn: func(ctx context.Context, userID int64) error {
			return errors.New("db error")
		},
	}

	if err := NewService(userRepo, sessions).Withdraw(context.Background(), 1); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestService_Create(t *testing.T) {
	var saved *model.User
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u *model.User) error {
			saved = u
			u.ID = 5
			return nil
		},
	}

	u, err := NewService(repo, nil).Create(context.Background(), CreateInput{Name: " Alice ", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID != 5 || saved.Name == nil || *saved.Name != "Alice" || saved.AuthID != nil {
		t.Errorf("user = %+v", saved)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc := NewService(&mockUserRepo{}, nil)

	for _, in := range []CreateInput{{Email: "a@example.com"}, {Name: "a"}, {Name: " ", Email: " "}} {
		_, err := svc.Create(context.Background(), in)
		assertAPIError(t, err, model.ErrCodeValidationFailed)
	}
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(context.Context, *model.User) error {
			return &pq.Error{Code: "23505"}
		},
	}

	_, err := NewService(repo, nil).Create(context.Background(), CreateInput{Name: "a", Email: "dup@example.com"})
	assertAPIError(t, err, model.ErrCodeDuplicateEmail)
}

func TestService_Get(t *testing.T) {
	repo := &mockUserRepo{
		findByIDFn: func(_ context.Context, id int64) (*model.User, error) {
			if id == 1 {
				return &model.User{ID: 1}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(repo, nil)

	if _, err := svc.Get(context.Background(), 1); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	_, err := svc.Get(context.Background(), 2)
	assertAPIError(t, err, model.ErrCodeUserNotFound)
}
