package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hitoshi/memoboard/internal/model"
)

func strPtr(s string) *string { return &s }

// createTestUser はテスト用ユーザーを作成する。
func createTestUser(t *testing.T, repo *PostgresUserRepo, email string) *model.User {
	t.Helper()
	user := &model.User{Name: strPtr("Test " + email), Email: email}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("ユーザー作成に失敗: %v", err)
	}
	return user
}

func TestPostgresUserRepo_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "alice@example.com")
	if user.ID == 0 {
		t.Fatal("IDが採番されていない")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAtが設定されていない")
	}

	got, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got == nil {
		t.Fatal("作成したユーザーが取得できない")
	}
	if got.Email != "alice@example.com" || got.Name == nil || *got.Name != "Test alice@example.com" {
		t.Errorf("取得結果が不正: %+v", got)
	}
	if got.AuthID != nil {
		t.Errorf("AuthIDはNULLのはず: %v", *got.AuthID)
	}
}

func TestPostgresUserRepo_FindByID_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)

	got, err := repo.FindByID(context.Background(), 999999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("存在しないIDでnil以外が返った: %+v", got)
	}
}

func TestPostgresUserRepo_Create_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)

	createTestUser(t, repo, "dup@example.com")
	err := repo.Create(context.Background(), &model.User{Email: "dup@example.com"})
	if !IsUniqueViolation(err) {
		t.Errorf("一意制約違反が検出されない: %v", err)
	}
}

func TestPostgresUserRepo_FindMany_OrderByIDDesc(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)

	first := createTestUser(t, repo, "a@example.com")
	second := createTestUser(t, repo, "b@example.com")

	users, err := repo.FindMany(context.Background())
	if err != nil {
		t.Fatalf("FindMany: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	if users[0].ID != second.ID || users[1].ID != first.ID {
		t.Errorf("id降順になっていない: %d, %d", users[0].ID, users[1].ID)
	}
}

func TestPostgresUserRepo_UpsertByEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)
	ctx := context.Background()

	created, err := repo.UpsertByEmail(ctx, "google-1", "bob@example.com", strPtr("Bob"))
	if err != nil {
		t.Fatalf("UpsertByEmail: %v", err)
	}
	if created.AuthID == nil || *created.AuthID != "google-1" {
		t.Errorf("AuthIDが設定されていない: %+v", created)
	}

	// 既存ユーザーのname・emailは変更されない
	again, err := repo.UpsertByEmail(ctx, "google-1", "bob@example.com", strPtr("Robert"))
	if err != nil {
		t.Fatalf("UpsertByEmail(2回目): %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("同一emailで別ユーザーが作成された: %d != %d", again.ID, created.ID)
	}
	if again.Name == nil || *again.Name != "Bob" {
		t.Errorf("既存ユーザーのnameが変更された: %v", again.Name)
	}

	byAuth, err := repo.FindByAuthID(ctx, "google-1")
	if err != nil || byAuth == nil || byAuth.ID != created.ID {
		t.Errorf("FindByAuthID = %+v, %v", byAuth, err)
	}
}

// auth_id未設定の既存ユーザー（POST /api/users で作成）にはログイン時にauth_idが補完される
func TestPostgresUserRepo_UpsertByEmail_LinksExistingUser(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)

	existing := createTestUser(t, repo, "carol@example.com")

	got, err := repo.UpsertByEmail(context.Background(), "google-carol", "carol@example.com", strPtr("Carol"))
	if err != nil {
		t.Fatalf("UpsertByEmail: %v", err)
	}
	if got.ID != existing.ID {
		t.Errorf("ID = %d, want %d", got.ID, existing.ID)
	}
	if got.AuthID == nil || *got.AuthID != "google-carol" {
		t.Errorf("auth_idが補完されていない: %v", got.AuthID)
	}
}

func TestPostgresUserRepo_UpsertByEmail_Concurrent(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)

	const n = 8
	ids := make([]int64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := repo.UpsertByEmail(context.Background(), "google-race", "race@example.com", strPtr("Race"))
			errs[i] = err
			if u != nil {
				ids[i] = u.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("goroutine %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("同時ログインで異なるユーザーIDが返った: %d != %d", ids[i], ids[0])
		}
	}

	var count int
	if err := db.QueryRow(`SELECT count(*) FROM users WHERE email = 'race@example.com'`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("ユーザー行数 = %d, want 1", count)
	}
}

func TestPostgresUserRepo_DeleteByID(t *testing.T) {
	db := openTestDB(t)
	repo := NewPostgresUserRepo(db)
	ctx := context.Background()

	user := createTestUser(t, repo, "del@example.com")
	if err := repo.DeleteByID(ctx, user.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if err := repo.DeleteByID(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("2回目の削除でErrNotFoundが返らない: %v", err)
	}
}
