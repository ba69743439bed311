package auth

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hitoshi/memoboard/internal/model"
)

// memUserStore は同一emailを1件に集約するインメモリのResolverUserStore。
type memUserStore struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*model.User
	upserts int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byEmail: map[string]*model.User{}}
}

func (s *memUserStore) FindByAuthID(_ context.Context, authID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.AuthID != nil && *u.AuthID == authID {
			return u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) UpsertByEmail(_ context.Context, authID, email string, name *string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	if u, ok := s.byEmail[email]; ok {
		if u.AuthID == nil {
			u.AuthID = &authID
		}
		return u, nil
	}
	s.nextID++
	u := &model.User{ID: s.nextID, AuthID: &authID, Email: email, Name: name}
	s.byEmail[email] = u
	return u, nil
}

func TestResolver_Resolve_CreatesOnFirstSight(t *testing.T) {
	store := newMemUserStore()
	r := NewResolver(store)

	user, err := r.Resolve(context.Background(), ExternalIdentity{
		Provider: ProviderGoogle, ExternalID: "sub-1", Email: "new@example.com", Name: "New",
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if user.ID == 0 || user.Email != "new@example.com" {
		t.Errorf("user = %+v", user)
	}
	if user.Name == nil || *user.Name != "New" {
		t.Errorf("name = %v", user.Name)
	}
}

func TestResolver_Resolve_EmptyNameStoredAsNull(t *testing.T) {
	store := newMemUserStore()
	user, err := NewResolver(store).Resolve(context.Background(), ExternalIdentity{Provider: ProviderGoogle, ExternalID: "sub", Email: "x@example.com"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if user.Name != nil {
		t.Errorf("name should be nil, got %q", *user.Name)
	}
}

func TestResolver_Resolve_FastPathSkipsUpsert(t *testing.T) {
	store := newMemUserStore()
	r := NewResolver(store)
	ident := ExternalIdentity{Provider: ProviderGoogle, ExternalID: "sub-2", Email: "again@example.com"}

	first, err := r.Resolve(context.Background(), ident)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	second, err := r.Resolve(context.Background(), ident)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("同一IDで別ユーザーになった: %d != %d", first.ID, second.ID)
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want 1", store.upserts)
	}
}

func TestResolver_Resolve_ConcurrentSameEmail(t *testing.T) {
	store := newMemUserStore()
	r := NewResolver(store)

	const n = 16
	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := r.Resolve(context.Background(), ExternalIdentity{Provider: ProviderGoogle, ExternalID: "sub-race", Email: "race@example.com"})
			if err != nil {
				t.Errorf("Resolve() error = %v", err)
				return
			}
			ids[i] = u.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("同一emailで異なるユーザーIDが返った: %v", ids)
		}
	}
	if len(store.byEmail) != 1 {
		t.Errorf("users = %d, want 1", len(store.byEmail))
	}
}

// 同じsubでもIdPが異なれば別の外部IDとして扱う
func TestResolver_Resolve_NamespacesAuthIDByProvider(t *testing.T) {
	store := newMemUserStore()
	r := NewResolver(store)
	ctx := context.Background()

	googleUser, err := r.Resolve(ctx, ExternalIdentity{Provider: ProviderGoogle, ExternalID: "12345", Email: "google@example.com"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if googleUser.AuthID == nil || *googleUser.AuthID != "google:12345" {
		t.Errorf("AuthID = %v, want google:12345", googleUser.AuthID)
	}

	jwtUser, err := r.Resolve(ctx, ExternalIdentity{Provider: ProviderJWT, ExternalID: "12345", Email: "other@example.com"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if jwtUser.ID == googleUser.ID {
		t.Errorf("別IdPの同一subが同じユーザー(%d)に解決された", googleUser.ID)
	}
	if jwtUser.AuthID == nil || *jwtUser.AuthID != "jwt:12345" {
		t.Errorf("AuthID = %v, want jwt:12345", jwtUser.AuthID)
	}
}

func TestResolver_Resolve_InvalidIdentity(t *testing.T) {
	r := NewResolver(newMemUserStore())

	tests := []struct {
		name  string
		ident ExternalIdentity
	}{
		{"empty email", ExternalIdentity{Provider: ProviderGoogle, ExternalID: "sub"}},
		{"blank email", ExternalIdentity{Provider: ProviderGoogle, ExternalID: "sub", Email: "   "}},
		{"empty external id", ExternalIdentity{Provider: ProviderGoogle, Email: "a@example.com"}},
		{"empty provider", ExternalIdentity{ExternalID: "sub", Email: "a@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tt.ident)
			if !errors.Is(err, ErrInvalidIdentity) {
				t.Errorf("err = %v, want ErrInvalidIdentity", err)
			}
		})
	}
}

func TestResolver_Resolve_StoreError(t *testing.T) {
	store := &mockUserRepo{
		findByAuthIDFn: func(context.Context, string) (*model.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	_, err := NewResolver(store).Resolve(context.Background(), ExternalIdentity{Provider: ProviderGoogle, ExternalID: "s", Email: "e@example.com"})
	if err == nil || errors.Is(err, ErrInvalidIdentity) {
		t.Errorf("expected store error, got %v", err)
	}
}
