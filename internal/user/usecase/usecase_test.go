package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/khairicode/storebite/internal/pkg/clock"
	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/pkg/hash"
	"github.com/khairicode/storebite/internal/pkg/instrument"
	"github.com/khairicode/storebite/internal/pkg/jwt"
	"github.com/khairicode/storebite/internal/pkg/validator"
	"github.com/khairicode/storebite/internal/user/entity"
)

type fakeRepo struct {
	users  map[int64]entity.User
	tokens map[string]entity.AccessToken // keyed by token ID (jti)

	createErr error
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:  map[int64]entity.User{},
		tokens: map[string]entity.AccessToken{},
	}
}

func (f *fakeRepo) ListUsers(_ context.Context, fl entity.ListFilter) ([]entity.User, int64, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) GetUser(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) ExistsUserByEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateUser(_ context.Context, u entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, u entity.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return goerror.ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.users[id]; !ok {
		return goerror.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) CreateAccessToken(_ context.Context, t entity.AccessToken) error {
	f.tokens[t.TokenID] = t
	return nil
}

func (f *fakeRepo) RevokeAllAccessTokens(_ context.Context, userID int64) error {
	for jti, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, jti)
		}
	}
	return nil
}

type nopEvents struct{}

func (nopEvents) UserRegistered(context.Context, entity.User) {}
func (nopEvents) UserLoggedIn(context.Context, int64)         {}
func (nopEvents) UserCreated(context.Context, entity.User)    {}
func (nopEvents) UserUpdated(context.Context, entity.User)    {}
func (nopEvents) UserDeleted(context.Context, int64)          {}

type seqJWT struct{ n int }

func (s *seqJWT) Generate(int64, string) (jwt.Token, error) {
	s.n++
	return jwt.Token{
		Value:     fmt.Sprintf("token-%d", s.n),
		ID:        fmt.Sprintf("jti-%d", s.n),
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (s *seqJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, jwt.ErrInvalidToken
}

type passthroughIdempotency struct{}

func (passthroughIdempotency) Exec(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

func newTestUsecase(t *testing.T, repo *fakeRepo) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	return New(Dependency{
		RepoDB:      repo,
		RepoEvent:   nopEvents{},
		Validator:   v,
		UID:         &seqID{next: 100},
		Clock:       clock.Fixed{T: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)},
		Bcrypt:      hash.NewBcrypt(bcrypt.MinCost, ""),
		JWT:         &seqJWT{},
		Idempotency: passthroughIdempotency{},
		Instrument:  instrument.NewNoop(),
	})
}

// logCapture records slog output so tests can assert on audit entries.
type logCapture struct {
	mu       sync.Mutex
	messages []string
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool { return true }

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, r.Message)
	return nil
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler { return c }

func (c *logCapture) WithGroup(string) slog.Handler { return c }

func (c *logCapture) has(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m == msg {
			return true
		}
	}
	return false
}

func captureLogs(t *testing.T) *logCapture {
	t.Helper()

	lc := &logCapture{}
	prev := slog.Default()
	slog.SetDefault(slog.New(lc))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return lc
}

func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error %v is not a *goerror.Error", err)
	}
	return gerr.StatusCode()
}

func seedUser(t *testing.T, repo *fakeRepo, id int64, email, password string) entity.User {
	t.Helper()

	digest, err := hash.NewBcrypt(bcrypt.MinCost, "").Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := entity.User{ID: id, Name: "Seeded", Email: email, Password: string(digest)}
	repo.users[id] = u
	return u
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUsecase(t, repo)

	out, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    "t@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if out.Token == "" {
		t.Fatal("expected a non-empty token")
	}
	if out.User.Email != "t@example.com" {
		t.Fatalf("email = %q", out.User.Email)
	}

	stored := repo.users[out.User.ID]
	if stored.Password == "password123" {
		t.Fatal("stored password must not be plaintext")
	}
	if !hash.NewBcrypt(bcrypt.MinCost, "").Verify(stored.Password, "password123") {
		t.Fatal("stored digest must verify against the plaintext")
	}
	if len(repo.tokens) != 1 {
		t.Fatalf("allow-list rows = %d, want 1", len(repo.tokens))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "whatever1")
	uc := newTestUsecase(t, repo)

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    "t@example.com",
		Password: "password123",
	})
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
	if len(repo.users) != 1 {
		t.Fatal("no new record must be persisted")
	}
}

func TestRegisterValidation(t *testing.T) {
	uc := newTestUsecase(t, newFakeRepo())

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    "not-an-email",
		Password: "short",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if _, ok := gerr.Fields()["email"]; !ok {
		t.Fatalf("expected email field error, got %v", gerr.Fields())
	}
	if _, ok := gerr.Fields()["password"]; !ok {
		t.Fatalf("expected password field error, got %v", gerr.Fields())
	}
}

func TestLoginWrongPasswordKeepsTokens(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	repo.tokens["existing-jti"] = entity.AccessToken{ID: 10, UserID: 1, TokenID: "existing-jti"}
	uc := newTestUsecase(t, repo)

	_, err := uc.Login(context.Background(), LoginInput{Email: "t@example.com", Password: "wrong-password"})
	if err == nil {
		t.Fatal("expected unauthorized")
	}
	if got := statusOf(t, err); got != 401 {
		t.Fatalf("status = %d, want 401", got)
	}
	if _, ok := repo.tokens["existing-jti"]; !ok {
		t.Fatal("failed login must not revoke existing tokens")
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	uc := newTestUsecase(t, newFakeRepo())

	_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "password123"})
	if got := statusOf(t, err); got != 401 {
		t.Fatalf("status = %d, want 401", got)
	}
}

func TestSecondLoginRevokesFirstToken(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	uc := newTestUsecase(t, repo)

	first, err := uc.Login(context.Background(), LoginInput{Email: "t@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	second, err := uc.Login(context.Background(), LoginInput{Email: "t@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	if first.Token == second.Token {
		t.Fatal("each login must issue a distinct token")
	}
	if len(repo.tokens) != 1 {
		t.Fatalf("active tokens = %d, want exactly 1 after second login", len(repo.tokens))
	}
	if _, ok := repo.tokens["jti-1"]; ok {
		t.Fatal("first token must be revoked by the second login")
	}
	if _, ok := repo.tokens["jti-2"]; !ok {
		t.Fatal("second token must remain active")
	}
}

func TestUserUpdateKeepsOwnEmail(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	uc := newTestUsecase(t, repo)

	email := "t@example.com"
	name := "Renamed"
	out, err := uc.UserUpdate(context.Background(), UserUpdateInput{ID: 1, Email: &email, Name: &name})
	if err != nil {
		t.Fatalf("UserUpdate with own email must succeed: %v", err)
	}
	if out.User.Name != "Renamed" {
		t.Fatalf("name = %q", out.User.Name)
	}
}

func TestUserUpdateDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "a@example.com", "password123")
	seedUser(t, repo, 2, "b@example.com", "password123")
	uc := newTestUsecase(t, repo)

	email := "a@example.com"
	_, err := uc.UserUpdate(context.Background(), UserUpdateInput{ID: 2, Email: &email})
	if got := statusOf(t, err); got != 422 {
		t.Fatalf("status = %d, want 422", got)
	}
}

func TestUserUpdateRehashesPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	uc := newTestUsecase(t, repo)

	password := "new-password-9"
	_, err := uc.UserUpdate(context.Background(), UserUpdateInput{ID: 1, Password: &password})
	if err != nil {
		t.Fatalf("UserUpdate: %v", err)
	}

	stored := repo.users[1]
	if stored.Password == password {
		t.Fatal("stored password must not be plaintext")
	}
	if !hash.NewBcrypt(bcrypt.MinCost, "").Verify(stored.Password, password) {
		t.Fatal("stored digest must verify against the new plaintext")
	}
}

func TestUserDeleteReferenced(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	repo.deleteErr = goerror.ErrReferenced
	uc := newTestUsecase(t, repo)

	err := uc.UserDelete(context.Background(), UserDeleteInput{ID: 1})
	if got := statusOf(t, err); got != 409 {
		t.Fatalf("status = %d, want 409", got)
	}
	if _, ok := repo.users[1]; !ok {
		t.Fatal("referenced user must remain present")
	}
}

func TestUserDetailNotFound(t *testing.T) {
	uc := newTestUsecase(t, newFakeRepo())

	_, err := uc.UserDetail(context.Background(), UserDetailInput{ID: 404})
	if got := statusOf(t, err); got != 404 {
		t.Fatalf("status = %d, want 404", got)
	}
}

func TestUserDeleteLogsSnapshot(t *testing.T) {
	logs := captureLogs(t)
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	uc := newTestUsecase(t, repo)

	if err := uc.UserDelete(context.Background(), UserDeleteInput{ID: 1}); err != nil {
		t.Fatalf("UserDelete: %v", err)
	}
	if !logs.has("user deleted") {
		t.Fatalf("expected a 'user deleted' audit log, got %v", logs.messages)
	}
}

func TestRegisterLogsAudit(t *testing.T) {
	logs := captureLogs(t)
	uc := newTestUsecase(t, newFakeRepo())

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    "audit@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !logs.has("user registered") {
		t.Fatalf("expected a 'user registered' audit log, got %v", logs.messages)
	}
}

func TestUserCreateAcceptsSixCharPassword(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUsecase(t, repo)

	_, err := uc.UserCreate(context.Background(), UserCreateInput{
		Name:     "Admin Made",
		Email:    "six@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("UserCreate with a 6-char password must succeed: %v", err)
	}
}

func TestRegisterRejectsSevenCharPassword(t *testing.T) {
	uc := newTestUsecase(t, newFakeRepo())

	_, err := uc.Register(context.Background(), RegisterInput{
		Name:     "Test",
		Email:    "seven@example.com",
		Password: "seven07",
	})
	if err == nil {
		t.Fatal("expected validation error, registration requires 8 characters")
	}
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("unexpected error type: %v", err)
	}
	if _, ok := gerr.Fields()["password"]; !ok {
		t.Fatalf("expected password field error, got %v", gerr.Fields())
	}
}

func TestUserUpdateAcceptsSixCharPassword(t *testing.T) {
	repo := newFakeRepo()
	seedUser(t, repo, 1, "t@example.com", "password123")
	uc := newTestUsecase(t, repo)

	password := "secret"
	if _, err := uc.UserUpdate(context.Background(), UserUpdateInput{ID: 1, Password: &password}); err != nil {
		t.Fatalf("UserUpdate with a 6-char password must succeed: %v", err)
	}
}

func TestUserCreateDoesNotIssueToken(t *testing.T) {
	repo := newFakeRepo()
	uc := newTestUsecase(t, repo)

	out, err := uc.UserCreate(context.Background(), UserCreateInput{
		Name:     "Admin Made",
		Email:    "admin-made@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("UserCreate: %v", err)
	}
	if out.User.ID == 0 {
		t.Fatal("expected generated id")
	}
	if len(repo.tokens) != 0 {
		t.Fatal("admin-created accounts must not receive tokens")
	}
}
