package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/clock"
	"github.com/mistauth/mist/internal/pkg/goerror"
	"github.com/mistauth/mist/internal/pkg/goroutine"
	"github.com/mistauth/mist/internal/pkg/hash"
	"github.com/mistauth/mist/internal/pkg/idempotency"
	"github.com/mistauth/mist/internal/pkg/instrument"
	"github.com/mistauth/mist/internal/pkg/jwt"
	"github.com/mistauth/mist/internal/pkg/otp"
	"github.com/mistauth/mist/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	mu     sync.Mutex
	users  map[string]*entity.User
	otps   map[int64]*entity.Otp
	tokens []entity.Token
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users: make(map[string]*entity.User),
		otps:  make(map[int64]*entity.Otp),
	}
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeRepo) GetOtpByUserID(_ context.Context, userID int64) (*entity.Otp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.otps[userID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) CreateUserWithOtp(_ context.Context, user entity.User, code entity.Otp) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[user.Email]; ok {
		return goerror.ErrConflict
	}
	f.users[user.Email] = &user
	f.otps[user.ID] = &code
	return nil
}

func (f *fakeRepo) RenewOtp(_ context.Context, code entity.Otp) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.otps[code.UserID] = &code
	return nil
}

func (f *fakeRepo) ReplaceUserTokens(_ context.Context, userID int64, token entity.Token) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tokens {
		if f.tokens[i].UserID == userID && !f.tokens[i].Expired && !f.tokens[i].Revoked {
			f.tokens[i].Expired = true
			f.tokens[i].Revoked = true
		}
	}
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeRepo) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tokens {
		if f.tokens[i].UserID == userID && !f.tokens[i].Expired && !f.tokens[i].Revoked {
			f.tokens[i].Expired = true
			f.tokens[i].Revoked = true
		}
	}
	return nil
}

func (f *fakeRepo) UpdateUserProfile(_ context.Context, patch entity.PatchUser) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.ID != patch.ID {
			continue
		}
		if patch.FirstName != "" {
			user.FirstName = patch.FirstName
		}
		if patch.LastName != "" {
			user.LastName = patch.LastName
		}
		if patch.BirthDate != nil {
			user.BirthDate = patch.BirthDate
		}
		if patch.BirthPlace != "" {
			user.BirthPlace = patch.BirthPlace
		}
		return nil
	}
	return goerror.ErrNotFound
}

func (f *fakeRepo) liveTokens(userID int64) []entity.Token {
	f.mu.Lock()
	defer f.mu.Unlock()

	var live []entity.Token
	for _, tok := range f.tokens {
		if tok.UserID == userID && !tok.Expired && !tok.Revoked {
			live = append(live, tok)
		}
	}
	return live
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string // "email:code"
}

func (f *fakeNotifier) SendOtpEmail(_ context.Context, email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, email+":"+code)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sent)
}

type fakeIdemp struct{}

func (fakeIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (fakeIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (fakeIdemp) Release(context.Context, string) error { return nil }

func (fakeIdemp) Exec(ctx context.Context, _ string, fn func(context.Context) error, _ ...idempotency.Option) error {
	return fn(ctx)
}

type fakeNumberID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	return f.next
}

type fakeStringID struct{}

func (fakeStringID) Generate() string { return "0198c0de-0000-7000-8000-000000000001" }

type testEnv struct {
	uc        *Usecase
	repo      *fakeRepo
	notifier  *fakeNotifier
	goroutine *goroutine.Manager
	bcrypt    hash.Hash
	otp       otp.OTP
	jwt       jwt.JWT
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := clock.New()
	hasher := hash.NewBcrypt(bcrypt.MinCost, "")
	codes := otp.NewNumeric(time.Minute)

	signer, err := jwt.NewHS256(jwt.Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "mist",
		Audiences:  []string{"mist-web"},
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Clock:      clk,
		UUID:       fakeStringID{},
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}

	repo := newFakeRepo()
	notif := &fakeNotifier{}
	mgr := goroutine.NewManager(4)

	uc := New(Dependency{
		RepoDB:       repo,
		RepoNotifier: notif,
		Idempotency:  fakeIdemp{},
		Validator:    v,
		Bcrypt:       hasher,
		UID:          &fakeNumberID{},
		Otp:          codes,
		Clock:        clk,
		JWT:          signer,
		Instrument:   instrument.NewNoop(),
		Goroutine:    mgr,
	})

	return &testEnv{
		uc:        uc,
		repo:      repo,
		notifier:  notif,
		goroutine: mgr,
		bcrypt:    hasher,
		otp:       codes,
		jwt:       signer,
	}
}

// seedUser inserts a user with a hashed password and returns the entity.
func (e *testEnv) seedUser(t *testing.T, email, password string) *entity.User {
	t.Helper()

	hashed, err := e.bcrypt.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &entity.User{
		ID:        int64(len(e.repo.users) + 1000),
		Email:     email,
		Password:  string(hashed),
		FirstName: "Jane",
		LastName:  "Doe",
		Role:      entity.RoleUser,
	}
	e.repo.mu.Lock()
	e.repo.users[email] = user
	e.repo.mu.Unlock()

	return user
}

// seedOtp stores a hashed code for the user with the given expiry.
func (e *testEnv) seedOtp(t *testing.T, userID int64, code string, expiresAt time.Time) {
	t.Helper()

	hashed, err := e.bcrypt.Hash(code)
	if err != nil {
		t.Fatalf("failed to hash otp: %v", err)
	}

	e.repo.mu.Lock()
	e.repo.otps[userID] = &entity.Otp{
		UserID:    userID,
		Code:      string(hashed),
		CreatedAt: time.Now().UnixMilli(),
		ExpiresAt: expiresAt.UnixMilli(),
	}
	e.repo.mu.Unlock()
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.Register(t.Context(), RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "Jane@Example.com",
			Password:  "hunter22",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		user, err := env.repo.GetUserByEmail(t.Context(), "jane@example.com")
		if err != nil {
			t.Fatalf("expected user stored under normalized email: %v", err)
		}
		if user.Role != entity.RoleUser {
			t.Fatalf("expected default role USER, got %v", user.Role)
		}
		if user.Password == "hunter22" {
			t.Fatal("expected stored password to be hashed")
		}

		rec, err := env.repo.GetOtpByUserID(t.Context(), user.ID)
		if err != nil {
			t.Fatalf("expected otp stored alongside user: %v", err)
		}
		if rec.ExpiresAt <= time.Now().UnixMilli() {
			t.Fatal("expected otp expiry in the future")
		}

		if err := env.goroutine.Wait(); err != nil {
			t.Fatalf("unexpected goroutine error: %v", err)
		}
		if env.notifier.count() != 1 {
			t.Fatalf("expected one otp email, got %d", env.notifier.count())
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		err := env.uc.Register(t.Context(), RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Password:  "hunter22",
		})

		// Assert
		assertCode(t, err, goerror.CodeConflict)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.Register(t.Context(), RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Password:  "short",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("UnknownRoleDefaultsToUser", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.Register(t.Context(), RegisterInput{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Password:  "hunter22",
			Role:      entity.Role(42),
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		user, _ := env.repo.GetUserByEmail(t.Context(), "jane@example.com")
		if user.Role != entity.RoleUser {
			t.Fatalf("expected role USER, got %v", user.Role)
		}
	})
}

func TestLoginPassword(t *testing.T) {
	t.Run("PartialOnSuccess", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		out, err := env.uc.Login(t.Context(), LoginInput{
			Email:    "jane@example.com",
			Password: "hunter22",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != entity.AuthStatusPartial {
			t.Fatalf("expected partial status, got %v", out.Status)
		}
		if out.AccessToken != "" || out.RefreshToken != "" {
			t.Fatal("expected no tokens until the second factor clears")
		}
		if len(out.Authorities) != 0 {
			t.Fatalf("expected no authorities yet, got %v", out.Authorities)
		}

		if _, err := env.repo.GetOtpByUserID(t.Context(), user.ID); err != nil {
			t.Fatalf("expected a fresh otp stored: %v", err)
		}

		if err := env.goroutine.Wait(); err != nil {
			t.Fatalf("unexpected goroutine error: %v", err)
		}
		if env.notifier.count() != 1 {
			t.Fatalf("expected one otp email, got %d", env.notifier.count())
		}
	})

	t.Run("OtpRenewedOnEveryAttempt", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		env.seedOtp(t, user.ID, "1234", time.Now().Add(time.Minute))
		before, _ := env.repo.GetOtpByUserID(t.Context(), user.ID)

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email:    "jane@example.com",
			Password: "hunter22",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		after, _ := env.repo.GetOtpByUserID(t.Context(), user.ID)
		if before.Code == after.Code {
			t.Fatal("expected the stored otp to be replaced")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email:    "jane@example.com",
			Password: "wrong-password",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email:    "nobody@example.com",
			Password: "hunter22",
		})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("AmbiguousBoth", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email:    "jane@example.com",
			Password: "hunter22",
			Otp:      "1234",
		})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("AmbiguousNeither", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{Email: "jane@example.com"})

		// Assert
		assertCode(t, err, goerror.CodeInvalidInput)
	})
}

func TestLoginOtp(t *testing.T) {
	t.Run("FullOnSuccess", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		env.seedOtp(t, user.ID, "1234", time.Now().Add(time.Minute))

		// Act
		out, err := env.uc.Login(t.Context(), LoginInput{
			Email: "jane@example.com",
			Otp:   "1234",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Status != entity.AuthStatusFull {
			t.Fatalf("expected full status, got %v", out.Status)
		}
		if out.AccessToken == "" || out.RefreshToken == "" {
			t.Fatal("expected tokens after the second factor")
		}
		if len(out.Authorities) != 1 || out.Authorities[0] != "ROLE_USER" {
			t.Fatalf("unexpected authorities %v", out.Authorities)
		}

		live := env.repo.liveTokens(user.ID)
		if len(live) != 1 || live[0].Token != out.AccessToken {
			t.Fatalf("expected exactly the new access token live, got %+v", live)
		}

		claims, err := env.jwt.Verify(out.AccessToken)
		if err != nil {
			t.Fatalf("expected a verifiable access token: %v", err)
		}
		if claims.Subject != "jane@example.com" {
			t.Fatalf("expected subject to carry the email, got %q", claims.Subject)
		}
	})

	t.Run("RevokesPriorTokens", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		env.seedOtp(t, user.ID, "1234", time.Now().Add(time.Minute))
		env.repo.tokens = append(env.repo.tokens, entity.Token{
			ID: 1, UserID: user.ID, Token: "stale", Type: entity.TokenTypeBearer,
		})

		// Act
		out, err := env.uc.Login(t.Context(), LoginInput{
			Email: "jane@example.com",
			Otp:   "1234",
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		live := env.repo.liveTokens(user.ID)
		if len(live) != 1 || live[0].Token != out.AccessToken {
			t.Fatalf("expected the stale token revoked, got %+v", live)
		}
	})

	t.Run("ExpiredCodeRejectedEvenWhenCorrect", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		env.seedOtp(t, user.ID, "1234", time.Now().Add(-time.Second))

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email: "jane@example.com",
			Otp:   "1234",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("WrongCode", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		env.seedOtp(t, user.ID, "1234", time.Now().Add(time.Minute))

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email: "jane@example.com",
			Otp:   "9999",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("NoOtpIssued", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		_, err := env.uc.Login(t.Context(), LoginInput{
			Email: "jane@example.com",
			Otp:   "1234",
		})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("ReturnsRefreshUnchanged", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		refresh, err := env.jwt.GenerateRefresh(user.ID, user.Email)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		out, err := env.uc.RefreshToken(t.Context(), RefreshTokenInput{RefreshToken: refresh})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.RefreshToken != refresh {
			t.Fatal("expected the refresh token returned unchanged")
		}
		if out.AccessToken == "" || out.AccessToken == refresh {
			t.Fatal("expected a fresh access token")
		}

		live := env.repo.liveTokens(user.ID)
		if len(live) != 1 || live[0].Token != out.AccessToken {
			t.Fatalf("expected exactly the new access token live, got %+v", live)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		_, err := env.uc.RefreshToken(t.Context(), RefreshTokenInput{RefreshToken: "garbage"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("UserGone", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		refresh, err := env.jwt.GenerateRefresh(99, "ghost@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		_, err = env.uc.RefreshToken(t.Context(), RefreshTokenInput{RefreshToken: refresh})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	t.Run("RevokesAllAndIsIdempotent", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		access, err := env.jwt.GenerateAccess(user.ID, user.Email)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		env.repo.tokens = append(env.repo.tokens,
			entity.Token{ID: 1, UserID: user.ID, Token: access, Type: entity.TokenTypeBearer},
			entity.Token{ID: 2, UserID: user.ID, Token: "older", Type: entity.TokenTypeBearer},
		)

		// Act
		err = env.uc.Logout(t.Context(), LogoutInput{AccessToken: access})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if live := env.repo.liveTokens(user.ID); len(live) != 0 {
			t.Fatalf("expected all tokens revoked, got %+v", live)
		}

		// A second logout flips no flags and still succeeds.
		if err := env.uc.Logout(t.Context(), LogoutInput{AccessToken: access}); err != nil {
			t.Fatalf("expected idempotent logout, got %v", err)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		err := env.uc.Logout(t.Context(), LogoutInput{AccessToken: "garbage"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestCheck(t *testing.T) {
	t.Run("WithClaims", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		ctx := jwt.SetAuth(t.Context(), jwt.Claims{UserID: 7})

		// Act
		out, err := env.uc.Check(ctx)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_ = out
	})

	t.Run("WithoutClaims", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		_, err := env.uc.Check(t.Context())

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestUserEdit(t *testing.T) {
	t.Run("PartialUpdate", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		user := env.seedUser(t, "jane@example.com", "hunter22")
		ctx := jwt.SetAuth(t.Context(), func() jwt.Claims {
			clm := jwt.Claims{UserID: user.ID}
			clm.Subject = user.Email
			return clm
		}())

		// Act
		out, err := env.uc.UserEdit(ctx, UserEditInput{FirstName: "Janet"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.FirstName != "Janet" {
			t.Fatalf("expected first name updated, got %q", out.FirstName)
		}
		if out.LastName != "Doe" {
			t.Fatalf("expected last name untouched, got %q", out.LastName)
		}

		stored, _ := env.repo.GetUserByEmail(t.Context(), user.Email)
		if stored.FirstName != "Janet" || stored.LastName != "Doe" {
			t.Fatalf("expected only first name persisted, got %+v", stored)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		_, err := env.uc.UserEdit(t.Context(), UserEditInput{FirstName: "Janet"})

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestUserDetail(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)
		env.seedUser(t, "jane@example.com", "hunter22")

		// Act
		out, err := env.uc.UserDetail(t.Context(), UserDetailInput{Email: "Jane@Example.com"})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Email != "jane@example.com" || out.Role != "USER" {
			t.Fatalf("unexpected detail %+v", out)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		// Arrange
		env := newTestEnv(t)

		// Act
		_, err := env.uc.UserDetail(t.Context(), UserDetailInput{Email: "ghost@example.com"})

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error")
	}

	gerr, ok := err.(*goerror.Error)
	if !ok {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (%v)", want, gerr.Code(), err)
	}
}
