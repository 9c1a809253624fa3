package usecase

import (
	"context"
	stderrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/infrastructure/cache"
	"dukkan/internal/infrastructure/ratelimit"
	"dukkan/pkg/auth"
	"dukkan/pkg/errors"
)

type authFixture struct {
	store *repository.Store
	auth  *AuthUseCase
	users *UserUseCase
	sms   *stubSMS
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := newStore()
	codes := cache.NewMemoryStore()
	limiter := ratelimit.NewRateLimiter(codes, ratelimit.Policy{Limit: 100, Window: time.Minute}).
		WithPolicy(ActionLogin, ratelimit.Policy{Limit: 3, Window: time.Minute})
	sms := &stubSMS{}

	return &authFixture{
		store: store,
		auth:  NewAuthUseCase(store.Users, auth.NewTokenManager("test-secret", 3600), limiter, codes, sms, 10*time.Minute),
		users: NewUserUseCase(store.Users),
		sms:   sms,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	res, err := f.auth.Register(ctx, RegisterInput{Name: "علي", Phone: "0770 123-4567", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "07701234567", res.User.Phone)
	assert.Equal(t, entity.RoleCustomer, res.User.Role)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	_, err = f.auth.Register(ctx, RegisterInput{Name: "آخر", Phone: "07701234567", Password: "secret2"})
	assert.True(t, errors.Is(err, "CONFLICT"))

	login, err := f.auth.Login(ctx, "07701234567", "secret1")
	require.NoError(t, err)

	user, err := f.auth.Authenticate(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)

	_, err = f.auth.Login(ctx, "07701234567", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLoginIsThrottled(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.auth.Register(ctx, RegisterInput{Name: "علي", Phone: "07701234567", Password: "secret1"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = f.auth.Login(ctx, "07701234567", "wrong")
		assert.True(t, errors.Is(err, "UNAUTHORIZED"))
	}
	_, err = f.auth.Login(ctx, "07701234567", "secret1")
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestForceLogoutRevokesTokens(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	res, err := f.auth.Register(ctx, RegisterInput{Name: "علي", Phone: "07701234567", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.users.ForceLogout(ctx, res.User.ID)
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, res.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	fresh, err := f.auth.Login(ctx, "07701234567", "secret1")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, fresh.Token)
	assert.NoError(t, err)
}

func TestBanBlocksLoginUntilExpiry(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	admin := addUser(t, f.store, "admin", "07800000000", entity.RoleAdmin)
	res, err := f.auth.Register(ctx, RegisterInput{Name: "علي", Phone: "07701234567", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.users.Ban(ctx, admin, BanInput{UserID: res.User.ID, Days: ptr(1), Reason: "spam"})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, "07701234567", "secret1")
	assert.True(t, errors.Is(err, "USER_BANNED"))
	_, err = f.auth.Authenticate(ctx, res.Token)
	assert.Error(t, err)

	f.auth.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = f.auth.Login(ctx, "07701234567", "secret1")
	require.NoError(t, err)

	user, err := f.store.Users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.False(t, user.IsBanned)
}

func TestBanSelfRefused(t *testing.T) {
	f := newAuthFixture(t)
	admin := addUser(t, f.store, "admin", "07800000000", entity.RoleAdmin)

	_, err := f.users.Ban(context.Background(), admin, BanInput{UserID: admin.ID})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLiftExpiredBans(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	admin := addUser(t, f.store, "admin", "07800000000", entity.RoleAdmin)
	addUser(t, f.store, "u1", "07700000001", entity.RoleCustomer)
	addUser(t, f.store, "u2", "07700000002", entity.RoleCustomer)

	_, err := f.users.Ban(ctx, admin, BanInput{UserID: "u1", Days: ptr(1)})
	require.NoError(t, err)
	_, err = f.users.Ban(ctx, admin, BanInput{UserID: "u2"})
	require.NoError(t, err)

	f.users.now = func() time.Time { return time.Now().Add(72 * time.Hour) }
	lifted, err := f.users.LiftExpiredBans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, lifted)

	u2, _ := f.store.Users.GetByID(ctx, "u2")
	assert.True(t, u2.IsBanned)
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	res, err := f.auth.Register(ctx, RegisterInput{Name: "علي", Phone: "07701234567", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, f.auth.SendResetCode(ctx, "07701234567"))
	code := regexp.MustCompile(`\d{6}`).FindString(f.sms.messages["07701234567"])
	require.Len(t, code, 6)

	assert.True(t, errors.Is(f.auth.VerifyResetCode(ctx, "07701234567", "000000x"), "INVALID_CODE"))
	require.NoError(t, f.auth.VerifyResetCode(ctx, "07701234567", code))
	require.NoError(t, f.auth.ResetPassword(ctx, "07701234567", code, "newpass1"))

	// old sessions end and the code is single use
	_, err = f.auth.Authenticate(ctx, res.Token)
	assert.Error(t, err)
	assert.True(t, errors.Is(f.auth.ResetPassword(ctx, "07701234567", code, "again1"), "INVALID_CODE"))

	_, err = f.auth.Login(ctx, "07701234567", "newpass1")
	assert.NoError(t, err)
}

func TestSendResetCodeUnknownPhone(t *testing.T) {
	f := newAuthFixture(t)
	err := f.auth.SendResetCode(context.Background(), "07709999999")
	assert.True(t, errors.IsNotFound(err))
}

func TestUserUpdateScopes(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	admin := addUser(t, f.store, "admin", "07800000000", entity.RoleAdmin)
	u1 := addUser(t, f.store, "u1", "07700000001", entity.RoleCustomer)
	addUser(t, f.store, "u2", "07700000002", entity.RoleCustomer)

	_, err := f.users.Update(ctx, u1, "u2", UpdateUserInput{Name: ptr("x")})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// role changes from non-admins are ignored
	updated, err := f.users.Update(ctx, u1, "u1", UpdateUserInput{Name: ptr("جديد"), Role: ptr(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "جديد", updated.Name)
	assert.Equal(t, entity.RoleCustomer, updated.Role)

	_, err = f.users.Update(ctx, u1, "u1", UpdateUserInput{Phone: ptr("07700000002")})
	assert.True(t, errors.Is(err, "CONFLICT"))

	promoted, err := f.users.Update(ctx, admin, "u1", UpdateUserInput{Role: ptr(entity.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)
	assert.Equal(t, 1, promoted.TokenVersion)
}

type resetFailingLimiter struct{ resets int }

func (l *resetFailingLimiter) Allow(ctx context.Context, subject, action string) (bool, time.Duration, error) {
	return true, 0, nil
}

func (l *resetFailingLimiter) Reset(ctx context.Context, subject, action string) error {
	l.resets++
	return stderrors.New("limiter store down")
}

func TestUnsentResetCodeIsDiscarded(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	codes := cache.NewMemoryStore()
	sms := &stubSMS{err: stderrors.New("gateway timeout")}
	uc := NewAuthUseCase(store.Users, auth.NewTokenManager("test-secret", 3600), &resetFailingLimiter{}, codes, sms, 10*time.Minute)
	addUser(t, store, "u1", "07701234567", entity.RoleCustomer)

	err := uc.SendResetCode(ctx, "07701234567")
	assert.True(t, errors.Is(err, "SERVICE_UNAVAILABLE"))

	_, err = codes.Get(ctx, resetCodeKey("07701234567"))
	assert.ErrorIs(t, err, cache.ErrMiss)
}

func TestResetPasswordSurvivesLimiterFailure(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	codes := cache.NewMemoryStore()
	limiter := &resetFailingLimiter{}
	uc := NewAuthUseCase(store.Users, auth.NewTokenManager("test-secret", 3600), limiter, codes, &stubSMS{}, 10*time.Minute)
	addUser(t, store, "u1", "07701234567", entity.RoleCustomer)

	require.NoError(t, codes.Set(ctx, resetCodeKey("07701234567"), "123456", time.Minute))
	require.NoError(t, uc.ResetPassword(ctx, "07701234567", "123456", "newpass1"))
	assert.Equal(t, 1, limiter.resets)

	_, err := uc.Login(ctx, "07701234567", "newpass1")
	assert.NoError(t, err)
}
