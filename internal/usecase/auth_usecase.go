package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	stderrors "errors"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dukkan/internal/domain/entity"
	"dukkan/internal/domain/repository"
	"dukkan/internal/domain/service"
	"dukkan/internal/infrastructure/cache"
	"dukkan/pkg/auth"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
)

const (
	ActionLogin      = "login"
	ActionResetCode  = "reset_code"
	ActionVerifyCode = "verify_code"
)

var errInvalidCredentials = errors.Unauthorized("Invalid phone number or password", nil)
var errInvalidCode = errors.New("INVALID_CODE", "Reset code is invalid or expired", http.StatusBadRequest, nil)

type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	limiter  RateLimiter
	codes    cache.Store
	sms      service.SMSService
	codeTTL  time.Duration
	now      func() time.Time
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	limiter RateLimiter,
	codes cache.Store,
	sms service.SMSService,
	codeTTL time.Duration,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		limiter:  limiter,
		codes:    codes,
		sms:      sms,
		codeTTL:  codeTTL,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Phone    string `json:"phone" validate:"required,min=7,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	token, err := uc.tokens.Generate(user.ID, user.Role, user.TokenVersion)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Internal("Failed to hash password", err)
	}
	return string(hash), nil
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	phone := normalizePhone(input.Phone)

	if _, err := uc.userRepo.GetByPhone(ctx, phone); err == nil {
		return nil, errors.Conflict("Phone number already registered")
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap("Failed to check phone number", err)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	user := &entity.User{
		ID:           generateUUID(),
		Name:         input.Name,
		Phone:        phone,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         entity.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap("Failed to create user record", err)
	}

	logger.Info("Registered user %s", user.ID)
	return uc.issue(user)
}

func (uc *AuthUseCase) throttle(ctx context.Context, subject, action string) error {
	ok, wait, err := uc.limiter.Allow(ctx, subject, action)
	if err != nil {
		// a broken limiter store must not lock everyone out
		logger.Warn("Rate limiter unavailable for %s: %v", action, err)
		return nil
	}
	if !ok {
		return errors.TooManyRequests(fmt.Sprintf("Too many attempts, try again in %d seconds", int(wait.Seconds())))
	}
	return nil
}

func (uc *AuthUseCase) Login(ctx context.Context, phone, password string) (*AuthResult, error) {
	phone = normalizePhone(phone)
	if err := uc.throttle(ctx, phone, ActionLogin); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errInvalidCredentials
		}
		return nil, errors.Wrap("Failed to load user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errInvalidCredentials
	}

	now := uc.now()
	if user.BanActive(now) {
		return nil, banError(user)
	}
	if user.IsBanned {
		clearBan(user)
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, errors.Wrap("Failed to lift expired ban", err)
		}
	}

	if err := uc.limiter.Reset(ctx, phone, ActionLogin); err != nil {
		logger.Warn("Failed to reset login limiter for %s: %v", phone, err)
	}
	return uc.issue(user)
}

func banError(user *entity.User) error {
	msg := "Account is banned"
	if user.BanReason != "" {
		msg += ": " + user.BanReason
	}
	if user.BannedUntil != nil {
		msg += " until " + user.BannedUntil.Format(time.RFC3339)
	}
	return errors.New("USER_BANNED", msg, http.StatusForbidden, nil)
}

func clearBan(user *entity.User) {
	user.IsBanned = false
	user.BanReason = ""
	user.BannedUntil = nil
}

func (uc *AuthUseCase) CheckUser(ctx context.Context, phone string) (bool, error) {
	_, err := uc.userRepo.GetByPhone(ctx, normalizePhone(phone))
	if err == nil {
		return true, nil
	}
	if errors.IsNotFound(err) {
		return false, nil
	}
	return false, errors.Wrap("Failed to check phone number", err)
}

func resetCodeKey(phone string) string {
	return "reset:" + phone
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (uc *AuthUseCase) SendResetCode(ctx context.Context, phone string) error {
	phone = normalizePhone(phone)
	if err := uc.throttle(ctx, phone, ActionResetCode); err != nil {
		return err
	}

	if _, err := uc.userRepo.GetByPhone(ctx, phone); err != nil {
		if errors.IsNotFound(err) {
			return errors.NotFound("User", err)
		}
		return errors.Wrap("Failed to load user", err)
	}

	code, err := newResetCode()
	if err != nil {
		return errors.Internal("Failed to generate reset code", err)
	}
	if err := uc.codes.Set(ctx, resetCodeKey(phone), code, uc.codeTTL); err != nil {
		return errors.Internal("Failed to store reset code", err)
	}

	message := fmt.Sprintf("رمز إعادة تعيين كلمة المرور: %s", code)
	if err := uc.sms.Send(ctx, phone, message); err != nil {
		if delErr := uc.codes.Delete(ctx, resetCodeKey(phone)); delErr != nil {
			logger.Warn("Failed to delete unsent reset code for %s: %v", phone, delErr)
		}
		return errors.Unavailable("Failed to send reset code", err)
	}
	return nil
}

func (uc *AuthUseCase) checkCode(ctx context.Context, phone, code string) error {
	if err := uc.throttle(ctx, phone, ActionVerifyCode); err != nil {
		return err
	}

	stored, err := uc.codes.Get(ctx, resetCodeKey(phone))
	if err != nil {
		if stderrors.Is(err, cache.ErrMiss) {
			return errInvalidCode
		}
		return errors.Internal("Failed to read reset code", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return errInvalidCode
	}
	return nil
}

func (uc *AuthUseCase) VerifyResetCode(ctx context.Context, phone, code string) error {
	return uc.checkCode(ctx, normalizePhone(phone), code)
}

// ResetPassword consumes the code and signs the user out of every session.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	phone = normalizePhone(phone)
	if err := uc.checkCode(ctx, phone, code); err != nil {
		return err
	}

	user, err := uc.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		return errors.Wrap("Failed to load user", err)
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.TokenVersion++
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap("Failed to update password", err)
	}

	if err := uc.codes.Delete(ctx, resetCodeKey(phone)); err != nil {
		logger.Warn("Failed to delete reset code for %s: %v", phone, err)
	}
	if err := uc.limiter.Reset(ctx, phone, ActionLogin); err != nil {
		logger.Warn("Failed to reset login limiter for %s: %v", phone, err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user. Tokens minted before the user's last
// force-logout or password reset are rejected, and so are banned users.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return nil, errors.Unauthorized("Invalid or expired token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthorized("User no longer exists", err)
		}
		return nil, errors.Wrap("Failed to load user", err)
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, errors.Unauthorized("Session has been revoked", nil)
	}
	if user.BanActive(uc.now()) {
		return nil, banError(user)
	}
	return user, nil
}

func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}
