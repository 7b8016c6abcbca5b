package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/codexlibris/bookshop/internal/apperror"
	"github.com/codexlibris/bookshop/internal/token"
)

// Redis key prefixes. `auth:<userId>` holds the currently accepted token,
// `otp:<email>` holds a pending password-reset code.
const (
	sessionKeyPrefix = "auth:"
	otpKeyPrefix     = "otp:"
)

// otpDigits is the length of generated reset codes.
const otpDigits = 6

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (user *User, tokenStr string, err error)
	Logout(ctx context.Context, userID string) error
	ForgetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	VerifySession(ctx context.Context, tokenStr string) (*token.Claims, error)
}

// authService implements AuthService with bcrypt hashing, JWT tokens, and
// Redis-backed revocable sessions.
type authService struct {
	repo       UserRepository
	redis      *redis.Client
	tokens     *token.Manager
	sessionTTL time.Duration
	otpTTL     time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, rdb *redis.Client, tokens *token.Manager, sessionTTL, otpTTL time.Duration) AuthService {
	return &authService{
		repo:       repo,
		redis:      rdb,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		otpTTL:     otpTTL,
	}
}

// Register creates a new account. The email/username pre-check is a fast
// path for a friendly message; the UNIQUE constraints settle races. When
// both fields collide, the email conflict is reported.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	emailTaken, usernameTaken, err := s.repo.IdentityTaken(ctx, email, username)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking identity: %w", err))
	}
	if emailTaken {
		return nil, apperror.NewConflict("email already exists")
	}
	if usernameTaken {
		return nil, apperror.NewConflict("username already exists")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates by username or email. On success it signs a fresh
// token and overwrites the user's session entry -- any previous token for
// the same user silently stops working (one session per user, last write
// wins).
func (s *authService) Login(ctx context.Context, input LoginInput) (*User, string, error) {
	user, err := s.repo.FindByUsernameOrEmail(ctx, strings.TrimSpace(input.UsernameOrEmail))
	if err != nil {
		// Don't reveal whether the identifier exists -- generic message.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return nil, "", apperror.NewUnauthorized("invalid username/email or password")
		}
		return nil, "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, "", apperror.NewUnauthorized("invalid username/email or password")
	}

	tokenStr, err := s.tokens.Sign(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, "", apperror.NewInternal(fmt.Errorf("signing token: %w", err))
	}

	key := sessionKeyPrefix + user.ID
	if err := s.redis.Set(ctx, key, tokenStr, s.sessionTTL).Err(); err != nil {
		return nil, "", apperror.NewInternal(fmt.Errorf("storing session: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, tokenStr, nil
}

// Logout deletes the session entry, revoking the current token. Reports an
// error when there was nothing to revoke.
func (s *authService) Logout(ctx context.Context, userID string) error {
	deleted, err := s.redis.Del(ctx, sessionKeyPrefix+userID).Result()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session: %w", err))
	}
	if deleted == 0 {
		return apperror.NewBadRequest("user already logged out or session expired")
	}

	slog.Info("user logged out", slog.String("user_id", userID))

	return nil
}

// ForgetPassword stores a short-lived one-time code for the account's
// email. The code travels out-of-band (email delivery is out of scope);
// it is never returned to the caller.
func (s *authService) ForgetPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := s.repo.FindByEmail(ctx, email); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	otp, err := generateOTP()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("generating otp: %w", err))
	}

	if err := s.redis.Set(ctx, otpKeyPrefix+email, otp, s.otpTTL).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("storing otp: %w", err))
	}

	slog.Info("password reset requested", slog.String("email", email))

	return nil
}

// ResetPassword consumes a pending one-time code and sets a new password.
// The code is deleted on success so it can never be replayed.
func (s *authService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	key := otpKeyPrefix + email

	stored, err := s.redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return apperror.NewBadRequest("OTP expired or not found")
	}
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("reading otp: %w", err))
	}

	if stored != otp {
		return apperror.NewUnauthorized("invalid OTP")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	if err := s.repo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("updating password: %w", err))
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		// The password already changed; a lingering OTP only matters until
		// its TTL runs out. Log and move on.
		slog.Warn("failed to delete consumed otp",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	slog.Info("password reset completed", slog.String("email", email))

	return nil
}

// ChangePassword re-verifies the current password before accepting the new one.
func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(oldPassword, user.PasswordHash) {
		return apperror.NewUnauthorized("old password is incorrect")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("updating password: %w", err))
	}

	slog.Info("password changed", slog.String("user_id", userID))

	return nil
}

// VerifySession validates a bearer token: the signature must check out AND
// the token must exactly match the cached entry for the embedded user.
// Either failure is a generic unauthorized -- callers can't distinguish a
// forged token from a revoked one.
func (s *authService) VerifySession(ctx context.Context, tokenStr string) (*token.Claims, error) {
	claims, err := s.tokens.Verify(tokenStr)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid token")
	}

	stored, err := s.redis.Get(ctx, sessionKeyPrefix+claims.UserID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading session: %w", err))
	}
	if stored != tokenStr {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}

	return claims, nil
}

// --- Password hashing (bcrypt) ---

// hashPassword creates a bcrypt hash of the given password.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword checks a plaintext password against a bcrypt hash.
// bcrypt's comparison is constant-time.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// generateOTP returns a random zero-padded numeric code.
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
