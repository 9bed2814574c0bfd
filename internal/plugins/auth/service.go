package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/argon2"

	"github.com/courtside-app/courtside/internal/apperror"
)

// Redis key prefixes for session data and logout confirmation nonces.
const (
	sessionKeyPrefix = "session:"
	nonceKeyPrefix   = "nonce:logout:"
)

// sessionTokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const sessionTokenBytes = 32

// nonceBytes is the number of random bytes in a logout confirmation nonce.
const nonceBytes = 16

// argon2id parameters for a platform running on modest hardware. These
// follow OWASP recommendations for argon2id: memory=64MB, iterations=3,
// parallelism=4.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024 // 64 MB in KiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// ProfileCreator creates the marketplace profile row that accompanies a new
// account. Implemented by the parents plugin; kept as an interface here so
// auth does not import marketplace packages.
type ProfileCreator interface {
	CreateParentProfile(ctx context.Context, userID, displayName string) error
}

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, session *Session, err error)
	ValidateSession(ctx context.Context, token string) (*Session, error)
	DestroySession(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, current, updated string) error

	// Logout confirmation nonces: single-use, time-limited, bound to the
	// account that requested them.
	IssueLogoutNonce(ctx context.Context, userID string) (string, error)
	ConsumeLogoutNonce(ctx context.Context, nonce, userID string) (bool, error)
}

// authService implements AuthService with argon2id hashing and Redis sessions.
type authService struct {
	repo        UserRepository
	redis       *redis.Client
	roles       RoleResolver
	profiles    ProfileCreator
	sessionTTL  time.Duration
	rememberTTL time.Duration
	nonceTTL    time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(
	repo UserRepository,
	rdb *redis.Client,
	roles RoleResolver,
	profiles ProfileCreator,
	sessionTTL, rememberTTL, nonceTTL time.Duration,
) AuthService {
	return &authService{
		repo:        repo,
		redis:       rdb,
		roles:       roles,
		profiles:    profiles,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		nonceTTL:    nonceTTL,
	}
}

// Register creates a new parent account. It validates uniqueness, hashes the
// password with argon2id, persists the user, and creates the parent profile.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	// Hash the password with argon2id (memory-hard, GPU-resistant).
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	// New self-registered accounts are parents; trainer profiles are
	// provisioned through onboarding, not registration.
	if s.profiles != nil {
		if err := s.profiles.CreateParentProfile(ctx, user.ID, user.DisplayName); err != nil {
			return nil, apperror.NewInternal(fmt.Errorf("creating parent profile: %w", err))
		}
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by email and password. On success it resolves
// the account role, creates a session in Redis, and returns the session
// token for the cookie. Credential failures are returned as *LoginError so
// the handler can carry the code back to the login page.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, *Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := mail.ParseAddress(email); err != nil {
		return "", nil, &LoginError{Code: CodeInvalidEmail}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", nil, &LoginError{Code: CodeInvalidUsername}
		}
		return "", nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	// Verify the password against the stored argon2id hash.
	if !verifyPassword(input.Password, user.PasswordHash) {
		return "", nil, &LoginError{Code: CodeIncorrectPassword}
	}

	// Resolve the role once; it rides in the session from here on.
	role := RoleParent
	if s.roles != nil {
		role, err = s.roles.Resolve(ctx, user.ID)
		if err != nil {
			return "", nil, apperror.NewInternal(fmt.Errorf("resolving role: %w", err))
		}
	}

	token, session, err := s.createSession(ctx, user, role, input.Remember)
	if err != nil {
		return "", nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	// Update the user's last login timestamp (fire-and-forget, non-critical).
	if err := s.repo.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("role", string(role)),
	)

	return token, session, nil
}

// ValidateSession looks up a session token in Redis and returns the session
// data if it exists and hasn't expired.
func (s *authService) ValidateSession(ctx context.Context, token string) (*Session, error) {
	key := sessionKeyPrefix + token

	data, err := s.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, apperror.NewUnauthorized("session expired or invalid")
	}
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading session from Redis: %w", err))
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("unmarshaling session: %w", err))
	}

	return &session, nil
}

// DestroySession removes a session from Redis, effectively logging the user out.
func (s *authService) DestroySession(ctx context.Context, token string) error {
	key := sessionKeyPrefix + token

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		return apperror.NewInternal(fmt.Errorf("deleting session from Redis: %w", err))
	}

	return nil
}

// ChangePassword verifies the current password and replaces it with a new
// argon2id hash. Callers are expected to destroy the session afterwards so
// the user re-authenticates with the new credential.
func (s *authService) ChangePassword(ctx context.Context, userID, current, updated string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(current, user.PasswordHash) {
		return apperror.NewUnauthorized("current password is incorrect")
	}

	hash, err := hashPassword(updated)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return apperror.NewInternal(fmt.Errorf("updating password: %w", err))
	}

	slog.Info("password changed", slog.String("user_id", userID))
	return nil
}

// IssueLogoutNonce mints a single-use token bound to the given account and
// stores it in Redis with a short TTL. The logout confirmation page embeds
// it; performing the logout requires presenting it back.
func (s *authService) IssueLogoutNonce(ctx context.Context, userID string) (string, error) {
	b := make([]byte, nonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	nonce := hex.EncodeToString(b)

	key := nonceKeyPrefix + nonce
	if err := s.redis.Set(ctx, key, userID, s.nonceTTL).Err(); err != nil {
		return "", fmt.Errorf("storing nonce: %w", err)
	}

	return nonce, nil
}

// ConsumeLogoutNonce atomically fetches and deletes a nonce, then checks it
// is bound to the given account. A nonce can therefore only ever be spent
// once, valid or not.
func (s *authService) ConsumeLogoutNonce(ctx context.Context, nonce, userID string) (bool, error) {
	if nonce == "" {
		return false, nil
	}

	boundTo, err := s.redis.GetDel(ctx, nonceKeyPrefix+nonce).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("consuming nonce: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(boundTo), []byte(userID)) == 1, nil
}

// createSession generates a random session token and stores the session data
// in Redis. Remembered sessions get the long TTL.
func (s *authService) createSession(ctx context.Context, user *User, role Role, remember bool) (string, *Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return "", nil, fmt.Errorf("generating session token: %w", err)
	}

	session := &Session{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.DisplayName,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", nil, fmt.Errorf("marshaling session: %w", err)
	}

	ttl := s.sessionTTL
	if remember {
		ttl = s.rememberTTL
	}

	key := sessionKeyPrefix + token
	if err := s.redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return "", nil, fmt.Errorf("storing session in Redis: %w", err)
	}

	return token, session, nil
}

// --- Password Hashing (argon2id) ---

// hashPassword creates an argon2id hash of the given password. The output
// format is: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
// This format is compatible with most argon2 libraries and allows self-
// contained verification without separate salt storage.
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Encode to the standard PHC string format.
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, b64Salt, b64Hash)

	return encoded, nil
}

// verifyPassword checks a plaintext password against an argon2id hash string.
// Returns true if the password matches.
func verifyPassword(password, encodedHash string) bool {
	// Parse the encoded hash to extract parameters, salt, and hash.
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false
	}

	var memory uint32
	var iterations uint32
	var parallelism uint8
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism)
	if err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	// Compute the hash of the provided password with the same parameters.
	computedHash := argon2.IDKey([]byte(password), salt, iterations, memory, parallelism, uint32(len(expectedHash)))

	// Constant-time comparison to prevent timing attacks.
	return subtle.ConstantTimeCompare(expectedHash, computedHash) == 1
}

// generateSessionToken creates a cryptographically random hex-encoded token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
