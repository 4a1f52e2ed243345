package services

import (
	"context"
	"crypto/rand"
	"fairfoul_server/database"
	"fairfoul_server/lib"
	"fairfoul_server/structs"
	"fairfoul_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

func (as *AuthService) Login(authRequest *structs.AuthRequest) (*tables.User, error) {
	startTime := time.Now()
	user, err := database.Query[tables.User](as.db).Where("email", authRequest.Email).First(context.Background())
	if err != nil {
		mappedErr := lib.MapPgError(err)

		as.logger.Debug("Database query during login",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("error_detail", lib.GetDetailForLogging(mappedErr)),
		)

		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
				gecho.Field("original_error", err),
			)
		}

		// Always return invalid credentials (don't leak user existence)
		return nil, lib.ErrInvalidCredentials
	}

	// First() returns nil, nil for no results
	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", authRequest.Email))
		return nil, lib.ErrInvalidCredentials
	}

	if !user.IsActive {
		as.logger.Warn("Login attempt on deactivated account", gecho.Field("user_id", user.Id))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(authRequest.Password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", authRequest.Email),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User logged in successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	cacheErr := as.cacheService.SetUserInCache(user)
	if cacheErr != nil {
		as.logger.Warn("Failed to set user in cache after login", gecho.Field("error", cacheErr), gecho.Field("user_id", user.Id))
	}

	return user, nil
}

func (as *AuthService) Register(registerRequest *structs.RegisterRequest) (*tables.User, error) {
	startTime := time.Now()
	passwordHash, err := as.HashPassword(registerRequest.Password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}
	user := &tables.User{
		Username:     registerRequest.Username,
		Email:        registerRequest.Email,
		PasswordHash: passwordHash,
		FirstName:    registerRequest.FirstName,
		LastName:     registerRequest.LastName,
		PhoneNumber:  registerRequest.PhoneNumber,
		Role:         tables.RoleUser,
		IsActive:     true,
	}
	user, err = database.Query[tables.User](as.db).Insert(context.Background(), user)
	if err != nil {
		mappedErr := lib.MapPgError(err)

		// Log unique violations as warnings (user error)
		if lib.IsUniqueViolation(mappedErr) {
			as.logger.Warn("Registration failed - duplicate user",
				gecho.Field("username", registerRequest.Username),
				gecho.Field("email", registerRequest.Email),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", registerRequest.Username),
			)
		}

		return nil, mappedErr
	}

	elapsedTime := time.Since(startTime)
	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id), gecho.Field("elapsed_time_ms", elapsedTime.Milliseconds()))

	// Remove password hash before returning user
	user.PasswordHash = ""

	return user, nil
}

// HashPassword hashes a plain-text password and returns the encoded hash
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return lib.EncodeArgon2Hash(p.Memory, p.Time, p.Threads, salt, hash), nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	// Hash the input password with the same parameters
	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

// ChangePassword verifies the current password and replaces it with a new one
func (as *AuthService) ChangePassword(userId uuid.UUID, currentPassword, newPassword string) error {
	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		return lib.MapPgError(err)
	}
	if user == nil {
		return lib.ErrNotFound
	}

	valid, err := as.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !valid {
		as.logger.Debug("Change password rejected - wrong current password", gecho.Field("user_id", userId))
		return lib.ErrInvalidCredentials
	}

	newHash, err := as.HashPassword(newPassword, DefaultParams)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"password_hash": newHash,
		"updated_at":    time.Now(),
	}
	_, err = database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		return lib.MapPgError(err)
	}

	// Drop any stale cached copy
	if err := as.cacheService.DeleteUserFromCache(userId); err != nil {
		as.logger.Warn("Failed to evict user cache after password change", gecho.Field("error", err), gecho.Field("user_id", userId))
	}

	as.logger.Info("Password changed", gecho.Field("user_id", userId))
	return nil
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	secret := as.cfg.Auth.AccessTokenSecret

	now := time.Now()
	exp := as.GetAccessTokenExpiration()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Id.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.New().String(),
	})
	return token.SignedString([]byte(secret))
}

// GetAccessTokenExpiration returns the expiration time for access tokens
func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

// GenerateRefreshToken generates a JWT refresh token for the given user
func (as *AuthService) GenerateRefreshToken(user *tables.User) (string, error) {
	secret := as.cfg.Auth.RefreshTokenSecret

	now := time.Now()
	exp := as.GetRefreshTokenExpiration()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.Id.String(),
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
		"jti":   uuid.New().String(),
	})
	return token.SignedString([]byte(secret))
}

// GetRefreshTokenExpiration returns the expiration time for refresh tokens
func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

// RefreshAccessToken validates a refresh token and issues a fresh token pair.
// The used refresh token is blacklisted so it cannot be replayed.
func (as *AuthService) RefreshAccessToken(refreshToken string) (*tables.AuthResponse, error) {
	claims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
	if err != nil {
		as.logger.Error("Failed to parse refresh token", gecho.Field("error", err))
		return nil, lib.ErrInvalidToken
	}

	if time.Now().After(claims.Exp) {
		as.logger.Warn("Refresh token has expired", gecho.Field("exp", claims.Exp))
		return nil, lib.ErrExpiredToken
	}

	isBlacklisted, err := as.cacheService.IsTokenBlacklisted(claims.Jti)
	if err != nil {
		as.logger.Error("Failed to check if token is blacklisted", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
		return nil, err
	}

	if isBlacklisted {
		as.logger.Warn("Refresh token is blacklisted", gecho.Field("jti", claims.Jti))
		return nil, lib.ErrInvalidToken
	}

	user, err := as.GetUserByID(claims.Sub)
	if err != nil {
		as.logger.Error("Failed to get user by ID during token refresh", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, lib.ErrInvalidToken
	}

	newAccessToken, err := as.GenerateAccessToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new access token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	newRefreshToken, err := as.GenerateRefreshToken(user)
	if err != nil {
		as.logger.Error("Failed to generate new refresh token during refresh", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		return nil, err
	}

	// Rotate: the old refresh token is single-use
	if err := as.cacheService.BlacklistToken(claims.Jti, claims.Exp); err != nil {
		as.logger.Warn("Failed to blacklist rotated refresh token", gecho.Field("error", err), gecho.Field("jti", claims.Jti))
	}

	return &tables.AuthResponse{
		User:         user,
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (as *AuthService) GetUserByID(userId uuid.UUID) (*tables.User, error) {
	// Try to get user from cache first
	cachedUser, err := as.cacheService.GetUserFromCache(userId)
	if err != nil {
		as.logger.Warn("Failed to get user from cache", gecho.Field("error", err), gecho.Field("user_id", userId))
	} else if cachedUser != nil {
		as.logger.Debug("User retrieved from cache", gecho.Field("user_id", userId))
		return cachedUser, nil
	}

	// Cache miss - fetch user from database
	user, err := database.Query[tables.User](as.db).Where("id", userId).First(context.Background())
	if err != nil {
		as.logger.Error("Failed to find user by ID", gecho.Field("error", err), gecho.Field("user_id", userId))
		return nil, lib.MapPgError(err)
	}

	// Cache the user asynchronously
	go func() {
		if err := as.cacheService.SetUserInCache(user); err != nil {
			as.logger.Warn("Failed to cache user after DB fetch", gecho.Field("error", err), gecho.Field("user_id", userId))
		}
	}()

	return user, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetRefreshTokenSecret() string {
	return as.cfg.Auth.RefreshTokenSecret
}

func (as *AuthService) UpdateLastLogin(userId uuid.UUID) error {
	updates := map[string]any{
		"last_login": time.Now(),
	}
	_, err := database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		return lib.MapPgError(err)
	}
	return nil
}

// VerifyEmail consumes a verification token and marks the user's email verified
func (as *AuthService) VerifyEmail(userId uuid.UUID, token string) error {
	verification, err := database.Query[tables.EmailVerification](as.db).
		Where("user_id", userId).
		Where("token", token).
		First(context.Background())
	if err != nil {
		as.logger.Error("Failed to find email verification record", gecho.Field("error", err), gecho.Field("user_id", userId))
		return lib.MapPgError(err)
	}
	if verification == nil {
		as.logger.Warn("Email verification record not found", gecho.Field("user_id", userId))
		return lib.ErrInvalidToken
	}

	if time.Now().After(verification.ExpiresAt) {
		as.logger.Warn("Email verification token has expired", gecho.Field("user_id", userId), gecho.Field("expires_at", verification.ExpiresAt))
		return lib.ErrExpiredToken
	}

	updates := map[string]any{
		"email_verified": true,
	}
	_, err = database.Query[tables.User](as.db).Where("id", userId).Update(context.Background(), updates)
	if err != nil {
		as.logger.Error("Failed to update user email verification status", gecho.Field("error", err), gecho.Field("user_id", userId))
		return lib.MapPgError(err)
	}

	_, err = database.Query[tables.EmailVerification](as.db).Where("id", verification.Id).Delete(context.Background())
	if err != nil {
		as.logger.Error("Failed to delete email verification record", gecho.Field("error", err), gecho.Field("user_id", userId))
		return lib.MapPgError(err)
	}

	as.logger.Info("Email verified successfully", gecho.Field("user_id", userId))
	return nil
}

// Logout blacklists both the access and refresh token jtis
func (as *AuthService) Logout(accessClaims *structs.AuthClaims, refreshToken string) error {
	if err := as.cacheService.BlacklistToken(accessClaims.Jti, accessClaims.Exp); err != nil {
		as.logger.Error("Failed to blacklist access token", gecho.Field("error", err), gecho.Field("jti", accessClaims.Jti))
		return err
	}

	if refreshToken != "" {
		refreshClaims, err := lib.ParseToken(refreshToken, as.cfg.Auth.RefreshTokenSecret)
		if err == nil {
			if err := as.cacheService.BlacklistToken(refreshClaims.Jti, refreshClaims.Exp); err != nil {
				as.logger.Warn("Failed to blacklist refresh token", gecho.Field("error", err), gecho.Field("jti", refreshClaims.Jti))
			}
		}
	}

	if err := as.cacheService.DeleteUserFromCache(accessClaims.Sub); err != nil {
		as.logger.Warn("Failed to evict user cache on logout", gecho.Field("error", err), gecho.Field("user_id", accessClaims.Sub))
	}

	return nil
}

// GetDB returns the database instance (helper method for accessing db)
func (as *AuthService) GetDB() *database.DB {
	return as.db
}
