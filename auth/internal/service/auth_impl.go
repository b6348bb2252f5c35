package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"gym-server/auth/internal/config"
	"gym-server/shared/interfaces"
	"gym-server/shared/messaging"
	"gym-server/shared/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

const tokenIssuer = "gym-server-auth"

type authServiceImpl struct {
	userRepo    interfaces.UserRepository
	tokenRepo   interfaces.TokenRepository
	confirmRepo interfaces.ConfirmationTokenRepository
	publisher   interfaces.EventPublisher
	cfg         *config.Config
	logger      *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(
	userRepo interfaces.UserRepository,
	tokenRepo interfaces.TokenRepository,
	confirmRepo interfaces.ConfirmationTokenRepository,
	publisher interfaces.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		confirmRepo: confirmRepo,
		publisher:   publisher,
		cfg:         cfg,
		logger:      logger.Named("AuthService"),
		now:         time.Now,
	}
}

// Register creates a new user and publishes user.registered.
func (s *authServiceImpl) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	logFields := []zap.Field{zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("invalid email format: %w", models.ErrInvalidInput)
	}
	if in.Password == "" || strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Surname) == "" {
		return nil, fmt.Errorf("name, surname and password are required: %w", models.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return nil, models.ErrEmailAlreadyExists
	}

	hashedPassword, err := hashPassword(in.Password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(in.Name),
		Surname:      strings.TrimSpace(in.Surname),
		Phone:        in.Phone,
		Roles:        []string{models.RoleUser},
		Enabled:      !s.cfg.RequireConfirmation,
	}
	// дубликат email между проверкой и вставкой репозиторий вернет как ErrEmailAlreadyExists
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	var confirmationToken string
	if s.cfg.RequireConfirmation {
		ct := &models.ConfirmationToken{
			Token:     uuid.NewString(),
			UserID:    user.ID,
			ExpiresAt: s.now().Add(s.cfg.ConfirmationTTL),
		}
		if err := s.confirmRepo.Create(ctx, ct); err != nil {
			s.logger.Error("Failed to store confirmation token", zap.Stringer("userID", user.ID), zap.Error(err))
			return nil, fmt.Errorf("failed to store confirmation token: %w", err)
		}
		confirmationToken = ct.Token
	}

	s.publish(ctx, messaging.RoutingKeyUserRegistered, messaging.UserRegisteredPayload{
		UserID:            user.ID,
		Email:             user.Email,
		Name:              user.Name,
		Surname:           user.Surname,
		Phone:             user.Phone,
		ConfirmationToken: confirmationToken,
		Locale:            in.Locale,
	})

	s.logger.Info("User registered successfully", zap.Stringer("userID", user.ID), zap.Bool("enabled", user.Enabled))
	return user, nil
}

// Confirm включает учетную запись по токену из письма.
func (s *authServiceImpl) Confirm(ctx context.Context, token string) error {
	ct, err := s.confirmRepo.Get(ctx, token)
	if err != nil {
		return err
	}
	log := s.logger.With(zap.Stringer("userID", ct.UserID))

	if !s.now().Before(ct.ExpiresAt) {
		log.Warn("Confirmation token expired", zap.Time("expiresAt", ct.ExpiresAt))
		if delErr := s.confirmRepo.Delete(ctx, token); delErr != nil {
			log.Error("Failed to delete expired confirmation token", zap.Error(delErr))
		}
		return models.ErrTokenExpired
	}

	if err := s.userRepo.SetEnabled(ctx, ct.UserID, true); err != nil {
		log.Error("Failed to enable user", zap.Error(err))
		return err
	}
	if err := s.confirmRepo.Delete(ctx, token); err != nil {
		// пользователь уже включен, токен удалит очистка
		log.Error("Failed to delete used confirmation token", zap.Error(err))
	}

	log.Info("User confirmed email")
	return nil
}

// Login authenticates a user and returns token details.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.TokenDetails, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login attempt", zap.String("email", email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("email", email))
			return nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid password", zap.Stringer("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}
	if user.IsBanned {
		// причину не раскрываем
		s.logger.Warn("Login failed: user is banned", zap.Stringer("userID", user.ID))
		return nil, models.ErrInvalidCredentials
	}
	if !user.Enabled {
		s.logger.Warn("Login failed: email not confirmed", zap.Stringer("userID", user.ID))
		return nil, models.ErrUserNotEnabled
	}

	td, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User logged in successfully", zap.Stringer("userID", user.ID))
	return td, nil
}

// Logout removes the access and refresh tokens from the store.
func (s *authServiceImpl) Logout(ctx context.Context, userID uuid.UUID, accessUUID, refreshUUID string) error {
	log := s.logger.With(zap.Stringer("userID", userID), zap.String("accessUUID", accessUUID))
	deletedCount, err := s.tokenRepo.DeleteTokens(ctx, userID, accessUUID, refreshUUID)
	if err != nil {
		// токены могли уже истечь, клиенту ошибку не отдаем
		log.Error("Failed to delete tokens during logout", zap.Error(err))
		return nil
	}
	if deletedCount > 0 {
		log.Info("Tokens deleted during logout", zap.Int64("deletedCount", deletedCount))
	} else {
		log.Info("No tokens found to delete during logout (already expired or logged out)")
	}
	return nil
}

// Refresh issues a new token pair for a valid refresh token and revokes the old one.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshTokenString string) (*models.TokenDetails, error) {
	claims, err := s.parseUserToken(refreshTokenString)
	if err != nil {
		s.logger.Warn("Refresh attempt with invalid token", zap.Error(err))
		return nil, err
	}
	if claims.TokenType != models.TokenTypeRefresh {
		s.logger.Warn("Refresh attempt with non-refresh token", zap.Stringer("userID", claims.UserID))
		return nil, models.ErrTokenInvalid
	}

	refreshUUID := claims.ID
	log := s.logger.With(zap.Stringer("userID", claims.UserID), zap.String("refreshUUID", refreshUUID))

	// старый refresh-токен гасится до выпуска новой пары: повтор получит ErrTokenNotFound
	storedUserID, err := s.tokenRepo.ConsumeRefreshUUID(ctx, refreshUUID)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			log.Warn("Refresh attempt with revoked or already used token")
			return nil, models.ErrTokenNotFound
		}
		log.Error("Failed to consume refresh token", zap.Error(err))
		return nil, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if storedUserID != claims.UserID {
		log.Error("Refresh token user ID mismatch", zap.Stringer("repoUserID", storedUserID))
		return nil, models.ErrTokenInvalid
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get user for refresh: %w", err)
	}
	if user.IsBanned {
		log.Warn("Refresh attempt by banned user")
		_, _ = s.tokenRepo.DeleteTokensByUserID(ctx, user.ID)
		return nil, models.ErrUserBanned
	}

	td, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	log.Info("Token refreshed successfully")
	return td, nil
}

// VerifyAccessToken parses an access token and checks it was not revoked.
func (s *authServiceImpl) VerifyAccessToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims, err := s.parseUserToken(tokenString)
	if err != nil {
		s.logger.Debug("Access token verification failed", zap.Error(err))
		return nil, err
	}
	if claims.TokenType == models.TokenTypeRefresh {
		return nil, models.ErrTokenInvalid
	}

	if _, err := s.tokenRepo.GetUserIDByAccessUUID(ctx, claims.ID); err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			s.logger.Debug("Access token not found in store (revoked/logged out)", zap.String("accessUUID", claims.ID))
			return nil, models.ErrTokenInvalid
		}
		s.logger.Error("Error checking access token existence via repository", zap.Error(err))
		return nil, fmt.Errorf("error checking access token existence: %w", err)
	}
	return claims, nil
}

// ParseRefreshUUID извлекает jti refresh-токена для logout. Просроченный токен допустим.
func (s *authServiceImpl) ParseRefreshUUID(refreshToken string) (string, error) {
	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(refreshToken, claims, s.userKeyFunc, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return "", models.ErrTokenMalformed
		}
		return "", models.ErrTokenInvalid
	}
	if claims.ID == "" || claims.TokenType != models.TokenTypeRefresh {
		return "", models.ErrTokenInvalid
	}
	return claims.ID, nil
}

func (s *authServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ChangePassword меняет пароль после проверки текущего и отзывает все токены.
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	log := s.logger.With(zap.Stringer("userID", userID))

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPasswordHash(oldPassword, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Password change rejected: old password mismatch")
		return models.ErrInvalidCredentials
	}

	newHash, err := hashPassword(newPassword, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return err
	}

	s.revokeAll(ctx, userID, "password change")
	log.Info("User password changed")
	return nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	return s.userRepo.ListUsers(ctx, cursor, limit)
}

// UpdateRoles заменяет роли пользователя. ROLE_USER сохраняется всегда.
func (s *authServiceImpl) UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) ([]string, error) {
	normalized, err := models.ValidateRoles(roles)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateRoles(ctx, userID, normalized); err != nil {
		return nil, err
	}

	// старые токены несут старые роли
	s.revokeAll(ctx, userID, "roles change")
	s.publish(ctx, messaging.RoutingKeyUserRolesChanged, messaging.UserRolesChangedPayload{
		UserID: userID,
		Roles:  normalized,
	})

	s.logger.Info("User roles updated", zap.Stringer("userID", userID), zap.Strings("roles", normalized))
	return normalized, nil
}

// BanUser sets the user's status to banned and revokes tokens.
func (s *authServiceImpl) BanUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.SetUserBanStatus(ctx, userID, true); err != nil {
		s.logger.Error("Failed to set user ban status", zap.Stringer("userID", userID), zap.Error(err))
		return err
	}
	s.revokeAll(ctx, userID, "ban")
	s.logger.Info("User banned", zap.Stringer("userID", userID))
	return nil
}

// UnbanUser sets the user's status to not banned.
func (s *authServiceImpl) UnbanUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.SetUserBanStatus(ctx, userID, false); err != nil {
		s.logger.Error("Failed to reset user ban status", zap.Stringer("userID", userID), zap.Error(err))
		return err
	}
	s.logger.Info("User unbanned", zap.Stringer("userID", userID))
	return nil
}

// GenerateInterServiceToken creates a short-lived JWT for inter-service communication.
func (s *authServiceImpl) GenerateInterServiceToken(ctx context.Context, serviceName string) (string, error) {
	serviceName = strings.TrimSpace(serviceName)
	if serviceName == "" {
		return "", fmt.Errorf("service name is required: %w", models.ErrInvalidInput)
	}

	now := s.now()
	claims := &models.InterServiceClaims{
		ServiceName: serviceName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.ServiceID,
			Subject:   serviceName,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.InterServiceTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.InterServiceSecret))
	if err != nil {
		s.logger.Error("Failed to sign inter-service token", zap.Error(err), zap.String("serviceName", serviceName))
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	s.logger.Debug("Inter-service token issued", zap.String("serviceName", serviceName))
	return signed, nil
}

// VerifyInterServiceToken validates an inter-service token and returns the calling service name.
func (s *authServiceImpl) VerifyInterServiceToken(ctx context.Context, tokenString string) (string, error) {
	claims := &models.InterServiceClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.InterServiceSecret), nil
	})
	if err != nil {
		s.logger.Warn("Inter-service token verification failed", zap.Error(err))
		return "", mapJWTError(err)
	}
	if claims.ServiceName == "" {
		return "", models.ErrTokenInvalid
	}
	return claims.ServiceName, nil
}

// CleanupExpiredConfirmations удаляет просроченные токены подтверждения.
func (s *authServiceImpl) CleanupExpiredConfirmations(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.confirmRepo.DeleteExpired(ctx, now)
	if err != nil {
		s.logger.Error("Failed to clean up expired confirmation tokens", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info("Expired confirmation tokens removed", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

// --- Helper Functions ---

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*models.TokenDetails, error) {
	td, err := s.createTokens(user)
	if err != nil {
		s.logger.Error("Failed to create tokens", zap.Error(err), zap.Stringer("userID", user.ID))
		return nil, fmt.Errorf("failed to create tokens: %w", err)
	}
	if err := s.tokenRepo.SetToken(ctx, user.ID, td); err != nil {
		s.logger.Error("Failed to save token details", zap.Error(err), zap.Stringer("userID", user.ID))
		return nil, fmt.Errorf("failed to save token details: %w", err)
	}
	return td, nil
}

// createTokens generates new access and refresh tokens for a user.
func (s *authServiceImpl) createTokens(user *models.User) (*models.TokenDetails, error) {
	now := s.now()
	td := &models.TokenDetails{
		AccessUUID:  uuid.NewString(),
		RefreshUUID: uuid.NewString(),
		AtExpires:   now.Add(s.cfg.AccessTokenTTL).Unix(),
		RtExpires:   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	var err error
	td.AccessToken, err = s.signUserToken(user, td.AccessUUID, models.TokenTypeAccess, now, td.AtExpires)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	td.RefreshToken, err = s.signUserToken(user, td.RefreshUUID, models.TokenTypeRefresh, now, td.RtExpires)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return td, nil
}

func (s *authServiceImpl) signUserToken(user *models.User, jti, tokenType string, now time.Time, expires int64) (string, error) {
	claims := &models.Claims{
		UserID:    user.ID,
		Roles:     user.Roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(time.Unix(expires, 0)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authServiceImpl) parseUserToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.userKeyFunc)
	if err != nil {
		return nil, mapJWTError(err)
	}
	if !token.Valid || claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

func (s *authServiceImpl) userKeyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(s.cfg.JWTSecret), nil
}

func (s *authServiceImpl) revokeAll(ctx context.Context, userID uuid.UUID, reason string) {
	deleted, err := s.tokenRepo.DeleteTokensByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to revoke user tokens", zap.Stringer("userID", userID), zap.String("reason", reason), zap.Error(err))
		return
	}
	s.logger.Info("User tokens revoked", zap.Stringer("userID", userID), zap.String("reason", reason), zap.Int64("deletedCount", deleted))
}

func (s *authServiceImpl) publish(ctx context.Context, routingKey string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		// изменение уже сохранено в БД, событие теряем с записью в лог
		s.logger.Error("Failed to publish event", zap.String("routingKey", routingKey), zap.Error(err))
	}
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return models.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return models.ErrTokenMalformed
	default:
		return models.ErrTokenInvalid
	}
}

// applyPepper applies HMAC-SHA256 using the pepper as the key.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the password after applying the pepper.
func hashPassword(password, pepper string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(applyPepper(password, pepper), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain text password (after applying pepper) with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), applyPepper(password, pepper)) == nil
}
