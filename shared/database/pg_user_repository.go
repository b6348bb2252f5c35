package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym-server/shared/interfaces"
	"gym-server/shared/models"
	"gym-server/shared/utils"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const userColumns = `id, email, password_hash, name, surname, phone, roles, enabled, is_banned, created_at, updated_at`

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository создает UserRepository поверх PostgreSQL.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (email, password_hash, name, surname, phone, roles, enabled)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", user.Email))

	err := r.db.QueryRow(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Surname, user.Phone, pq.Array(user.Roles), user.Enabled,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn("Attempted to create duplicate user by email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user", zap.String("email", user.Email), zap.Error(err))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}

	r.logger.Info("User created", zap.Stringer("userID", user.ID), zap.String("email", user.Email))
	return nil
}

func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *pgUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	r.logger.Debug("Executing query", zap.String("query", query), zap.Any("arg", arg))
	user := &models.User{}
	if err := pgxscan.Get(ctx, r.db, user, query, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user", zap.Any("arg", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to get user from postgres: %w", err)
	}
	return user, nil
}

// ListUsers возвращает пользователей по возрастанию (created_at, id), курсор указывает на последнюю запись.
func (r *pgUserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]models.User, string, error) {
	cursorTime, cursorID, err := utils.DecodeCursor(cursor)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	var args []interface{}
	query := `SELECT ` + userColumns + ` FROM users`
	if cursorID != uuid.Nil {
		query += ` WHERE (created_at, id) > ($1, $2)`
		args = append(args, cursorTime, cursorID)
	}
	query += fmt.Sprintf(` ORDER BY created_at, id LIMIT %d`, limit+1)

	r.logger.Debug("Executing query", zap.String("query", query))
	users := make([]models.User, 0, limit+1)
	if err := pgxscan.Select(ctx, r.db, &users, query, args...); err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, "", fmt.Errorf("failed to list users: %w", err)
	}

	var next string
	if len(users) > limit {
		users = users[:limit]
		last := users[len(users)-1]
		next = utils.EncodeCursor(last.CreatedAt, last.ID)
	}
	return users, next, nil
}

func (r *pgUserRepository) SetUserBanStatus(ctx context.Context, userID uuid.UUID, isBanned bool) error {
	return r.update(ctx, "is_banned", `UPDATE users SET is_banned = $1, updated_at = NOW() WHERE id = $2`, isBanned, userID)
}

func (r *pgUserRepository) SetEnabled(ctx context.Context, userID uuid.UUID, enabled bool) error {
	return r.update(ctx, "enabled", `UPDATE users SET enabled = $1, updated_at = NOW() WHERE id = $2`, enabled, userID)
}

func (r *pgUserRepository) UpdateRoles(ctx context.Context, userID uuid.UUID, roles []string) error {
	return r.update(ctx, "roles", `UPDATE users SET roles = $1, updated_at = NOW() WHERE id = $2`, pq.Array(roles), userID)
}

func (r *pgUserRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	return r.update(ctx, "password_hash", `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, newPasswordHash, userID)
}

func (r *pgUserRepository) update(ctx context.Context, field, query string, value interface{}, userID uuid.UUID) error {
	r.logger.Debug("Executing query", zap.String("query", query), zap.Stringer("userID", userID))
	tag, err := r.db.Exec(ctx, query, value, userID)
	if err != nil {
		r.logger.Error("Failed to update user", zap.String("field", field), zap.Stringer("userID", userID), zap.Error(err))
		return fmt.Errorf("failed to update user %s: %w", field, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User updated", zap.String("field", field), zap.Stringer("userID", userID))
	return nil
}

var _ interfaces.ConfirmationTokenRepository = (*pgConfirmationTokenRepository)(nil)

type pgConfirmationTokenRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgConfirmationTokenRepository создает хранилище токенов подтверждения email.
func NewPgConfirmationTokenRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.ConfirmationTokenRepository {
	return &pgConfirmationTokenRepository{db: db, logger: logger.Named("PgConfirmationTokenRepo")}
}

func (r *pgConfirmationTokenRepository) Create(ctx context.Context, token *models.ConfirmationToken) error {
	query := `INSERT INTO confirmation_tokens (token, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, token.Token, token.UserID, token.ExpiresAt.UTC()); err != nil {
		if isForeignKeyViolation(err) {
			return models.ErrUserNotFound
		}
		return fmt.Errorf("failed to create confirmation token: %w", err)
	}
	return nil
}

func (r *pgConfirmationTokenRepository) Get(ctx context.Context, token string) (*models.ConfirmationToken, error) {
	query := `SELECT token, user_id, expires_at FROM confirmation_tokens WHERE token = $1`
	ct := &models.ConfirmationToken{}
	if err := pgxscan.Get(ctx, r.db, ct, query, token); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to get confirmation token: %w", err)
	}
	return ct, nil
}

func (r *pgConfirmationTokenRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM confirmation_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete confirmation token: %w", err)
	}
	return nil
}

// DeleteExpired удаляет просроченные токены подтверждения.
func (r *pgConfirmationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM confirmation_tokens WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired confirmation tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// IsUniqueViolation сообщает, нарушено ли ограничение уникальности (код 23505).
func IsUniqueViolation(err error) bool { return isUniqueViolation(err) }

// IsForeignKeyViolation сообщает, нарушен ли внешний ключ (код 23503).
func IsForeignKeyViolation(err error) bool { return isForeignKeyViolation(err) }
