package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/db"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// SessionRepository handles database operations for login sessions.
type SessionRepository struct {
	db *db.PostgresDB
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(database *db.PostgresDB) *SessionRepository {
	return &SessionRepository{db: database}
}

// Create inserts a new session and prunes expired ones in the same
// transaction, so stale credential rows never outlive a successful login.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		pruneSQL, pruneArgs, err := squirrel.Delete("sessions").
			Where(squirrel.Lt{"expires_at": time.Now()}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building prune sessions SQL")
			return err
		}

		if _, err := tx.Exec(ctx, pruneSQL, pruneArgs...); err != nil {
			logger.Error().Err(err).Msg("Error pruning expired sessions")
			return err
		}

		insertSQL, insertArgs, err := squirrel.Insert("sessions").
			Columns("id", "email", "token_json", "expires_at").
			Values(session.ID, session.Email, session.TokenJSON, session.ExpiresAt).
			Suffix("RETURNING created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create session SQL")
			return err
		}

		if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&session.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error executing create session query")
			return err
		}

		return nil
	})
}

// GetByID retrieves a session by its identifier.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	sql, args, err := squirrel.Select("id", "email", "token_json", "created_at", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get session SQL")
		return nil, err
	}

	var session models.Session
	err = r.db.Pool.QueryRow(ctx, sql, args...).Scan(
		&session.ID, &session.Email, &session.TokenJSON, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning session")
		return nil, err
	}

	return &session, nil
}

// Delete removes a session, ending the login.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	sql, args, err := squirrel.Delete("sessions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete session SQL")
		return err
	}

	cmdTag, err := r.db.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete session query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}

	return nil
}
