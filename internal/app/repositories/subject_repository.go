package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/dberrors"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// SubjectRepository handles database operations for Subject.
type SubjectRepository struct {
	DB *pgxpool.Pool
}

// NewSubjectRepository creates a new instance of SubjectRepository.
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// Create inserts a new subject. A duplicate name maps to ErrSubjectAlreadyExists.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	sql, args, err := squirrel.Insert("subjects").
		Columns("name", "description").
		Values(subject.Name, subject.Description).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create subject SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&subject.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "subjects_name_key") {
			return apperrors.ErrSubjectAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create subject query")
		return err
	}

	return nil
}

// GetByID retrieves a single subject by its ID.
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := squirrel.Select("id", "name", "description").
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get subject by ID SQL")
		return nil, err
	}

	var subject models.Subject
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.Name, &subject.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Msg("Error scanning subject")
		return nil, err
	}

	return &subject, nil
}

// GetAll retrieves all subjects ordered by name.
func (r *SubjectRepository) GetAll(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := squirrel.Select("id", "name", "description").
		From("subjects").
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all subjects SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all subjects query")
		return nil, err
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		var subject models.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Description); err != nil {
			logger.Error().Err(err).Msg("Error scanning one subject during get all")
			continue
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through subject rows")
		return nil, err
	}

	return subjects, nil
}

// UpdateDescription updates a subject's description.
func (r *SubjectRepository) UpdateDescription(ctx context.Context, id int64, description string) error {
	sql, args, err := squirrel.Update("subjects").
		Set("description", description).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update subject SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update subject query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// Delete deletes a subject by its ID. Owned notes, resources, activities
// (with their files) and events go with it through the cascade in the schema.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("subjects").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete subject SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete subject query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}
