package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/logger"
)

// ResourceRepository handles database operations for Resource.
type ResourceRepository struct {
	DB *pgxpool.Pool
}

// NewResourceRepository creates a new instance of ResourceRepository.
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{DB: db}
}

// Create inserts a new resource.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	sql, args, err := squirrel.Insert("resources").
		Columns("subject_id", "type", "title", "path_or_url").
		Values(resource.SubjectID, resource.Type, resource.Title, resource.PathOrURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&resource.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create resource query")
		return err
	}

	return nil
}

// GetByID retrieves a single resource by its ID.
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "type", "title", "path_or_url").
		From("resources").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resource by ID SQL")
		return nil, err
	}

	var resource models.Resource
	err = r.DB.QueryRow(ctx, sql, args...).Scan(
		&resource.ID, &resource.SubjectID, &resource.Type, &resource.Title, &resource.PathOrURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceRowNotFound
		}
		logger.Error().Err(err).Msg("Error scanning resource")
		return nil, err
	}

	return &resource, nil
}

// GetBySubjectID retrieves the resources of a subject grouped later by type;
// the query orders by type then title for stable grouping.
func (r *ResourceRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Resource, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "type", "title", "path_or_url").
		From("resources").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("type ASC", "title ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resources by subject SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get resources by subject query")
		return nil, err
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0)
	for rows.Next() {
		var resource models.Resource
		if err := rows.Scan(&resource.ID, &resource.SubjectID, &resource.Type, &resource.Title, &resource.PathOrURL); err != nil {
			logger.Error().Err(err).Msg("Error scanning one resource during get by subject")
			continue
		}
		resources = append(resources, &resource)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through resource rows")
		return nil, err
	}

	return resources, nil
}

// Delete deletes a resource by its ID.
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete resource SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete resource query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceRowNotFound
	}

	return nil
}
