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

// ActivityRepository handles database operations for Activity and its files.
type ActivityRepository struct {
	DB *pgxpool.Pool
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// Create inserts a new activity.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	sql, args, err := squirrel.Insert("activities").
		Columns("subject_id", "title", "description", "due_date").
		Values(activity.SubjectID, activity.Title, activity.Description, activity.DueDate).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create activity SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&activity.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create activity query")
		return err
	}

	return nil
}

// GetByID retrieves a single activity by its ID.
func (r *ActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "title", "description", "due_date", "is_completed", "grade", "comments").
		From("activities").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get activity by ID SQL")
		return nil, err
	}

	row := r.DB.QueryRow(ctx, sql, args...)
	return scanActivity(row)
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var activity models.Activity
	err := row.Scan(
		&activity.ID, &activity.SubjectID, &activity.Title, &activity.Description,
		&activity.DueDate, &activity.IsCompleted, &activity.Grade, &activity.Comments,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrActivityNotFound
		}
		logger.Error().Err(err).Msg("Error scanning activity")
		return nil, err
	}
	return &activity, nil
}

// GetBySubjectID retrieves the activities of a subject ordered by due date
// ascending, activities without a due date last.
func (r *ActivityRepository) GetBySubjectID(ctx context.Context, subjectID int64) ([]*models.Activity, error) {
	sql, args, err := squirrel.Select("id", "subject_id", "title", "description", "due_date", "is_completed", "grade", "comments").
		From("activities").
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("due_date ASC NULLS LAST", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get activities by subject SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get activities by subject query")
		return nil, err
	}
	defer rows.Close()

	activities := make([]*models.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning one activity during get by subject")
			continue
		}
		activities = append(activities, activity)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through activity rows")
		return nil, err
	}

	return activities, nil
}

// ToggleCompleted flips the completion flag and returns the new state.
func (r *ActivityRepository) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	sql, args, err := squirrel.Update("activities").
		Set("is_completed", squirrel.Expr("NOT is_completed")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING is_completed").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building toggle activity SQL")
		return false, err
	}

	var completed bool
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrActivityNotFound
		}
		logger.Error().Err(err).Msg("Error executing toggle activity query")
		return false, err
	}

	return completed, nil
}

// UpdateGradeComments records the grade and comments for an activity.
func (r *ActivityRepository) UpdateGradeComments(ctx context.Context, id int64, grade *string, comments string) error {
	sql, args, err := squirrel.Update("activities").
		Set("grade", grade).
		Set("comments", comments).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update activity grade SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update activity grade query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}

	return nil
}

// Delete deletes an activity by its ID; attachment rows cascade in the schema.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("activities").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete activity SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete activity query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrActivityNotFound
	}

	return nil
}

// CreateFile records a Drive attachment for an activity.
func (r *ActivityRepository) CreateFile(ctx context.Context, file *models.ActivityFile) error {
	sql, args, err := squirrel.Insert("activity_files").
		Columns("activity_id", "filename", "drive_file_id").
		Values(file.ActivityID, file.Filename, file.DriveFileID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create activity file SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&file.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing create activity file query")
		return err
	}

	return nil
}

// GetFiles retrieves the attachments of an activity.
func (r *ActivityRepository) GetFiles(ctx context.Context, activityID int64) ([]*models.ActivityFile, error) {
	sql, args, err := squirrel.Select("id", "activity_id", "filename", "drive_file_id").
		From("activity_files").
		Where(squirrel.Eq{"activity_id": activityID}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get activity files SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get activity files query")
		return nil, err
	}
	defer rows.Close()

	files := make([]*models.ActivityFile, 0)
	for rows.Next() {
		var file models.ActivityFile
		if err := rows.Scan(&file.ID, &file.ActivityID, &file.Filename, &file.DriveFileID); err != nil {
			logger.Error().Err(err).Msg("Error scanning one activity file")
			continue
		}
		files = append(files, &file)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating through activity file rows")
		return nil, err
	}

	return files, nil
}
